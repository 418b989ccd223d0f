package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lumikids/playbox/internal/audio"
	"github.com/lumikids/playbox/internal/content"
	"github.com/lumikids/playbox/internal/httpserver"
	"github.com/lumikids/playbox/internal/store"
	"os"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := content.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load game content")
	}

	audioCfg := audio.Config{Enabled: getEnv("SOUND_ENABLED", "true") != "false"}
	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, audioCfg)
	port := getEnv("PORT", "5176")
	log.Info().Str("port", port).Bool("sound", audioCfg.Enabled).Msg("starting playbox server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
