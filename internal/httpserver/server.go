// internal/httpserver/server.go
//
// HTTP wiring for the Playbox backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/content".
//   - Session endpoints: POST /session/new, GET /session/{id},
//     POST /session/{id}/input, /restart, /menu.
//   - Session-ticket cookie: an HS256 token naming the session ID, so only
//     the browser that started a session can drive it. Not user auth —
//     there are no accounts, and nothing is persisted.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the cookie works).
//   - The browser does all drawing and audio playback; every response is a
//     pure projection of session state.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	mrand "math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/lumikids/playbox/internal/audio"
	"github.com/lumikids/playbox/internal/content"
	"github.com/lumikids/playbox/internal/game"
	"github.com/lumikids/playbox/internal/session"
	"github.com/lumikids/playbox/internal/store"
)

// Server bundles router, session store, and session factory settings.
type Server struct {
	r        *chi.Mux
	store    store.Store
	sched    session.Scheduler
	audioCfg audio.Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, audioCfg audio.Config) *Server {
	s := &Server{r: chi.NewRouter(), store: st, sched: session.NewScheduler(), audioCfg: audioCfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"playbox-go","endpoints":["/health","POST /session/new","GET /session/{id}","POST /session/{id}/input"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Debug: content table counts
	s.r.Get("/debug/content", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(content.Stats())
	})

	// Session endpoints
	s.r.Post("/session/new", s.handleNewSession)
	s.r.Route("/session/{id}", func(r chi.Router) {
		r.Use(s.requireTicket)
		r.Get("/", s.handleGetSession)
		r.Post("/input", s.handleInput)
		r.Post("/restart", s.handleRestart)
		r.Post("/menu", s.handleMenu)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ----------------------------- sessions ------------------------------------

// newSessionReq is the payload for POST /session/new.
type newSessionReq struct {
	GameType string `json:"gameType"`
}

// newSessionRes returns the session handle plus the first rendered view.
type newSessionRes struct {
	SessionID string       `json:"sessionId"`
	View      session.View `json:"view"`
}

// inputRes wraps a view with the evaluated outcome.
type inputRes struct {
	Outcome game.Outcome `json:"outcome"`
	View    session.View `json:"view"`
}

// handleNewSession creates an in-memory session, starts the requested game,
// and hands the browser its signed ticket.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	kind, err := game.ParseKind(req.GameType)
	if err != nil {
		http.Error(w, `{"error":"unknown_game_type"}`, http.StatusBadRequest)
		return
	}

	id := genID()
	sess := session.New(id,
		audio.NewQueue(s.audioCfg),
		s.sched,
		mrand.New(mrand.NewSource(time.Now().UnixNano())),
	)
	if err := sess.StartGame(kind); err != nil {
		log.Error().Err(err).Str("gameType", req.GameType).Msg("start game")
		http.Error(w, `{"error":"start_failed"}`, http.StatusInternalServerError)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	tok, exp, err := signTicket(id)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	setTicketCookie(w, tok, exp)

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newSessionRes{SessionID: id, View: sess.Render()})
}

// handleGetSession renders the current view.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(sess.Render())
}

// handleInput feeds one input event to the session.
func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}
	var in game.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	outcome := sess.HandleInput(in)
	_ = json.NewEncoder(w).Encode(inputRes{Outcome: outcome, View: sess.Render()})
}

// handleRestart restarts the current game type from level 1.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}
	if err := sess.Restart(); err != nil {
		log.Error().Err(err).Str("session", sess.ID).Msg("restart")
		http.Error(w, `{"error":"restart_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(sess.Render())
}

// handleMenu tears the session down: back to menu, timers cancelled, entry
// removed from the store.
func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}
	sess.GoToMenu()
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("delete session")
	}
	w.WriteHeader(http.StatusNoContent)
}

// sessionFrom loads the session named in the URL; the ticket middleware has
// already proven ownership.
func (s *Server) sessionFrom(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

// ------------------------------ ticket --------------------------------------

// ctxTicketKey is the context key type for the verified session ID.
type ctxTicketKey struct{}

// requireTicket enforces a valid ticket whose session ID matches the path.
func (s *Server) requireTicket(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerOrCookie(r)
		if tok == "" {
			http.Error(w, `{"error":"no_ticket"}`, http.StatusUnauthorized)
			return
		}
		claims := jwt.MapClaims{}
		t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(getEnv("SESSION_SECRET", "dev_secret_change_me")), nil
		})
		if err != nil || !t.Valid {
			http.Error(w, `{"error":"invalid_ticket"}`, http.StatusUnauthorized)
			return
		}
		sid, _ := claims["sid"].(string)
		if sid == "" || sid != chi.URLParam(r, "id") {
			http.Error(w, `{"error":"invalid_ticket"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxTicketKey{}, sid)))
	})
}

// signTicket creates an HS256 token naming a session ID, valid for one day.
func signTicket(sessionID string) (string, time.Time, error) {
	exp := time.Now().Add(24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
	})
	ss, err := t.SignedString([]byte(getEnv("SESSION_SECRET", "dev_secret_change_me")))
	return ss, exp, err
}

// setTicketCookie writes the ticket cookie with appropriate security attributes.
func setTicketCookie(w http.ResponseWriter, token string, exp time.Time) {
	secure := os.Getenv("NODE_ENV") == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     getEnv("COOKIE_NAME", "playbox_ticket"),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a ticket from the Authorization header or cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(getEnv("COOKIE_NAME", "playbox_ticket")); err == nil {
		return c.Value
	}
	return ""
}

// ------------------------------- small util --------------------------------

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
