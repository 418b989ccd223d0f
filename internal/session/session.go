// internal/session/session.go
//
// Session state: the single source of truth for one play-through.
// Holds the aggregate counters (game type, level, max level, score,
// attempts), the visible screen, the feedback banner, and the active
// variant's puzzle state. All mutation happens under the session mutex;
// user input and timer callbacks serialize on it.

package session

import (
	"math/rand"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/lumikids/playbox/internal/audio"
	"github.com/lumikids/playbox/internal/game"
)

// Screen is the top-level view.
type Screen string

const (
	ScreenMenu Screen = "menu"
	ScreenGame Screen = "game"
	// ScreenLoading is only ever rendered, never stored: it is the neutral
	// placeholder for the (defective) state of a game screen with no game.
	ScreenLoading Screen = "loading"
)

// Feedback is the transient banner state.
type Feedback string

const (
	FeedbackNone       Feedback = ""
	FeedbackLevelClear Feedback = "level-clear" // timer-driven, clears itself
	FeedbackGameWon    Feedback = "game-won"    // sticks until menu/restart
)

// Session is one play-through of a single game type. While a game is
// active, 1 ≤ Level ≤ MaxLevel always holds and Score never decreases.
type Session struct {
	ID string

	mu sync.Mutex

	kind     game.Kind
	level    int
	maxLevel int
	score    int
	attempts int
	screen   Screen
	feedback Feedback
	variant  game.Variant

	sounds *audio.Queue
	sched  Scheduler
	rng    *rand.Rand

	// epoch invalidates scheduled callbacks from a previous game context;
	// cancels holds their stop functions for eager cancellation.
	epoch   uint64
	cancels []CancelFunc
}

// New constructs a menu-screen session.
func New(id string, sounds *audio.Queue, sched Scheduler, rng *rand.Rand) *Session {
	return &Session{ID: id, sounds: sounds, sched: sched, rng: rng, screen: ScreenMenu}
}

// View is the rendered screen: a pure projection of session state that the
// client draws. Sounds carries drained audio cues for the client to play.
type View struct {
	Screen   Screen      `json:"screen"`
	GameType game.Kind   `json:"gameType,omitempty"`
	Level    int         `json:"level,omitempty"`
	MaxLevel int         `json:"maxLevel,omitempty"`
	Score    int         `json:"score"`
	Attempts int         `json:"attempts"`
	Feedback Feedback    `json:"feedback,omitempty"`
	Puzzle   any         `json:"puzzle,omitempty"`
	Sounds   []audio.Cue `json:"sounds,omitempty"`
}

// Render produces the current view.
func (s *Session) Render() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Screen:   s.screen,
		GameType: s.kind,
		Level:    s.level,
		MaxLevel: s.maxLevel,
		Score:    s.score,
		Attempts: s.attempts,
		Feedback: s.feedback,
		Sounds:   s.sounds.Drain(),
	}
	if s.screen == ScreenGame {
		if s.kind == game.KindNone || s.variant == nil {
			// Should be transient at worst; render a placeholder, never a
			// blank game.
			log.Warn().Str("session", s.ID).Msg("game screen with no active game")
			v.Screen = ScreenLoading
			return v
		}
		v.Puzzle = s.variant.View()
	}
	return v
}
