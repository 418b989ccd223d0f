// internal/audio/audio.go
//
// Sound boundary for the game core.
// The server never plays audio itself: game logic emits fire-and-forget cues,
// the queue collects them, and the next rendered view hands them to the
// browser, which owns actual playback. A disabled or missing player must never
// affect game-state correctness.

package audio

import "sync"

// Cue identifies a sound effect the client should play.
type Cue string

const (
	CueFlip       Cue = "flip"
	CueMatch      Cue = "match"
	CueMismatch   Cue = "mismatch"
	CueCorrect    Cue = "correct"
	CueWrong      Cue = "wrong"
	CueLevelClear Cue = "level-clear"
	CueGameWon    Cue = "game-won"
	CuePlayback   Cue = "playback"
)

// Config carries audio settings. The enabled flag lives here, not in a
// package-level variable, so the UI toggle and playback can't drift apart.
type Config struct {
	Enabled bool
}

// Player accepts sound cues. Implementations must not fail loudly;
// playing a cue is always best effort.
type Player interface {
	Play(c Cue)
}

// Queue is the Player used by sessions: it buffers cues until the next
// render drains them into the response.
type Queue struct {
	cfg  Config
	mu   sync.Mutex
	cues []Cue
}

func NewQueue(cfg Config) *Queue {
	return &Queue{cfg: cfg}
}

// Play enqueues a cue. No-op when sound is disabled or the cue is empty.
func (q *Queue) Play(c Cue) {
	if !q.cfg.Enabled || c == "" {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cues = append(q.cues, c)
}

// Drain returns all pending cues and clears the queue.
func (q *Queue) Drain() []Cue {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.cues
	q.cues = nil
	return out
}
