// internal/session/controller.go
//
// Screen controller and level-progression coordinator.
//
// StartGame sets the whole aggregate state (kind, level 1, max level, zeroed
// score/attempts) and builds the level-1 puzzle before the screen flips to
// "game", all under one lock hold — a half-initialized game screen is
// unobservable.
//
// onLevelComplete is the only place the level ever increments. Variants
// signal completion; they never advance levels themselves.

package session

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lumikids/playbox/internal/audio"
	"github.com/lumikids/playbox/internal/game"
)

// advanceDelay is how long the level-clear banner shows before the next
// level loads.
const advanceDelay = 1500 * time.Millisecond

// StartGame begins a fresh session of the given kind: screen → game,
// level 1, score and attempts zeroed, pending timers cancelled.
func (s *Session) StartGame(kind game.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked(kind)
}

func (s *Session) startLocked(kind game.Kind) error {
	v, err := game.New(kind, s.rng)
	if err != nil {
		return err
	}
	s.cancelPendingLocked()

	s.kind = kind
	s.level = 1
	s.maxLevel = game.MaxLevel(kind)
	s.score = 0
	s.attempts = 0
	s.feedback = FeedbackNone
	s.variant = v

	eff, err := v.Init(1)
	if err != nil {
		return err
	}
	s.scheduleLocked(eff)

	// Last: the game screen only ever shows a fully initialized session.
	s.screen = ScreenGame
	return nil
}

// Restart re-runs StartGame with the current game type. No-op when no game
// type is set.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kind == game.KindNone {
		return nil
	}
	return s.startLocked(s.kind)
}

// GoToMenu returns to the menu, resets the session to its unset state, and
// cancels any pending timers.
func (s *Session) GoToMenu() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPendingLocked()

	s.kind = game.KindNone
	s.level = 0
	s.maxLevel = 0
	s.score = 0
	s.attempts = 0
	s.feedback = FeedbackNone
	s.variant = nil
	s.screen = ScreenMenu
}

// HandleInput feeds one input event to the active variant and applies the
// result to the session counters. Input is ignored outside an active game
// or while a feedback banner is up.
func (s *Session) HandleInput(in game.Input) game.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.screen != ScreenGame || s.variant == nil || s.feedback != FeedbackNone {
		return game.OutcomeIgnored
	}

	res := s.variant.Evaluate(in)
	s.score += res.Score
	s.attempts += res.Attempts
	s.sounds.Play(res.Cue)
	s.scheduleLocked(res.Effect)

	if res.Outcome == game.OutcomeComplete {
		s.onLevelCompleteLocked()
	}
	return res.Outcome
}

// onLevelCompleteLocked advances the session after a solved puzzle: either
// show the level-clear banner and schedule the next level, or declare the
// session won.
func (s *Session) onLevelCompleteLocked() {
	if s.level < s.maxLevel {
		s.feedback = FeedbackLevelClear
		s.sounds.Play(audio.CueLevelClear)
		s.scheduleFuncLocked(advanceDelay, s.nextLevel)
		return
	}
	// Final level: the banner persists until the user dismisses it via
	// menu or restart; no further auto-advance.
	s.feedback = FeedbackGameWon
	s.sounds.Play(audio.CueGameWon)
}

// nextLevel clears the banner, increments the level, and rebuilds the
// puzzle. Runs under the session lock as a scheduled callback.
func (s *Session) nextLevel() *game.Effect {
	s.cancelPendingLocked()
	s.feedback = FeedbackNone
	s.level++
	eff, err := s.variant.Init(s.level)
	if err != nil {
		log.Error().Err(err).Str("session", s.ID).Int("level", s.level).
			Msg("level init failed")
		return nil
	}
	return eff
}

// ---------------------------- timer plumbing ------------------------------

// scheduleLocked schedules a variant effect; nil is a no-op.
func (s *Session) scheduleLocked(eff *game.Effect) {
	if eff == nil {
		return
	}
	s.scheduleFuncLocked(eff.Delay, eff.Run)
}

// scheduleFuncLocked schedules run after d. The callback re-acquires the
// session lock and is dropped if the session's epoch moved on in the
// meantime (menu, restart, new game, level change) — a stale timer must
// never mutate a newer context. A returned follow-up effect is chained.
func (s *Session) scheduleFuncLocked(d time.Duration, run func() *game.Effect) {
	epoch := s.epoch
	cancel := s.sched.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.epoch != epoch {
			return
		}
		s.scheduleLocked(run())
	})
	s.cancels = append(s.cancels, cancel)
}

// cancelPendingLocked stops every pending timer and bumps the epoch so
// already-fired callbacks waiting on the lock become no-ops.
func (s *Session) cancelPendingLocked() {
	for _, c := range s.cancels {
		c()
	}
	s.cancels = nil
	s.epoch++
}
