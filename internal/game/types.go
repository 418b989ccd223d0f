// internal/game/types.go
//
// Core type definitions shared by the six game variants.
// Defines:
//   - Kind: enumerates the game types.
//   - Outcome: classification of one evaluated input event.
//   - Input / Result / Effect: the boundary between variants and the session.
//   - Variant: the capability set {Init, Evaluate} every game implements.

package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/lumikids/playbox/internal/audio"
	"github.com/lumikids/playbox/internal/content"
)

// Kind identifies a game variant.
type Kind string

const (
	KindNone     Kind = ""
	KindMemory   Kind = "memory"
	KindPairs    Kind = "pairs"
	KindPattern  Kind = "pattern"
	KindOddOne   Kind = "oddone"
	KindSequence Kind = "sequence"
	KindColors   Kind = "colors"
)

// Kinds lists every playable game type.
func Kinds() []Kind {
	return []Kind{KindMemory, KindPairs, KindPattern, KindOddOne, KindSequence, KindColors}
}

var ErrUnknownKind = errors.New("unknown game type")

// ParseKind converts a client-supplied string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return KindNone, ErrUnknownKind
}

// Outcome classifies the result of evaluating one input event.
type Outcome string

const (
	// OutcomePending means more input is needed (e.g. one of two cards flipped).
	OutcomePending Outcome = "pending"
	// OutcomeIgnored means the input had no effect (disabled or redundant).
	OutcomeIgnored Outcome = "ignored"
	// OutcomeIncorrect is a wrong answer with variant-specific recovery.
	OutcomeIncorrect Outcome = "incorrect"
	// OutcomeCorrect is a right answer with the puzzle not yet finished.
	OutcomeCorrect Outcome = "correct"
	// OutcomeComplete means the level's puzzle is fully solved.
	OutcomeComplete Outcome = "complete"
)

// Input is one discrete user interaction. Each variant reads the fields it
// needs: Index for card flips, Value for option/item/color picks, Side for
// the pair-matching columns ("left"/"right").
type Input struct {
	Index int    `json:"index"`
	Value string `json:"value,omitempty"`
	Side  string `json:"side,omitempty"`
}

// Effect is a single-shot delayed mutation of variant state (card flip-back,
// playback step). The session controller owns scheduling and cancellation;
// variants never start timers themselves. Run executes under the session
// lock and may return a follow-up effect to chain.
type Effect struct {
	Delay time.Duration
	Run   func() *Effect
}

// Result is the outcome of one Evaluate call. Score and Attempts are
// non-negative deltas applied to the session counters.
type Result struct {
	Outcome  Outcome
	Score    int
	Attempts int
	Cue      audio.Cue
	Effect   *Effect
}

// pointsPerSolve is the fixed score increment for every correct answer.
const pointsPerSolve = 10

// Variant is the capability set shared by all six games. A variant owns its
// transient puzzle state; that state is rebuilt wholesale by Init and is
// only ever mutated by Evaluate and by effects it returned.
type Variant interface {
	Kind() Kind

	// Init builds the level's puzzle from the static content tables and
	// resets transient state. The returned effect, if any, starts the
	// level's timed phase (color-sequence playback).
	Init(level int) (*Effect, error)

	// Evaluate consumes one input event.
	Evaluate(in Input) Result

	// View returns a render-safe snapshot of the puzzle: everything the
	// client may draw, nothing that gives the answer away.
	View() any
}

// Fixed level counts for the pool-based games; the table-driven games take
// theirs from the content tables.
const (
	memoryLevels = 5
	colorLevels  = 10
)

// MaxLevel reports the total number of levels for a game type.
func MaxLevel(k Kind) int {
	switch k {
	case KindMemory:
		return memoryLevels
	case KindPairs:
		return content.PairsLevels()
	case KindPattern:
		return content.PatternLevels()
	case KindOddOne:
		return content.OddOneLevels()
	case KindSequence:
		return content.SequenceLevels()
	case KindColors:
		return colorLevels
	}
	return 0
}

// New constructs the variant for a kind, drawing shuffle randomness from rng.
func New(k Kind, rng *rand.Rand) (Variant, error) {
	switch k {
	case KindMemory:
		return newMemory(rng), nil
	case KindPairs:
		return newPairs(rng), nil
	case KindPattern:
		return newPattern(), nil
	case KindOddOne:
		return newOddOne(), nil
	case KindSequence:
		return newSequence(rng), nil
	case KindColors:
		return newColors(rng), nil
	}
	return nil, ErrUnknownKind
}

// shuffled returns a shuffled copy of items.
func shuffled(rng *rand.Rand, items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
