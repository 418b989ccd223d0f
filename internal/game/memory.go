// internal/game/memory.go
//
// Memory-match variant: a shuffled grid of face-down card pairs.
// Level n has n+1 pairs (level 1 → 4 cards, level 5 → 12 cards).
//
// Evaluate rules:
//   - First flip of an attempt → pending.
//   - Second flip matching     → both cards matched, +10 (complete when all
//     pairs are matched).
//   - Second flip mismatching  → incorrect; both cards flip back after a
//     short delay, during which all input is ignored.
//   - Attempts counts completed two-card attempts, matched or not.

package game

import (
	"math/rand"
	"time"

	"github.com/lumikids/playbox/internal/audio"
	"github.com/lumikids/playbox/internal/content"
)

// flipBackDelay is how long a mismatched pair stays visible.
const flipBackDelay = 800 * time.Millisecond

type memoryCard struct {
	symbol  string
	faceUp  bool
	matched bool
}

type memoryGame struct {
	rng     *rand.Rand
	cards   []memoryCard
	firstUp int  // index of the lone face-up card, -1 between attempts
	locked  bool // true while a mismatched pair waits to flip back
	matched int  // matched pair count
	pairs   int
	done    bool
}

func newMemory(rng *rand.Rand) *memoryGame {
	return &memoryGame{rng: rng, firstUp: -1}
}

func (g *memoryGame) Kind() Kind { return KindMemory }

func (g *memoryGame) Init(level int) (*Effect, error) {
	if level < 1 {
		level = 1
	}
	pairs := level + 1
	pool := shuffled(g.rng, content.MemoryPool())
	if pairs > len(pool) {
		pairs = len(pool)
	}

	deck := make([]string, 0, pairs*2)
	for _, sym := range pool[:pairs] {
		deck = append(deck, sym, sym)
	}
	deck = shuffled(g.rng, deck)

	g.cards = make([]memoryCard, len(deck))
	for i, sym := range deck {
		g.cards[i] = memoryCard{symbol: sym}
	}
	g.firstUp = -1
	g.locked = false
	g.matched = 0
	g.pairs = pairs
	g.done = false
	return nil, nil
}

func (g *memoryGame) Evaluate(in Input) Result {
	if g.locked || g.done {
		return Result{Outcome: OutcomeIgnored}
	}
	idx := in.Index
	if idx < 0 || idx >= len(g.cards) {
		return Result{Outcome: OutcomeIgnored}
	}
	card := &g.cards[idx]
	if card.faceUp || card.matched {
		return Result{Outcome: OutcomeIgnored}
	}

	card.faceUp = true
	if g.firstUp == -1 {
		g.firstUp = idx
		return Result{Outcome: OutcomePending, Cue: audio.CueFlip}
	}

	first := g.firstUp
	g.firstUp = -1

	if g.cards[first].symbol == card.symbol {
		g.cards[first].matched = true
		card.matched = true
		g.matched++
		if g.matched == g.pairs {
			g.done = true
			return Result{Outcome: OutcomeComplete, Score: pointsPerSolve, Attempts: 1, Cue: audio.CueMatch}
		}
		return Result{Outcome: OutcomeCorrect, Score: pointsPerSolve, Attempts: 1, Cue: audio.CueMatch}
	}

	// Mismatch: leave both visible briefly, then flip back and unlock.
	g.locked = true
	a, b := first, idx
	return Result{
		Outcome:  OutcomeIncorrect,
		Attempts: 1,
		Cue:      audio.CueMismatch,
		Effect: &Effect{
			Delay: flipBackDelay,
			Run: func() *Effect {
				g.cards[a].faceUp = false
				g.cards[b].faceUp = false
				g.locked = false
				return nil
			},
		},
	}
}

// MemoryCardView is one card as the client may see it: the symbol is only
// revealed while the card is face up or matched.
type MemoryCardView struct {
	Symbol  string `json:"symbol,omitempty"`
	FaceUp  bool   `json:"faceUp"`
	Matched bool   `json:"matched"`
}

// MemoryView is the render snapshot for the memory game.
type MemoryView struct {
	Cards        []MemoryCardView `json:"cards"`
	Pairs        int              `json:"pairs"`
	MatchedPairs int              `json:"matchedPairs"`
}

func (g *memoryGame) View() any {
	v := MemoryView{Cards: make([]MemoryCardView, len(g.cards)), Pairs: g.pairs, MatchedPairs: g.matched}
	for i, c := range g.cards {
		cv := MemoryCardView{FaceUp: c.faceUp, Matched: c.matched}
		if c.faceUp || c.matched {
			cv.Symbol = c.symbol
		}
		v.Cards[i] = cv
	}
	return v
}
