// internal/game/pairs.go
//
// Pair-matching variant: connect each item in the left column with its
// partner on the right (monkey → banana). Both columns are shuffled
// independently; a selection on one side followed by a pick on the other
// side is one pairing attempt.
//
// The level is complete when the matched set, after inserting the newly
// matched pair, covers every pair. The count is always taken post-insert.

package game

import (
	"math/rand"

	"github.com/lumikids/playbox/internal/audio"
	"github.com/lumikids/playbox/internal/content"
)

const (
	SideLeft  = "left"
	SideRight = "right"
)

type pairsGame struct {
	rng        *rand.Rand
	pairs      []content.Pair
	left       []string // display order
	right      []string // display order
	matched    map[int]bool
	selSide    string // side of the pending selection, "" when none
	selPair    int    // pair index of the pending selection
	done       bool
}

func newPairs(rng *rand.Rand) *pairsGame {
	return &pairsGame{rng: rng}
}

func (g *pairsGame) Kind() Kind { return KindPairs }

func (g *pairsGame) Init(level int) (*Effect, error) {
	g.pairs = content.PairsLevel(level)

	lefts := make([]string, len(g.pairs))
	rights := make([]string, len(g.pairs))
	for i, p := range g.pairs {
		lefts[i] = p.Left
		rights[i] = p.Right
	}
	g.left = shuffled(g.rng, lefts)
	g.right = shuffled(g.rng, rights)

	g.matched = make(map[int]bool, len(g.pairs))
	g.selSide = ""
	g.selPair = -1
	g.done = false
	return nil, nil
}

// pairIndex resolves a side+value pick to a pair index, or -1.
func (g *pairsGame) pairIndex(side, value string) int {
	for i, p := range g.pairs {
		if side == SideLeft && p.Left == value {
			return i
		}
		if side == SideRight && p.Right == value {
			return i
		}
	}
	return -1
}

func (g *pairsGame) Evaluate(in Input) Result {
	if g.done {
		return Result{Outcome: OutcomeIgnored}
	}
	if in.Side != SideLeft && in.Side != SideRight {
		return Result{Outcome: OutcomeIgnored}
	}
	idx := g.pairIndex(in.Side, in.Value)
	if idx == -1 || g.matched[idx] {
		return Result{Outcome: OutcomeIgnored}
	}

	// Picking on the same side replaces the pending selection.
	if g.selSide == "" || g.selSide == in.Side {
		g.selSide = in.Side
		g.selPair = idx
		return Result{Outcome: OutcomePending, Cue: audio.CueFlip}
	}

	sel := g.selPair
	g.selSide = ""
	g.selPair = -1

	if sel != idx {
		return Result{Outcome: OutcomeIncorrect, Cue: audio.CueWrong}
	}

	g.matched[idx] = true
	if len(g.matched) == len(g.pairs) {
		g.done = true
		return Result{Outcome: OutcomeComplete, Score: pointsPerSolve, Cue: audio.CueMatch}
	}
	return Result{Outcome: OutcomeCorrect, Score: pointsPerSolve, Cue: audio.CueMatch}
}

// PairItemView is one column entry.
type PairItemView struct {
	Value    string `json:"value"`
	Matched  bool   `json:"matched"`
	Selected bool   `json:"selected"`
}

// PairsView is the render snapshot for the pair-matching game.
type PairsView struct {
	Left  []PairItemView `json:"left"`
	Right []PairItemView `json:"right"`
	Total int            `json:"total"`
}

func (g *pairsGame) View() any {
	column := func(side string, values []string) []PairItemView {
		out := make([]PairItemView, len(values))
		for i, v := range values {
			idx := g.pairIndex(side, v)
			out[i] = PairItemView{
				Value:    v,
				Matched:  idx >= 0 && g.matched[idx],
				Selected: g.selSide == side && idx == g.selPair,
			}
		}
		return out
	}
	return PairsView{
		Left:  column(SideLeft, g.left),
		Right: column(SideRight, g.right),
		Total: len(g.pairs),
	}
}
