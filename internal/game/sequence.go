// internal/game/sequence.go
//
// Sequence-ordering variant: the level's items are shown shuffled and must
// be tapped in canonical order (counting, growth stages). The next expected
// item comes from an explicit progress counter over the canonical list, so
// nothing depends on insertion or removal order.

package game

import (
	"math/rand"

	"github.com/lumikids/playbox/internal/audio"
	"github.com/lumikids/playbox/internal/content"
)

type sequenceGame struct {
	rng      *rand.Rand
	items    []string // canonical order
	display  []string // shuffled presentation
	progress int      // how many items are correctly placed
	done     bool
}

func newSequence(rng *rand.Rand) *sequenceGame {
	return &sequenceGame{rng: rng}
}

func (g *sequenceGame) Kind() Kind { return KindSequence }

func (g *sequenceGame) Init(level int) (*Effect, error) {
	g.items = content.SequenceLevel(level)
	g.display = shuffled(g.rng, g.items)
	g.progress = 0
	g.done = false
	return nil, nil
}

// placed reports whether value is among the already-placed items.
func (g *sequenceGame) placed(value string) bool {
	for _, v := range g.items[:g.progress] {
		if v == value {
			return true
		}
	}
	return false
}

func (g *sequenceGame) Evaluate(in Input) Result {
	if g.done {
		return Result{Outcome: OutcomeIgnored}
	}
	if g.placed(in.Value) {
		return Result{Outcome: OutcomeIgnored}
	}
	if in.Value != g.items[g.progress] {
		return Result{Outcome: OutcomeIncorrect, Cue: audio.CueWrong}
	}
	g.progress++
	if g.progress == len(g.items) {
		g.done = true
		return Result{Outcome: OutcomeComplete, Score: pointsPerSolve, Cue: audio.CueCorrect}
	}
	return Result{Outcome: OutcomeCorrect, Score: pointsPerSolve, Cue: audio.CueCorrect}
}

// SequenceItemView is one shuffled tile.
type SequenceItemView struct {
	Value  string `json:"value"`
	Placed bool   `json:"placed"`
}

// SequenceView is the render snapshot for the ordering game.
type SequenceView struct {
	Items    []SequenceItemView `json:"items"`
	Progress int                `json:"progress"`
	Total    int                `json:"total"`
}

func (g *sequenceGame) View() any {
	v := SequenceView{
		Items:    make([]SequenceItemView, len(g.display)),
		Progress: g.progress,
		Total:    len(g.items),
	}
	for i, value := range g.display {
		v.Items[i] = SequenceItemView{Value: value, Placed: g.placed(value)}
	}
	return v
}
