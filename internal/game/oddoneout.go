// internal/game/oddoneout.go
//
// Odd-one-out variant: a small set of items where exactly one doesn't
// belong. Same challenge-advance semantics as the pattern game.

package game

import (
	"github.com/lumikids/playbox/internal/audio"
	"github.com/lumikids/playbox/internal/content"
)

type oddOneGame struct {
	level    int
	idx      int
	total    int
	answered bool
}

func newOddOne() *oddOneGame { return &oddOneGame{} }

func (g *oddOneGame) Kind() Kind { return KindOddOne }

func (g *oddOneGame) Init(level int) (*Effect, error) {
	g.level = level
	g.idx = 0
	g.total = content.OddOneChallenges(level)
	g.answered = false
	return nil, nil
}

func (g *oddOneGame) Evaluate(in Input) Result {
	if g.answered {
		return Result{Outcome: OutcomeIgnored}
	}
	ch := content.OddOne(g.level, g.idx)
	if in.Value != ch.Answer {
		return Result{Outcome: OutcomeIncorrect, Cue: audio.CueWrong}
	}
	if g.idx+1 < g.total {
		g.idx++
		return Result{Outcome: OutcomeCorrect, Score: pointsPerSolve, Cue: audio.CueCorrect}
	}
	g.answered = true
	return Result{Outcome: OutcomeComplete, Score: pointsPerSolve, Cue: audio.CueCorrect}
}

// OddOneView is the render snapshot for the odd-one-out game.
type OddOneView struct {
	Items     []string `json:"items"`
	Challenge int      `json:"challenge"` // 1-based
	Total     int      `json:"total"`
}

func (g *oddOneGame) View() any {
	ch := content.OddOne(g.level, g.idx)
	return OddOneView{Items: ch.Items, Challenge: g.idx + 1, Total: g.total}
}
