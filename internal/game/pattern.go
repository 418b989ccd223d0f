// internal/game/pattern.go
//
// Pattern-completion variant: a sequence ending in "?" and a handful of
// options; pick the one that continues the pattern. Levels hold one or more
// challenges; solving the last challenge completes the level.

package game

import (
	"github.com/lumikids/playbox/internal/audio"
	"github.com/lumikids/playbox/internal/content"
)

type patternGame struct {
	level    int
	idx      int // current challenge within the level
	total    int
	answered bool // input disabled once the last challenge is solved
}

func newPattern() *patternGame { return &patternGame{} }

func (g *patternGame) Kind() Kind { return KindPattern }

func (g *patternGame) Init(level int) (*Effect, error) {
	g.level = level
	g.idx = 0
	g.total = content.PatternChallenges(level)
	g.answered = false
	return nil, nil
}

func (g *patternGame) Evaluate(in Input) Result {
	if g.answered {
		return Result{Outcome: OutcomeIgnored}
	}
	ch := content.Pattern(g.level, g.idx)
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

// PatternView is the render snapshot for the pattern game. The answer is
// never included; Options carries everything selectable.
type PatternView struct {
	Sequence  []string `json:"sequence"`
	Options   []string `json:"options"`
	Challenge int      `json:"challenge"` // 1-based
	Total     int      `json:"total"`
}

func (g *patternGame) View() any {
	ch := content.Pattern(g.level, g.idx)
	return PatternView{
		Sequence:  ch.Sequence,
		Options:   ch.Options,
		Challenge: g.idx + 1,
		Total:     g.total,
	}
}
