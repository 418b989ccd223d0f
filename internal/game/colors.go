// internal/game/colors.go
//
// Color-repeat variant ("repeat the sequence"): the server picks a random
// color sequence of length level+2 and plays it back step by step; the
// player then taps the colors in the same order.
//
// Phases:
//   - playback: timed steps reveal the sequence one color at a time.
//     ALL input is ignored in this phase.
//   - input: taps are checked against the sequence. A wrong tap restarts
//     entry from the beginning of the same sequence and replays it.
//
// Scoring: +10 for each sequence position reached for the first time, so a
// replay after a miss can't re-earn points for ground already covered.

package game

import (
	"math/rand"
	"time"

	"github.com/lumikids/playbox/internal/audio"
	"github.com/lumikids/playbox/internal/content"
)

// playbackStep is the interval between revealed colors during playback.
const playbackStep = 800 * time.Millisecond

type colorsGame struct {
	rng      *rand.Rand
	sequence []string
	shown    int // colors revealed so far during playback
	showing  bool
	progress int // correct taps this entry attempt
	best     int // deepest position ever reached this level (for scoring)
	done     bool
}

func newColors(rng *rand.Rand) *colorsGame {
	return &colorsGame{rng: rng}
}

func (g *colorsGame) Kind() Kind { return KindColors }

func (g *colorsGame) Init(level int) (*Effect, error) {
	if level < 1 {
		level = 1
	}
	palette := content.ColorPalette()
	g.sequence = make([]string, level+2)
	for i := range g.sequence {
		g.sequence[i] = palette[g.rng.Intn(len(palette))]
	}
	g.progress = 0
	g.best = 0
	g.done = false
	return g.startPlayback(), nil
}

// startPlayback resets to the playback phase and returns its first step.
func (g *colorsGame) startPlayback() *Effect {
	g.showing = true
	g.shown = 0
	return &Effect{Delay: playbackStep, Run: g.playbackTick}
}

// playbackTick reveals the next color, or ends playback one beat after the
// last color so the final flash stays visible.
func (g *colorsGame) playbackTick() *Effect {
	if g.shown < len(g.sequence) {
		g.shown++
		return &Effect{Delay: playbackStep, Run: g.playbackTick}
	}
	g.showing = false
	return nil
}

func (g *colorsGame) Evaluate(in Input) Result {
	if g.showing || g.done {
		return Result{Outcome: OutcomeIgnored}
	}
	if in.Value != g.sequence[g.progress] {
		g.progress = 0
		return Result{
			Outcome: OutcomeIncorrect,
			Cue:     audio.CueWrong,
			Effect:  g.startPlayback(),
		}
	}

	g.progress++
	score := 0
	if g.progress > g.best {
		g.best = g.progress
		score = pointsPerSolve
	}
	if g.progress == len(g.sequence) {
		g.done = true
		return Result{Outcome: OutcomeComplete, Score: score, Cue: audio.CueCorrect}
	}
	return Result{Outcome: OutcomeCorrect, Score: score, Cue: audio.CueCorrect}
}

// ColorsView is the render snapshot for the color-repeat game. The sequence
// is only exposed during playback, and only as far as it has been revealed.
type ColorsView struct {
	Palette  []string `json:"palette"`
	Phase    string   `json:"phase"` // "playback" | "input"
	Sequence []string `json:"sequence,omitempty"`
	Length   int      `json:"length"`
	Progress int      `json:"progress"`
}

func (g *colorsGame) View() any {
	v := ColorsView{
		Palette:  content.ColorPalette(),
		Phase:    "input",
		Length:   len(g.sequence),
		Progress: g.progress,
	}
	if g.showing {
		v.Phase = "playback"
		v.Sequence = g.sequence[:g.shown]
	}
	return v
}
