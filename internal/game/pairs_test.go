package game

import (
	"math/rand"
	"testing"

	"github.com/lumikids/playbox/internal/content"
)

func TestPairsMatchAndComplete(t *testing.T) {
	mustContent(t)
	g := newPairs(rand.New(rand.NewSource(1)))
	if _, err := g.Init(1); err != nil {
		t.Fatal(err)
	}
	pairs := content.PairsLevel(1)

	// Wrong pairing: select one left, pick another pair's right.
	if res := g.Evaluate(Input{Side: SideLeft, Value: pairs[0].Left}); res.Outcome != OutcomePending {
		t.Fatalf("left pick: got %v", res.Outcome)
	}
	if res := g.Evaluate(Input{Side: SideRight, Value: pairs[1].Right}); res.Outcome != OutcomeIncorrect {
		t.Fatalf("wrong pairing: got %v", res.Outcome)
	}

	// Match all pairs; only the last one completes (count is post-insert).
	for i, p := range pairs {
		g.Evaluate(Input{Side: SideLeft, Value: p.Left})
		res := g.Evaluate(Input{Side: SideRight, Value: p.Right})
		last := i == len(pairs)-1
		switch {
		case last && res.Outcome != OutcomeComplete:
			t.Fatalf("pair %d: got %v, want complete", i, res.Outcome)
		case !last && res.Outcome != OutcomeCorrect:
			t.Fatalf("pair %d: got %v, want correct", i, res.Outcome)
		}
		if res.Score != 10 {
			t.Fatalf("pair %d: score %d", i, res.Score)
		}
	}
}

func TestPairsRedundantPicksIgnored(t *testing.T) {
	mustContent(t)
	g := newPairs(rand.New(rand.NewSource(2)))
	if _, err := g.Init(1); err != nil {
		t.Fatal(err)
	}
	pairs := content.PairsLevel(1)

	g.Evaluate(Input{Side: SideLeft, Value: pairs[0].Left})
	g.Evaluate(Input{Side: SideRight, Value: pairs[0].Right})

	// Matched items and unknown values are inert.
	if res := g.Evaluate(Input{Side: SideLeft, Value: pairs[0].Left}); res.Outcome != OutcomeIgnored {
		t.Fatalf("matched re-pick: got %v", res.Outcome)
	}
	if res := g.Evaluate(Input{Side: SideLeft, Value: "🛸"}); res.Outcome != OutcomeIgnored {
		t.Fatalf("unknown value: got %v", res.Outcome)
	}
	if res := g.Evaluate(Input{Side: "middle", Value: pairs[1].Left}); res.Outcome != OutcomeIgnored {
		t.Fatalf("bad side: got %v", res.Outcome)
	}

	// Re-picking on the same side replaces the selection.
	g.Evaluate(Input{Side: SideLeft, Value: pairs[1].Left})
	g.Evaluate(Input{Side: SideLeft, Value: pairs[2].Left})
	if res := g.Evaluate(Input{Side: SideRight, Value: pairs[2].Right}); res.Outcome != OutcomeCorrect {
		t.Fatalf("replaced selection: got %v", res.Outcome)
	}
}
