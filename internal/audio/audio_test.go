package audio

import "testing"

func TestQueueCollectsAndDrains(t *testing.T) {
	q := NewQueue(Config{Enabled: true})
	q.Play(CueFlip)
	q.Play(CueMatch)
	q.Play("") // empty cues are dropped

	got := q.Drain()
	if len(got) != 2 || got[0] != CueFlip || got[1] != CueMatch {
		t.Fatalf("Drain = %v", got)
	}
	if again := q.Drain(); len(again) != 0 {
		t.Fatalf("second Drain = %v", again)
	}
}

func TestQueueDisabled(t *testing.T) {
	q := NewQueue(Config{Enabled: false})
	q.Play(CueGameWon)
	if got := q.Drain(); len(got) != 0 {
		t.Fatalf("disabled queue collected %v", got)
	}
}
