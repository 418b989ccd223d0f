package store

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/lumikids/playbox/internal/audio"
	"github.com/lumikids/playbox/internal/session"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	s := session.New("abc", audio.NewQueue(audio.Config{}), session.NewScheduler(),
		rand.New(rand.NewSource(1)))

	if err := m.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	got, err := m.Get(ctx, "abc")
	if err != nil || got != s {
		t.Fatalf("Get = %v, %v", got, err)
	}

	if err := m.Delete(ctx, "abc"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(ctx, "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete: %v", err)
	}
	if err := m.Delete(ctx, "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete: %v", err)
	}
}
