package quote

import (
	mrand "math/rand/v2"
	"testing"
)

func TestStaticRandom_DeterministicWithSeed(t *testing.T) {
	list := []string{"A", "B", "C"}
	q1 := NewStatic(list, mrand.New(mrand.NewPCG(123, 456)))
	q2 := NewStatic(list, mrand.New(mrand.NewPCG(123, 456)))

	for i := 0; i < 20; i++ {
		if a, b := q1.Random(), q2.Random(); a != b {
			t.Fatalf("determinism broken at step %d: %q vs %q", i, a, b)
		}
	}
}

func TestStaticRandom_AlwaysFromList(t *testing.T) {
	list := []string{"A", "B"}
	q := NewStatic(list, nil)
	for i := 0; i < 50; i++ {
		if got := q.Random(); got != "A" && got != "B" {
			t.Fatalf("Random() = %q; not from list", got)
		}
	}
	if q.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", q.Len())
	}
}

func TestStaticRandom_EmptyServesFallback(t *testing.T) {
	q := NewStatic(nil, mrand.New(mrand.NewPCG(1, 2)))
	if got := q.Random(); got != fallback {
		t.Fatalf("Random() = %q; want %q", got, fallback)
	}
}
