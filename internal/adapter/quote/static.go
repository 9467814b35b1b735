// Package quote hands out the reward a client earns by solving a challenge.
package quote

import (
	mrand "math/rand/v2"
)

// fallback is served when the catalog carries no quotes.
const fallback = "Challenge accepted."

type Static struct {
	list []string
	r    *mrand.Rand
}

// NewStatic serves quotes from list; r may be nil to use the global source.
func NewStatic(list []string, r *mrand.Rand) *Static {
	return &Static{list: list, r: r}
}

func (s *Static) Random() string {
	if len(s.list) == 0 {
		return fallback
	}
	if s.r != nil {
		return s.list[s.r.IntN(len(s.list))]
	}
	return s.list[mrand.IntN(len(s.list))]
}

func (s *Static) Len() int { return len(s.list) }
