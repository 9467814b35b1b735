// Package store keeps issued challenges until they are answered or expire.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/dayanaadylkhanova/proof-of-response/internal/entity"
)

var (
	ErrNotFound = errors.New("challenge not found")
	ErrExpired  = errors.New("challenge expired")
)

type item struct {
	env     entity.ChallengeEnvelope
	expires time.Time
}

// Memory is a single-use, TTL-bounded challenge store safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]item
}

func NewMemory(ttl time.Duration) *Memory {
	return newMemory(ttl, time.Now)
}

func newMemory(ttl time.Duration, now func() time.Time) *Memory {
	return &Memory{ttl: ttl, now: now, items: make(map[string]item)}
}

// Put records env under its id. Expired entries are swept on the way.
func (m *Memory) Put(env entity.ChallengeEnvelope) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)
	m.items[env.ID] = item{env: env, expires: now.Add(m.ttl)}
}

// Take removes and returns the challenge with the given id. A challenge can
// be taken once.
func (m *Memory) Take(id string) (entity.ChallengeEnvelope, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[id]
	if !ok {
		return entity.ChallengeEnvelope{}, ErrNotFound
	}
	delete(m.items, id)
	if m.now().After(it.expires) {
		return entity.ChallengeEnvelope{}, ErrExpired
	}
	return it.env, nil
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Memory) sweepLocked(now time.Time) {
	for id, it := range m.items {
		if now.After(it.expires) {
			delete(m.items, id)
		}
	}
}
