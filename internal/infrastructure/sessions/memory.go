// Package sessions keeps live rounds in memory and forgets idle ones.
package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"svw.info/tenmatch/internal/usecase"
)

type entry struct {
	round    *usecase.Round
	lastSeen time.Time
}

// Memory is an in-memory round registry with idle eviction.
type Memory struct {
	mu     sync.RWMutex
	rounds map[string]*entry
	ttl    time.Duration
	now    func() time.Time
	log    logrus.FieldLogger
}

func NewMemory(ttl time.Duration, log logrus.FieldLogger) *Memory {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Memory{
		rounds: make(map[string]*entry),
		ttl:    ttl,
		now:    time.Now,
		log:    log.WithField("component", "sessions"),
	}
}

// Add stores r under a fresh ID.
func (m *Memory) Add(r *usecase.Round) string {
	id := uuid.NewString()
	m.mu.Lock()
	m.rounds[id] = &entry{round: r, lastSeen: m.now()}
	m.mu.Unlock()
	return id
}

// Get returns the round and marks it as recently used.
func (m *Memory) Get(id string) (*usecase.Round, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rounds[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = m.now()
	return e.round, true
}

// Len returns the number of live rounds.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rounds)
}

// Sweep drops rounds idle for longer than the TTL and closes their
// observers. It returns how many were dropped.
func (m *Memory) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	var stale []*usecase.Round
	for id, e := range m.rounds {
		if now.Sub(e.lastSeen) > m.ttl {
			stale = append(stale, e.round)
			delete(m.rounds, id)
		}
	}
	m.mu.Unlock()

	for _, r := range stale {
		if err := r.Close(); err != nil {
			m.log.WithError(err).Warn("close observer of evicted round")
		}
	}
	if len(stale) > 0 {
		m.log.WithField("evicted", len(stale)).Info("swept idle rounds")
	}
	return len(stale)
}

// Run sweeps every interval until ctx is done. A non-positive interval
// disables sweeping.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		m.log.WithField("interval", interval).Warn("sweeping disabled")
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			m.Sweep(t)
		}
	}
}
