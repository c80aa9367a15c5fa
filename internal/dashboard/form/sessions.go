package form

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	ctrl     *Controller
	lastUsed time.Time
}

// Sessions keeps one Controller per signed-in user and evicts the ones that
// sit idle longer than the configured TTL.
type Sessions struct {
	log     *slog.Logger
	factory func() *Controller
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	items map[uuid.UUID]*session
}

// NewSessions creates a registry. factory builds a fresh controller for a
// user seen for the first time.
func NewSessions(factory func() *Controller, ttl time.Duration, logger *slog.Logger) *Sessions {
	return &Sessions{
		log:     logger.With("service", "form_sessions"),
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
		items:   make(map[uuid.UUID]*session),
	}
}

// Get returns the controller of userID, creating it if needed.
func (s *Sessions) Get(userID uuid.UUID) *Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[userID]
	if !ok {
		it = &session{ctrl: s.factory()}
		s.items[userID] = it
	}
	it.lastUsed = s.now()
	return it.ctrl
}

// Drop disposes and forgets the controller of userID.
func (s *Sessions) Drop(userID uuid.UUID) {
	s.mu.Lock()
	it, ok := s.items[userID]
	delete(s.items, userID)
	s.mu.Unlock()

	if ok {
		it.ctrl.Dispose()
	}
}

// Sweep evicts controllers idle for longer than the TTL. Controllers that are
// saving are kept. It returns the number evicted.
func (s *Sessions) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var evicted []*Controller
	for id, it := range s.items {
		if it.lastUsed.Before(cutoff) && !it.ctrl.State().IsSaving() {
			evicted = append(evicted, it.ctrl)
			delete(s.items, id)
		}
	}
	s.mu.Unlock()

	for _, c := range evicted {
		c.Dispose()
	}
	return len(evicted)
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Run sweeps every interval until ctx is cancelled.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.DebugContext(ctx, "evicted idle form sessions", slog.Int("count", n))
			}
		}
	}
}
