// Package store holds the live entry collection of one mounted dashboard and
// keeps it in sync with the push-based feed.
package store

import (
	"log/slog"
	"sync"

	"github.com/heartmarshall/pudiya/internal/domain"
	"github.com/heartmarshall/pudiya/internal/feed"
)

// Feed is the push-based source of full collection snapshots.
type Feed interface {
	Subscribe(fn func(feed.Update)) (cancel func(), err error)
}

// State describes where the collection stands.
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
	StateNotConfigured
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	case StateNotConfigured:
		return "not_configured"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the collection. Version increases with
// every replacement, so two snapshots with equal versions carry the same
// entries.
type Snapshot struct {
	Entries []domain.Entry
	State   State
	Err     error
	Version uint64
}

// Store owns the collection and at most one upstream feed subscription.
type Store struct {
	log  *slog.Logger
	feed Feed

	mu       sync.Mutex
	snap     Snapshot
	gen      uint64
	fn       func(Snapshot)
	upstream func()
}

// New creates a store over f. A nil f means the document store is not
// configured; the store then stays in StateNotConfigured.
func New(f Feed, logger *slog.Logger) *Store {
	s := &Store{
		log:  logger.With("service", "entry_store"),
		feed: f,
	}
	if f == nil {
		s.snap.State = StateNotConfigured
	}
	return s
}

// Subscribe delivers the current snapshot to fn immediately and every
// replacement afterwards. A previous subscription, if any, is torn down
// first. The returned function stops further callbacks and releases the
// upstream feed handle; calling a superseded handle is a no-op.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	prev := s.upstream
	s.upstream = nil
	s.fn = fn
	snap := s.snap
	s.mu.Unlock()

	if prev != nil {
		prev()
	}

	fn(snap)

	if s.feed != nil {
		s.attach(gen)
	}

	var once sync.Once
	return func() {
		once.Do(func() { s.detach(gen) })
	}
}

func (s *Store) attach(gen uint64) {
	cancel, err := s.feed.Subscribe(func(u feed.Update) { s.apply(gen, u) })
	if err != nil {
		s.log.Error("subscribe to entries feed", slog.String("error", err.Error()))
		s.apply(gen, feed.Update{Err: err})
		return
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		cancel()
		return
	}
	s.upstream = cancel
	s.mu.Unlock()
}

func (s *Store) detach(gen uint64) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	s.gen++
	cancel := s.upstream
	s.upstream = nil
	s.fn = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// apply replaces the collection. A failure keeps the entries it carries, or
// the previous ones when it carries none.
func (s *Store) apply(gen uint64, u feed.Update) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}

	next := Snapshot{Version: s.snap.Version + 1}
	if u.Err != nil {
		next.Entries = u.Entries
		if next.Entries == nil {
			next.Entries = s.snap.Entries
		}
		next.State = StateError
		next.Err = u.Err
	} else {
		next.Entries = u.Entries
		next.State = StateReady
	}
	s.snap = next
	fn := s.fn
	s.mu.Unlock()

	if fn != nil {
		fn(next)
	}
}

// Snapshot returns the current collection.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Close releases the active subscription, if any.
func (s *Store) Close() {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()
	s.detach(gen)
}
