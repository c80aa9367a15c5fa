// Package feed delivers the live entry collection to in-process subscribers.
//
// A Hub holds the latest full snapshot and fans every replacement out to its
// subscribers. A PGListener keeps the hub in sync with the entries table via
// PostgreSQL LISTEN/NOTIFY.
package feed

import (
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/heartmarshall/pudiya/internal/domain"
)

// ErrClosed is returned by Subscribe after the hub has been closed.
var ErrClosed = errors.New("feed: hub closed")

// Update is one push from the feed: either a full replacement collection
// (Err == nil) or a subscription-level failure. A failure carries the last
// good collection, nil if none was ever published.
type Update struct {
	Entries []domain.Entry
	Err     error
}

type subscriber struct {
	fn     func(Update)
	active atomic.Bool
}

// Hub fans full snapshots out to subscribers. Deliveries are serialized, so
// every subscriber observes updates in publish order.
type Hub struct {
	log *slog.Logger

	// deliver serializes Publish and the initial replay in Subscribe.
	deliver sync.Mutex

	mu     sync.Mutex
	subs   map[uint64]*subscriber
	nextID uint64
	latest *Update
	good   []domain.Entry
	closed bool
}

// NewHub creates an empty hub. Subscribers receive nothing until the first
// Publish or PublishError.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		log:  logger.With("service", "feed"),
		subs: make(map[uint64]*subscriber),
	}
}

// Subscribe registers fn and immediately replays the latest update, if any.
// The returned cancel function is idempotent; after it returns fn is not
// called again. fn must not call Subscribe.
func (h *Hub) Subscribe(fn func(Update)) (cancel func(), err error) {
	h.deliver.Lock()
	defer h.deliver.Unlock()

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrClosed
	}
	id := h.nextID
	h.nextID++
	sub := &subscriber{fn: fn}
	sub.active.Store(true)
	h.subs[id] = sub
	latest := h.latest
	h.mu.Unlock()

	if latest != nil {
		fn(*latest)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.active.Store(false)
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}, nil
}

// Publish replaces the collection and delivers it to every subscriber.
func (h *Hub) Publish(entries []domain.Entry) {
	h.publish(Update{Entries: slices.Clone(entries)})
}

// PublishError delivers a subscription-level failure together with the last
// good collection, so subscribers mounted after the failure still see it.
func (h *Hub) PublishError(err error) {
	h.publish(Update{Err: err})
}

func (h *Hub) publish(u Update) {
	h.deliver.Lock()
	defer h.deliver.Unlock()

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	if u.Err != nil {
		u.Entries = h.good
	} else {
		h.good = u.Entries
	}
	h.latest = &u
	subs := make([]*subscriber, 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		if s.active.Load() {
			s.fn(u)
		}
	}
}

// Latest returns the most recent update and whether one exists.
func (h *Hub) Latest() (Update, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil {
		return Update{}, false
	}
	return *h.latest, true
}

// Listeners reports the number of active subscribers.
func (h *Hub) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close drops every subscriber. Later Subscribe calls return ErrClosed and
// publishes are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, s := range h.subs {
		s.active.Store(false)
		delete(h.subs, id)
	}
	h.log.Info("feed hub closed")
}
