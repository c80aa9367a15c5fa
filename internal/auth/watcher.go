package auth

import (
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/pudiya/internal/domain"
)

// IdentityChange is emitted when a user signs in or out.
// Identity is nil on sign-out.
type IdentityChange struct {
	UserID   uuid.UUID
	Identity *domain.Identity
}

// Watcher fans out identity change notifications to in-process listeners.
// Listeners are invoked synchronously in registration order, outside the
// watcher's lock, so a listener may unsubscribe itself.
type Watcher struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[uint64]func(IdentityChange)
	order     []uint64
}

// NewWatcher creates an empty watcher.
func NewWatcher() *Watcher {
	return &Watcher{listeners: make(map[uint64]func(IdentityChange))}
}

// Subscribe registers fn and returns a function that removes it.
// The returned function is idempotent.
func (w *Watcher) Subscribe(fn func(IdentityChange)) (unsubscribe func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.listeners[id] = fn
	w.order = append(w.order, id)
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			delete(w.listeners, id)
			for i, v := range w.order {
				if v == id {
					w.order = append(w.order[:i], w.order[i+1:]...)
					break
				}
			}
		})
	}
}

// SignedIn notifies listeners that id is now authenticated.
func (w *Watcher) SignedIn(id domain.Identity) {
	w.notify(IdentityChange{UserID: id.ID, Identity: &id})
}

// SignedOut notifies listeners that userID is no longer authenticated.
func (w *Watcher) SignedOut(userID uuid.UUID) {
	w.notify(IdentityChange{UserID: userID})
}

// Len returns the number of registered listeners.
func (w *Watcher) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.listeners)
}

func (w *Watcher) notify(change IdentityChange) {
	w.mu.Lock()
	fns := make([]func(IdentityChange), 0, len(w.order))
	for _, id := range w.order {
		fns = append(fns, w.listeners[id])
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}
