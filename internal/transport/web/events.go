package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	authpkg "github.com/heartmarshall/pudiya/internal/auth"
	"github.com/heartmarshall/pudiya/internal/dashboard/stats"
	"github.com/heartmarshall/pudiya/internal/dashboard/store"
	"github.com/heartmarshall/pudiya/internal/dashboard/view"
)

// Server-sent event names.
const (
	EventDashboard = "dashboard"
	EventModel     = "model"
)

// Events handles GET /dashboard/events. Each connection mounts its own
// store; every snapshot is pushed as an HTML fragment ("dashboard") and as
// the JSON view model ("model"). The stream ends when the client goes away,
// when the user signs out, or on server shutdown. The store subscription is
// released with it.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromCtx(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	rc := http.NewResponseController(w)
	// The stream outlives the server write timeout.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.log.WarnContext(r.Context(), "clear write deadline", slog.String("error", err.Error()))
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	updates := make(chan store.Snapshot, 1)
	st := store.New(h.feed, h.log)
	unsubscribe := st.Subscribe(func(s store.Snapshot) {
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- s:
		default:
		}
	})
	defer unsubscribe()

	signedOut := make(chan struct{})
	if h.watcher != nil {
		var once sync.Once
		stop := h.watcher.Subscribe(func(c authpkg.IdentityChange) {
			if c.Identity == nil && c.UserID == id.ID {
				once.Do(func() { close(signedOut) })
			}
		})
		defer stop()
	}

	keepAlive := time.NewTicker(h.cfg.KeepAlive)
	defer keepAlive.Stop()

	tracker := &stats.Tracker{}
	h.log.DebugContext(r.Context(), "dashboard stream opened", slog.String("user_id", id.ID.String()))

	for {
		select {
		case <-r.Context().Done():
			return
		case <-signedOut:
			return
		case <-h.done:
			return
		case snap := <-updates:
			fv := h.sessions.Get(id.ID).State()
			d := view.Build(snap, tracker.Get(snap.Version, snap.Entries), fv, id, h.now())
			if err := h.writeDashboard(w, d); err != nil {
				h.log.DebugContext(r.Context(), "dashboard stream write", slog.String("error", err.Error()))
				return
			}
		case <-keepAlive.C:
			if _, err := io.WriteString(w, ": keepalive\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func (h *Handler) writeDashboard(w io.Writer, d view.Dashboard) error {
	fragment, err := h.render.Fragment(d)
	if err != nil {
		return err
	}
	if err := writeEvent(w, EventDashboard, fragment); err != nil {
		return err
	}

	model, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal dashboard: %w", err)
	}
	return writeEvent(w, EventModel, string(model))
}

// writeEvent writes one server-sent event. Multi-line data is split into
// one data field per line.
func writeEvent(w io.Writer, name, data string) error {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(name)
	b.WriteByte('\n')
	for _, line := range strings.Split(data, "\n") {
		b.WriteString("data: ")
		b.WriteString(strings.TrimSuffix(line, "\r"))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}
