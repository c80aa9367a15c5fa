package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/pudiya/internal/feed"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// feedProbe reports the realtime feed state.
type feedProbe interface {
	Latest() (feed.Update, bool)
	Listeners() int
}

const (
	statusOK            = "ok"
	statusDown          = "down"
	statusDegraded      = "degraded"
	statusStarting      = "starting"
	statusNotConfigured = "not_configured"
)

// HealthHandler serves health check endpoints.
// A nil db means the document store is not configured; the service still
// runs in placeholder mode and reports itself as ready.
type HealthHandler struct {
	db      dbPinger
	feed    feedProbe
	version string
}

// NewHealthHandler creates a HealthHandler. Either dependency may be nil.
func NewHealthHandler(db dbPinger, f feedProbe, version string) *HealthHandler {
	return &HealthHandler{db: db, feed: f, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    statusOK,
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. Pings DB: 200 if OK or not configured,
// 503 if the ping fails.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	db := h.checkDB(r.Context())

	status := http.StatusOK
	if db.Status == statusDown {
		status = http.StatusServiceUnavailable
	}
	overall := db.Status
	if overall == statusNotConfigured {
		overall = statusOK
	}

	writeJSON(w, status, HealthResponse{
		Status:    overall,
		Timestamp: time.Now(),
	})
}

// Health is the full health check: database with latency, realtime feed
// state, and version. A failing database yields 503; a failing feed only
// degrades the overall status.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	db := h.checkDB(r.Context())
	components := map[string]CompStatus{"database": db}

	overall := statusOK
	httpStatus := http.StatusOK
	if db.Status == statusDown {
		overall = statusDown
		httpStatus = http.StatusServiceUnavailable
	}

	if h.feed != nil {
		fc := h.checkFeed()
		components["feed"] = fc
		if fc.Status == statusDown && overall == statusOK {
			overall = statusDegraded
		}
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) checkDB(ctx context.Context) CompStatus {
	if h.db == nil {
		return CompStatus{Status: statusNotConfigured}
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return CompStatus{Status: statusDown}
	}
	return CompStatus{Status: statusOK, Latency: time.Since(start).String()}
}

func (h *HealthHandler) checkFeed() CompStatus {
	listeners := strconv.Itoa(h.feed.Listeners()) + " listeners"
	u, ok := h.feed.Latest()
	switch {
	case !ok:
		return CompStatus{Status: statusStarting, Detail: listeners}
	case u.Err != nil:
		return CompStatus{Status: statusDown, Detail: u.Err.Error()}
	default:
		return CompStatus{Status: statusOK, Detail: listeners}
	}
}
