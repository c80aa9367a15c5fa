// Package web serves the server-rendered dashboard: auth pages, the entry
// form routes and the live update stream.
package web

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	authpkg "github.com/heartmarshall/pudiya/internal/auth"
	"github.com/heartmarshall/pudiya/internal/dashboard/form"
	"github.com/heartmarshall/pudiya/internal/dashboard/store"
	"github.com/heartmarshall/pudiya/internal/dashboard/view"
	"github.com/heartmarshall/pudiya/internal/domain"
	"github.com/heartmarshall/pudiya/internal/service/auth"
	"github.com/heartmarshall/pudiya/pkg/ctxutil"
)

type authService interface {
	LoginWithPassword(ctx context.Context, input auth.LoginPasswordInput) (*auth.AuthResult, error)
	Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	Logout(ctx context.Context) error
	Configured() bool
}

type entryReader interface {
	GetEntry(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
}

type identityWatcher interface {
	Subscribe(fn func(authpkg.IdentityChange)) (unsubscribe func())
}

// Config holds the web layer settings.
type Config struct {
	CookieName   string
	CookieSecure bool
	CookieTTL    time.Duration
	KeepAlive    time.Duration
}

// Handler serves the dashboard pages.
type Handler struct {
	log      *slog.Logger
	auth     authService
	entries  entryReader
	sessions *form.Sessions
	feed     store.Feed
	watcher  identityWatcher
	render   *view.Renderer
	cfg      Config
	now      func() time.Time

	done     chan struct{}
	doneOnce sync.Once
}

// NewHandler creates a Handler. A nil f means the document store is not
// configured; watcher may be nil.
func NewHandler(
	logger *slog.Logger,
	authSvc authService,
	entries entryReader,
	sessions *form.Sessions,
	f store.Feed,
	watcher identityWatcher,
	render *view.Renderer,
	cfg Config,
) *Handler {
	if cfg.KeepAlive <= 0 {
		cfg.KeepAlive = 25 * time.Second
	}
	return &Handler{
		log:      logger.With("handler", "web"),
		auth:     authSvc,
		entries:  entries,
		sessions: sessions,
		feed:     f,
		watcher:  watcher,
		render:   render,
		cfg:      cfg,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Shutdown ends every open dashboard stream. Streams never go idle, so the
// HTTP server calls this before it waits for connections to drain.
func (h *Handler) Shutdown() {
	h.doneOnce.Do(func() { close(h.done) })
}

// Routes registers every web route on mux. When limit is not nil it wraps
// the credential submissions.
func (h *Handler) Routes(mux *http.ServeMux, limit func(http.Handler) http.Handler) {
	credentials := func(fn http.HandlerFunc) http.Handler {
		if limit == nil {
			return fn
		}
		return limit(fn)
	}

	mux.HandleFunc("GET /{$}", h.Dashboard)
	mux.HandleFunc("GET /signin", h.SignInPage)
	mux.Handle("POST /signin", credentials(h.SignIn))
	mux.HandleFunc("GET /signup", h.SignUpPage)
	mux.Handle("POST /signup", credentials(h.SignUp))
	mux.HandleFunc("GET /signout", h.SignOut)
	mux.HandleFunc("POST /signout", h.SignOut)

	mux.HandleFunc("POST /form/new", h.FormNew)
	mux.HandleFunc("POST /form/edit/{id}", h.FormEdit)
	mux.HandleFunc("POST /form/field", h.FormField)
	mux.HandleFunc("POST /form/submit", h.FormSubmit)
	mux.HandleFunc("POST /form/cancel", h.FormCancel)

	mux.HandleFunc("GET /dashboard/events", h.Events)
}

func identityFromCtx(ctx context.Context) (domain.Identity, bool) {
	u, ok := ctxutil.UserFromCtx(ctx)
	if !ok {
		return domain.Identity{}, false
	}
	return domain.Identity{ID: u.ID, Name: u.Name, Email: u.Email}, true
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.render.Page(&buf, name, data); err != nil {
		h.log.ErrorContext(r.Context(), "render page", slog.String("page", name), slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w) //nolint:errcheck
}
