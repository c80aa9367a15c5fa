package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/pudiya/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/pudiya/internal/adapter/postgres/audit"
	entryrepo "github.com/heartmarshall/pudiya/internal/adapter/postgres/entry"
	tokenrepo "github.com/heartmarshall/pudiya/internal/adapter/postgres/token"
	userrepo "github.com/heartmarshall/pudiya/internal/adapter/postgres/user"
	authpkg "github.com/heartmarshall/pudiya/internal/auth"
	"github.com/heartmarshall/pudiya/internal/config"
	"github.com/heartmarshall/pudiya/internal/dashboard/form"
	"github.com/heartmarshall/pudiya/internal/dashboard/view"
	"github.com/heartmarshall/pudiya/internal/domain"
	"github.com/heartmarshall/pudiya/internal/feed"
	authsvc "github.com/heartmarshall/pudiya/internal/service/auth"
	entrysvc "github.com/heartmarshall/pudiya/internal/service/entry"
	usersvc "github.com/heartmarshall/pudiya/internal/service/user"
	"github.com/heartmarshall/pudiya/internal/transport/middleware"
	"github.com/heartmarshall/pudiya/internal/transport/web"
)

// App is the assembled dashboard service.
type App struct {
	cfg *config.Config
	log *slog.Logger

	pool     *pgxpool.Pool
	hub      *feed.Hub
	listener *feed.PGListener
	watcher  *authpkg.Watcher
	sessions *form.Sessions
	limiter  *middleware.RateLimiter
	web      *web.Handler
	handler  http.Handler

	Auth     *authsvc.Service
	Entries  *entrysvc.Service
	Profiles *usersvc.Service
}

// Run is the application entry point. It loads configuration from
// configPath (see config.LoadFrom), builds the service and serves HTTP until
// ctx is cancelled.
func Run(ctx context.Context, configPath string) error {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(ctx)
}

// New connects to the document store, if one is configured, and wires every
// component. Without a DSN the dashboard starts in its placeholder state.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		cfg:     cfg,
		log:     logger,
		watcher: authpkg.NewWatcher(),
		limiter: middleware.NewRateLimiter(time.Minute),
	}

	if err := a.connect(ctx); err != nil {
		a.limiter.Stop()
		return nil, err
	}

	if a.pool != nil {
		txm := postgres.NewTxManager(a.pool)
		entries := entryrepo.New(a.pool)
		users := userrepo.New(a.pool)
		jwt := authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

		a.Auth = authsvc.NewService(logger, users, tokenrepo.New(a.pool), txm, jwt, a.watcher, cfg.Auth)
		a.Profiles = usersvc.NewService(logger, users)
		a.Entries = entrysvc.NewService(logger, entries, auditrepo.New(a.pool), txm)
		a.hub = feed.NewHub(logger)
		a.listener = feed.NewPGListener(logger, a.pool, entries, a.hub, cfg.Feed)
	} else {
		logger.Warn("database is not configured, dashboard runs without a document store")
		a.Auth = authsvc.NewService(logger, nil, nil, nil, nil, a.watcher, cfg.Auth)
		a.Entries = entrysvc.NewService(logger, nil, nil, nil)
		a.Profiles = usersvc.NewService(logger, nil)
	}

	// Without a document store the controller rejects submits before saving.
	var mutator form.Mutator
	if a.pool != nil {
		mutator = a.Entries
	}
	a.sessions = form.NewSessions(func() *form.Controller {
		return form.New(mutator, nil, nil, logger)
	}, cfg.Dashboard.SessionIdleTTL, logger)

	// Drafts do not survive sign-out.
	a.watcher.Subscribe(func(c authpkg.IdentityChange) {
		if c.Identity == nil {
			a.sessions.Drop(c.UserID)
		}
	})

	render, err := view.NewRenderer()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("app: templates: %w", err)
	}

	a.handler = a.routes(render)
	return a, nil
}

func (a *App) connect(ctx context.Context) error {
	pool, err := postgres.NewPool(ctx, a.cfg.Database)
	if errors.Is(err, domain.ErrNotConfigured) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}

	if a.cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, a.log); err != nil {
			pool.Close()
			return fmt.Errorf("app: %w", err)
		}
	}

	a.pool = pool
	a.log.Info("connected to database",
		slog.Int("max_conns", int(a.cfg.Database.MaxConns)))
	return nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Serve runs the HTTP server, the entries feed and the form session janitor
// until ctx is cancelled or one of them fails, then shuts the server down
// gracefully.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		Handler:           a.handler,
		ReadTimeout:       a.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: a.cfg.Server.ReadTimeout,
		WriteTimeout:      a.cfg.Server.WriteTimeout,
		IdleTimeout:       a.cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(a.log.Handler(), slog.LevelWarn),
	}
	srv.RegisterOnShutdown(a.web.Shutdown)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	g.Go(func() error { return a.RunWorkers(gctx) })

	err := g.Wait()
	a.log.Info("application stopped")
	return err
}

// RunWorkers runs the entries feed listener, when a document store is
// configured, and the form session janitor until ctx is cancelled.
func (a *App) RunWorkers(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.listener != nil {
		g.Go(func() error { return a.listener.Run(gctx) })
	}
	g.Go(func() error { return a.sessions.Run(gctx, a.cfg.Dashboard.JanitorInterval) })

	return g.Wait()
}

// Close releases the feed hub, the rate limiter and the database pool.
func (a *App) Close() {
	if a.hub != nil {
		a.hub.Close()
	}
	a.limiter.Stop()
	if a.pool != nil {
		a.pool.Close()
	}
}
