package app

import (
	"net/http"

	"github.com/heartmarshall/pudiya/internal/dashboard/store"
	"github.com/heartmarshall/pudiya/internal/dashboard/view"
	"github.com/heartmarshall/pudiya/internal/transport/middleware"
	"github.com/heartmarshall/pudiya/internal/transport/rest"
	"github.com/heartmarshall/pudiya/internal/transport/web"
)

// routes builds the root handler: health probes, the JSON API and the
// server-rendered dashboard behind one middleware chain.
func (a *App) routes(render *view.Renderer) http.Handler {
	mux := http.NewServeMux()

	// Interface fields must stay nil, not typed nil, when there is no store.
	health := rest.NewHealthHandler(nil, nil, BuildVersion())
	var entriesFeed store.Feed
	if a.pool != nil {
		health = rest.NewHealthHandler(a.pool, a.hub, BuildVersion())
		entriesFeed = a.hub
	}
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	limit := a.limiter.Limit(a.cfg.Server.AuthRateLimit)

	authH := rest.NewAuthHandler(a.Auth, a.log)
	mux.Handle("POST /auth/register", limit(http.HandlerFunc(authH.Register)))
	mux.Handle("POST /auth/login", limit(http.HandlerFunc(authH.Login)))
	mux.Handle("POST /auth/refresh", limit(http.HandlerFunc(authH.Refresh)))
	mux.HandleFunc("POST /auth/logout", authH.Logout)

	entryH := rest.NewEntryHandler(a.Entries, a.log)
	mux.Handle("GET /api/entries", middleware.RequireUser(http.HandlerFunc(entryH.List)))
	mux.Handle("POST /api/entries", middleware.RequireUser(http.HandlerFunc(entryH.Create)))
	mux.Handle("PATCH /api/entries/{id}", middleware.RequireUser(http.HandlerFunc(entryH.Patch)))
	mux.Handle("GET /api/entries/{id}/history", middleware.RequireUser(http.HandlerFunc(entryH.History)))
	mux.Handle("GET /api/stats", middleware.RequireUser(http.HandlerFunc(entryH.Stats)))

	profileH := rest.NewProfileHandler(a.Profiles, a.log)
	mux.Handle("GET /api/me", middleware.RequireUser(http.HandlerFunc(profileH.Get)))
	mux.Handle("PATCH /api/me", middleware.RequireUser(http.HandlerFunc(profileH.Update)))

	a.web = web.NewHandler(a.log, a.Auth, a.Entries, a.sessions, entriesFeed, a.watcher, render, web.Config{
		CookieName:   a.cfg.Auth.CookieName,
		CookieSecure: a.cfg.Auth.CookieSecure,
		CookieTTL:    a.cfg.Auth.RefreshTokenTTL,
		KeepAlive:    a.cfg.Dashboard.KeepAlive,
	})
	a.web.Routes(mux, limit)

	return middleware.Chain(
		middleware.RequestID(),
		middleware.CORS(a.cfg.CORS),
		middleware.Auth(a.Auth, a.cfg.Auth.CookieName),
		middleware.Logger(a.log),
		middleware.Recovery(a.log),
	)(mux)
}
