package web

import (
	"log/slog"
	"net/http"
	"strings"

	authpkg "github.com/heartmarshall/pudiya/internal/auth"
	"github.com/heartmarshall/pudiya/internal/dashboard/stats"
	"github.com/heartmarshall/pudiya/internal/dashboard/store"
	"github.com/heartmarshall/pudiya/internal/dashboard/view"
	"github.com/heartmarshall/pudiya/internal/service/auth"
)

// Dashboard handles GET /. Anonymous visitors are sent to the sign-in page.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromCtx(r.Context())
	if !ok {
		redirect(w, r, "/signin")
		return
	}

	snap := h.currentSnapshot()
	fv := h.sessions.Get(id.ID).State()
	d := view.Build(snap, stats.Compute(snap.Entries), fv, id, h.now())

	h.page(w, r, http.StatusOK, view.PageDashboard, d)
}

// currentSnapshot mounts a short-lived store to read the collection the feed
// currently holds. The feed replays its latest update on subscribe, so the
// result is Ready as soon as the first load has completed.
func (h *Handler) currentSnapshot() store.Snapshot {
	st := store.New(h.feed, h.log)
	unsubscribe := st.Subscribe(func(store.Snapshot) {})
	snap := st.Snapshot()
	unsubscribe()
	return snap
}

// SignInPage handles GET /signin.
func (h *Handler) SignInPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := identityFromCtx(r.Context()); ok {
		redirect(w, r, "/")
		return
	}
	h.page(w, r, http.StatusOK, view.PageSignIn, h.authPage("", "", nil))
}

// SignIn handles POST /signin.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))

	result, err := h.auth.LoginWithPassword(r.Context(), auth.LoginPasswordInput{
		Email:    email,
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		h.page(w, r, authStatus(err), view.PageSignIn, h.authPage(email, "", err))
		return
	}

	h.setSession(w, result.AccessToken)
	redirect(w, r, "/")
}

// SignUpPage handles GET /signup.
func (h *Handler) SignUpPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := identityFromCtx(r.Context()); ok {
		redirect(w, r, "/")
		return
	}
	h.page(w, r, http.StatusOK, view.PageSignUp, h.authPage("", "", nil))
}

// SignUp handles POST /signup.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	name := strings.TrimSpace(r.PostFormValue("name"))

	result, err := h.auth.Register(r.Context(), auth.RegisterInput{
		Email:    email,
		Name:     name,
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		h.page(w, r, authStatus(err), view.PageSignUp, h.authPage(email, name, err))
		return
	}

	h.setSession(w, result.AccessToken)
	redirect(w, r, "/")
}

// SignOut handles /signout. The session cookie is cleared even when the
// token revocation fails.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if _, ok := identityFromCtx(r.Context()); ok {
		if err := h.auth.Logout(r.Context()); err != nil {
			h.log.WarnContext(r.Context(), "sign out", slog.String("error", err.Error()))
		}
	}
	h.clearSession(w)
	redirect(w, r, "/signin")
}

func (h *Handler) authPage(email, name string, err error) view.AuthPage {
	p := view.AuthPage{Email: email, Name: name, Enabled: h.auth.Configured()}
	if err != nil {
		p.Error = authpkg.ErrorMessage(err)
	} else if !p.Enabled {
		p.Error = authpkg.Message(authpkg.CodeNotConfigured)
	}
	return p
}

func authStatus(err error) int {
	switch authpkg.Code(err) {
	case authpkg.CodeAlreadyInUse:
		return http.StatusConflict
	case authpkg.CodeWeakCredential, authpkg.CodeInvalidCredential:
		return http.StatusBadRequest
	case authpkg.CodeNotFound:
		return http.StatusUnauthorized
	case authpkg.CodeNotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.CookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
