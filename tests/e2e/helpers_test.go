//go:build e2e

package e2e_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/pudiya/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/pudiya/internal/app"
	"github.com/heartmarshall/pudiya/internal/config"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	App    *app.App
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig(dsn string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			AuthRateLimit:   1000,
		},
		Database: config.DatabaseConfig{
			DSN:             dsn,
			MaxConns:        10,
			MinConns:        1,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: time.Minute,
		},
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret-at-least-32-chars-long!!",
			JWTIssuer:        "test-issuer",
			AccessTokenTTL:   15 * time.Minute,
			RefreshTokenTTL:  720 * time.Hour,
			PasswordHashCost: 4,
			CookieName:       "pudiya_session",
		},
		Log: config.LogConfig{Level: "debug", Format: "text"},
		CORS: config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PATCH,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Feed: config.FeedConfig{
			ReconnectMin:  100 * time.Millisecond,
			ReconnectMax:  time.Second,
			ReloadTimeout: 5 * time.Second,
		},
		Dashboard: config.DashboardConfig{
			SessionIdleTTL:  time.Minute,
			JanitorInterval: time.Minute,
			KeepAlive:       time.Second,
		},
	}
}

// setupTestServer bootstraps the full application stack, feed listener
// included, backed by a real PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := testhelper.DSN(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	a, err := app.New(context.Background(), testConfig(dsn), logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = a.RunWorkers(ctx)
	}()

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-done
		a.Close()
	})

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   testhelper.SetupTestDB(t),
		App:    a,
	}
}

// ---------------------------------------------------------------------------
// REST helpers.
// ---------------------------------------------------------------------------

func restRequest(t *testing.T, ts *testServer, method, path, token string, body any) *http.Response {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

type authBody struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	User         struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Initials string `json:"initials"`
	} `json:"user"`
}

type entryBody struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Date      string  `json:"date"`
	Intensity string  `json:"intensity"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes"`
	OwnerID   string  `json:"ownerId"`
	OwnerName string  `json:"ownerName"`
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.New().String()[:8])
}

// registerUser signs up a fresh account through the API.
func registerUser(t *testing.T, ts *testServer, name string) authBody {
	t.Helper()

	resp := restRequest(t, ts, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    uniqueEmail("user"),
		"name":     name,
		"password": "securepassword123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[authBody](t, resp)
}

// ---------------------------------------------------------------------------
// Browser helpers.
// ---------------------------------------------------------------------------

// browser returns a client with a cookie jar that does not follow redirects.
func browser(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, c *http.Client, target string, values url.Values) *http.Response {
	t.Helper()

	resp, err := c.PostForm(target, values)
	require.NoError(t, err)
	return resp
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

type sseEvent struct {
	name string
	data string
}

// streamEvents opens the dashboard event stream and parses it in the
// background until the stream ends.
func streamEvents(t *testing.T, c *http.Client, baseURL string) <-chan sseEvent {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/dashboard/events", nil)
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	t.Cleanup(func() { resp.Body.Close() })

	out := make(chan sseEvent, 32)
	go func() {
		defer close(out)
		r := bufio.NewReader(resp.Body)
		var ev sseEvent
		var data []string
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimRight(line, "\n")
			switch {
			case line == "":
				if ev.name != "" {
					ev.data = strings.Join(data, "\n")
					out <- ev
				}
				ev, data = sseEvent{}, nil
			case strings.HasPrefix(line, "event: "):
				ev.name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = append(data, strings.TrimPrefix(line, "data: "))
			}
		}
	}()
	return out
}

func waitForEvent(t *testing.T, events <-chan sseEvent, name, contains string) sseEvent {
	t.Helper()

	deadline := time.After(10 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "stream ended before %q event containing %q", name, contains)
			if ev.name == name && strings.Contains(ev.data, contains) {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q event containing %q", name, contains)
		}
	}
}
