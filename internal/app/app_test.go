package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/court-metrics/internal/config"
	"github.com/iliyamo/court-metrics/internal/logging"
	queue_publisher "github.com/iliyamo/court-metrics/internal/service"
	"github.com/iliyamo/court-metrics/internal/utils"
)

func sqliteConfig(t *testing.T) config.Config {
	return config.Config{
		Env:         "development",
		Port:        "0",
		Secret:      "app-test-secret",
		BcryptCost:  bcrypt.MinCost,
		Driver:      config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "app.db"),
		ProsCSVPath: filepath.Join("..", "..", "data", "pro_players_sample.csv"),
	}
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("CACHE_ENABLED", "true")
	cfg := sqliteConfig(t)
	ctx := context.Background()

	users, matches, closeFn, err := OpenStores(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	codec, err := utils.NewSessionCodec(cfg.Secret)
	require.NoError(t, err)
	pros, err := LoadPros(cfg.ProsCSVPath)
	require.NoError(t, err)

	return NewEcho(Deps{
		Cfg:     cfg,
		Log:     logging.Discard(),
		Users:   users,
		Matches: matches,
		Codec:   codec,
		Events:  queue_publisher.Noop{},
		Pros:    pros,
	})
}

func serve(e *echo.Echo, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNewEcho_EndToEnd(t *testing.T) {
	e := newTestEcho(t)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/healthz", "", nil).Code)

	reg := serve(e, http.MethodPost, "/auth/register", `{"email":"Fan@Example.com","password":"baseline-1"}`, nil)
	require.Equal(t, http.StatusCreated, reg.Code, reg.Body.String())
	var ck *http.Cookie
	for _, c := range reg.Result().Cookies() {
		if c.Name == utils.SessionCookieName {
			ck = c
		}
	}
	require.NotNil(t, ck)

	for _, body := range []string{
		`{"date":"2024-05-01","first_serves_made":5,"first_serves_attempted":10,"outcome":"Win"}`,
		`{"date":"2024-05-02","first_serves_made":7,"first_serves_attempted":10,"outcome":"Loss"}`,
	} {
		rec := serve(e, http.MethodPost, "/matches", body, ck)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	stats := serve(e, http.MethodGet, "/matches/stats", "", ck)
	require.Equal(t, http.StatusOK, stats.Code)
	assert.Contains(t, stats.Body.String(), `"matches":2`)
	assert.Contains(t, stats.Body.String(), `"firstServePct":60`)
	assert.Contains(t, stats.Body.String(), `"winRatePct":50`)

	// no redis in tests: the cache and limiter pass through
	pros := serve(e, http.MethodGet, "/pros", "", nil)
	require.Equal(t, http.StatusOK, pros.Code)
	assert.Contains(t, pros.Body.String(), "Novak Djokovic")
	assert.Empty(t, pros.Header().Get("X-Cache"))

	player := serve(e, http.MethodGet, "/pros/Iga%20Swiatek", "", nil)
	assert.Equal(t, http.StatusOK, player.Code)

	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodGet, "/matches", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodGet, "/nope", "", nil).Code)
}

func TestOpenStores_UnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Driver = "cassandra"
	_, _, _, err := OpenStores(context.Background(), cfg)
	require.Error(t, err)
}

func TestLoadPros_MissingFile(t *testing.T) {
	_, err := LoadPros(filepath.Join(t.TempDir(), "none.csv"))
	assert.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	t.Setenv("REDIS_ADDR", "127.0.0.1:1")
	cfg := sqliteConfig(t)
	a, err := New(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
