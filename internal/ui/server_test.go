package ui

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapblocks/internal/session"
	"github.com/leapstack-labs/leapblocks/internal/testutil"
	"github.com/leapstack-labs/leapblocks/internal/ui/features/common"
)

func newTestServer(t *testing.T, cfg Config) (*httptest.Server, *session.Manager) {
	t.Helper()
	logger := testutil.NewTestLogger(t)
	if cfg.Sessions == nil {
		cfg.Sessions = session.NewManager(session.Config{Logger: logger, ShowCode: true})
	}
	cfg.Logger = logger
	cfg.SessionSecret = "test-secret-key-32-bytes-long!!"

	handler, _, err := NewServer(cfg).Handler()
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, cfg.Sessions
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func do(t *testing.T, c *http.Client, method, url, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestServer_SessionCookieBindsEditor(t *testing.T) {
	srv, manager := newTestServer(t, Config{})
	alice := newClient(t)
	bob := newClient(t)

	status, _ := do(t, alice, http.MethodGet, srv.URL+"/", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, manager.Len())

	cookies := alice.Jar.Cookies(mustParse(t, srv.URL))
	require.Len(t, cookies, 1)
	assert.Equal(t, common.CookieName, cookies[0].Name)

	status, body := do(t, alice, http.MethodPost, srv.URL+"/api/drop", `{"kind":"start","x":145,"y":120}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, 1, manager.Len(), "same browser, same session")

	_, page := do(t, alice, http.MethodGet, srv.URL+"/", "")
	assert.Contains(t, page, `id="block-0"`)
	assert.Contains(t, page, "// Program Start")

	_, other := do(t, bob, http.MethodGet, srv.URL+"/", "")
	assert.NotContains(t, other, `id="block-0"`)
	assert.Equal(t, 2, manager.Len())
}

func TestServer_EvictedSessionIsReplaced(t *testing.T) {
	srv, manager := newTestServer(t, Config{})
	c := newClient(t)

	do(t, c, http.MethodPost, srv.URL+"/api/drop", `{"kind":"end","x":145,"y":120}`)
	require.Equal(t, 1, manager.Len())

	// Forge a cookie for a session the manager never issued.
	c.Jar.SetCookies(mustParse(t, srv.URL), []*http.Cookie{{Name: common.CookieName, Value: "garbage"}})

	status, page := do(t, c, http.MethodGet, srv.URL+"/", "")
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, page, `id="block-0"`)
	assert.Equal(t, 2, manager.Len())
}

func TestServer_Routes(t *testing.T) {
	srv, _ := newTestServer(t, Config{})
	c := newClient(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{name: "page", method: http.MethodGet, path: "/", wantStatus: http.StatusOK, wantBody: "LeapBlocks"},
		{name: "script", method: http.MethodGet, path: "/static/canvas.js", wantStatus: http.StatusOK},
		{name: "missing asset", method: http.MethodGet, path: "/static/nope.js", wantStatus: http.StatusNotFound},
		{name: "drop", method: http.MethodPost, path: "/api/drop", body: `{"kind":"process","x":145,"y":120}`, wantStatus: http.StatusOK, wantBody: `"action":"add"`},
		{name: "open form", method: http.MethodGet, path: "/api/blocks/block-0/config", wantStatus: http.StatusOK, wantBody: "config-modal"},
		{name: "save form", method: http.MethodPost, path: "/api/blocks/block-0/config", body: `{"config":{"operation":"tick()"}}`, wantStatus: http.StatusOK, wantBody: "tick()"},
		{name: "dialect", method: http.MethodPost, path: "/api/code/dialect", body: `{"dialect":"py"}`, wantStatus: http.StatusOK},
		{name: "download", method: http.MethodGet, path: "/api/code/download", wantStatus: http.StatusOK, wantBody: "tick()\n"},
		{name: "toggle", method: http.MethodPost, path: "/api/code/toggle", wantStatus: http.StatusOK},
		{name: "delete", method: http.MethodDelete, path: "/api/blocks/block-0", wantStatus: http.StatusOK},
		{name: "clear", method: http.MethodPost, path: "/api/clear", wantStatus: http.StatusOK},
		{name: "hot reload needs dev mode", method: http.MethodGet, path: "/hotreload", wantStatus: http.StatusNotFound},
	}

	// Steps share one browser and run in order.
	for _, tt := range tests {
		status, body := do(t, c, tt.method, srv.URL+tt.path, tt.body)
		assert.Equal(t, tt.wantStatus, status, "%s: %s", tt.name, body)
		if tt.wantBody != "" {
			assert.Contains(t, body, tt.wantBody, tt.name)
		}
	}
}

func TestServer_DevMode(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "canvas.js"), []byte("console.log('dev');\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "canvas.css"), []byte("body{}\n"), 0o600))

	srv, _ := newTestServer(t, Config{Watch: true, StaticDir: dir})
	c := newClient(t)

	status, body := do(t, c, http.MethodGet, srv.URL+"/static/canvas.js", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "dev")

	status, body = do(t, c, http.MethodGet, srv.URL+"/hotreload", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body)

	_, page := do(t, c, http.MethodGet, srv.URL+"/", "")
	assert.Contains(t, page, "/reload")
}

func TestServer_IsDev(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{name: "defaults", cfg: Config{}, want: false},
		{name: "watch without dir", cfg: Config{Watch: true}, want: false},
		{name: "dir without watch", cfg: Config{StaticDir: "static"}, want: false},
		{name: "watch with dir", cfg: Config{Watch: true, StaticDir: "static"}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewServer(tt.cfg).IsDev())
		})
	}
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	s := NewServer(Config{Port: 0, Logger: testutil.NewTestLogger(t), SessionSecret: "secret"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
