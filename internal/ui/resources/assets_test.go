package resources

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, a *Assets, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestAssets_Embedded(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	assert.Empty(t, a.Dir())

	tests := []struct {
		path     string
		wantType string
	}{
		{path: "/static/canvas.js", wantType: "javascript"},
		{path: "/static/canvas.css", wantType: "text/css"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, a, tt.path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), tt.wantType)
			assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
			assert.NotEmpty(t, rec.Body.String())
		})
	}
}

func TestAssets_Minified(t *testing.T) {
	raw, err := staticFS.ReadFile("static/canvas.js")
	require.NoError(t, err)

	a, err := New()
	require.NoError(t, err)
	body, err := io.ReadAll(get(t, a, "/static/canvas.js").Body)
	require.NoError(t, err)

	assert.Less(t, len(body), len(raw))
	assert.NotContains(t, string(body), "// Moves are coalesced")

	plain, err := New(WithoutMinify())
	require.NoError(t, err)
	assert.Equal(t, string(raw), get(t, plain, "/static/canvas.js").Body.String())
}

func TestAssets_NotFound(t *testing.T) {
	a, err := New()
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, get(t, a, "/static/missing.js").Code)
}

func TestAssets_FromDirReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.css")
	require.NoError(t, os.WriteFile(path, []byte("body {\n  color: #123456;\n}\n"), 0o600))

	a, err := New(FromDir(dir))
	require.NoError(t, err)
	assert.Equal(t, dir, a.Dir())

	rec := get(t, a, "/static/app.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "color:#123456")

	require.NoError(t, os.WriteFile(path, []byte("body { color: #654321; }"), 0o600))
	assert.Contains(t, get(t, a, "/static/app.css").Body.String(), "color:#123456", "served until reloaded")

	require.NoError(t, a.Reload())
	assert.Contains(t, get(t, a, "/static/app.css").Body.String(), "color:#654321")
}

func TestAssets_SyntaxError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.js"), []byte("function ("), 0o600))

	_, err := New(FromDir(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.js")
}

func TestStaticPath(t *testing.T) {
	assert.Equal(t, "/static/canvas.js", StaticPath("canvas.js"))
}
