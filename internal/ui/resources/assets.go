// Package resources provides static asset handling for the UI server.
package resources

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/evanw/esbuild/pkg/api"
)

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

type asset struct {
	body        []byte
	contentType string
	modTime     time.Time
}

// Assets holds the static files, with scripts and stylesheets minified.
type Assets struct {
	src    fs.FS
	dir    string
	minify bool
	logger *slog.Logger

	mu    sync.RWMutex
	files map[string]asset
}

// Option configures Assets.
type Option func(*Assets)

// FromDir serves files from dir on disk instead of the embedded copy.
// Reload picks up changes made to dir.
func FromDir(dir string) Option {
	return func(a *Assets) {
		a.dir = dir
		a.src = os.DirFS(dir)
	}
}

// WithoutMinify serves scripts and stylesheets as written.
func WithoutMinify() Option {
	return func(a *Assets) { a.minify = false }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assets) { a.logger = logger }
}

// New loads the assets.
func New(opts ...Option) (*Assets, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	a := &Assets{
		src:    sub,
		minify: true,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.Reload(); err != nil {
		return nil, err
	}
	return a, nil
}

// Dir returns the directory assets are read from, or "" when embedded.
func (a *Assets) Dir() string {
	return a.dir
}

// Reload reads and minifies every file again.
func (a *Assets) Reload() error {
	files := make(map[string]asset)
	now := time.Now()

	err := fs.WalkDir(a.src, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		body, err := fs.ReadFile(a.src, name)
		if err != nil {
			return err
		}
		if a.minify {
			if body, err = minify(name, body); err != nil {
				return err
			}
		}
		ctype := mime.TypeByExtension(path.Ext(name))
		if ctype == "" {
			ctype = http.DetectContentType(body)
		}
		files[name] = asset{body: body, contentType: ctype, modTime: now}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load static assets: %w", err)
	}

	a.mu.Lock()
	a.files = files
	a.mu.Unlock()

	a.logger.Debug("static assets loaded", "files", len(files), "dir", a.dir)
	return nil
}

func minify(name string, body []byte) ([]byte, error) {
	var loader api.Loader
	switch path.Ext(name) {
	case ".js":
		loader = api.LoaderJS
	case ".css":
		loader = api.LoaderCSS
	default:
		return body, nil
	}

	result := api.Transform(string(body), api.TransformOptions{
		Loader:            loader,
		Sourcefile:        name,
		Target:            api.ES2020,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		LogLevel:          api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		var msg strings.Builder
		for _, e := range result.Errors {
			if e.Location != nil {
				fmt.Fprintf(&msg, "%s:%d:%d: ", name, e.Location.Line, e.Location.Column)
			}
			msg.WriteString(e.Text)
			msg.WriteString("\n")
		}
		return nil, fmt.Errorf("esbuild errors:\n%s", msg.String())
	}
	return result.Code, nil
}

// Handler returns an HTTP handler for serving static files under /static/.
func (a *Assets) Handler() http.Handler {
	return http.StripPrefix("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.RLock()
		f, ok := a.files[strings.TrimPrefix(r.URL.Path, "/")]
		a.mu.RUnlock()
		if !ok {
			http.NotFound(w, r)
			return
		}

		if a.dir == "" {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		w.Header().Set("Content-Type", f.contentType)
		http.ServeContent(w, r, r.URL.Path, f.modTime, bytes.NewReader(f.body))
	}))
}

// StaticPath returns the URL path for a static asset.
func StaticPath(path string) string {
	return "/static/" + path
}
