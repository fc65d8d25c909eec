// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/leapstack-labs/leapblocks/internal/session"
	"github.com/leapstack-labs/leapblocks/internal/testutil"
	"github.com/leapstack-labs/leapblocks/internal/ui/features/common"
	"github.com/leapstack-labs/leapblocks/pkg/core"
	"github.com/leapstack-labs/leapblocks/pkg/gesture"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Manager      *session.Manager
	Session      *session.Session
	SessionStore *sessions.CookieStore
}

// SetupTestFixture creates a manager with one session whose code panel is visible.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	manager := session.NewManager(session.Config{
		Logger:   testutil.NewTestLogger(t),
		ShowCode: true,
	})

	return &TestFixture{
		Manager:      manager,
		Session:      manager.Create(),
		SessionStore: NewTestSessionStore(),
	}
}

// Drop places a block of kind at the given workspace point.
func (f *TestFixture) Drop(t *testing.T, kind core.KindTag, x, y float64) core.BlockID {
	t.Helper()
	eff, err := f.Session.Pointer(gesture.Drop(kind, core.Position{X: x, Y: y}))
	require.NoError(t, err)
	require.Equal(t, gesture.ActionAdd, eff.Action)
	return eff.Block
}

// Request binds the fixture session to r.
func (f *TestFixture) Request(r *http.Request) *http.Request {
	return r.WithContext(common.WithSession(r.Context(), f.Session))
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}

// SSEElements returns the markup carried by the element patches of an SSE body.
func SSEElements(body string) string {
	const prefix = "data: elements "
	var b strings.Builder
	for _, line := range strings.Split(body, "\n") {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			b.WriteString(rest)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ParseHTML parses markup as a fragment inside <body>.
func ParseHTML(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

// Attr returns the value of the named attribute of n.
func Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// FindByID returns the first element with the given id.
func FindByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if v, ok := Attr(n, "id"); ok && v == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAllByClass returns every element carrying class.
func FindAllByClass(root *html.Node, class string) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) bool {
		if v, ok := Attr(n, "class"); ok {
			for _, c := range strings.Fields(v) {
				if c == class {
					out = append(out, n)
					break
				}
			}
		}
		return true
	})
	return out
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if n.Type == html.ElementNode || n.Type == html.TextNode {
		if !visit(n) {
			return false
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}
