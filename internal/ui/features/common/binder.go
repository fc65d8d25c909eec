package common

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/leapblocks/internal/session"
)

type ctxKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// SessionFrom returns the editor session stored by the Binder middleware.
func SessionFrom(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*session.Session)
	return s, ok
}

// Binder ties a browser, through a signed cookie, to one editor session.
type Binder struct {
	store   sessions.Store
	manager *session.Manager
	logger  *slog.Logger
}

// NewBinder creates a Binder.
func NewBinder(store sessions.Store, manager *session.Manager, logger *slog.Logger) *Binder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Binder{store: store, manager: manager, logger: logger}
}

// Bind returns the editor session of the request, creating one and setting
// the cookie when the browser has none or its session was evicted.
func (b *Binder) Bind(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	cs, err := b.store.Get(r, CookieName)
	if err != nil {
		// An unreadable cookie yields a fresh session value.
		b.logger.Debug("discarding session cookie", "error", err)
	}
	if cs == nil {
		cs = sessions.NewSession(b.store, CookieName)
	}

	if id, ok := cs.Values[sessionKey].(string); ok {
		if s, ok := b.manager.Get(id); ok {
			return s, nil
		}
	}

	s := b.manager.Create()
	cs.Values[sessionKey] = s.ID()
	if err := cs.Save(r, w); err != nil {
		return nil, fmt.Errorf("save session cookie: %w", err)
	}
	return s, nil
}

// Middleware binds the editor session before calling next.
func (b *Binder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := b.Bind(w, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// MustSession returns the bound session or writes an error response.
func MustSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := SessionFrom(r.Context())
	if !ok {
		http.Error(w, "no editor session", http.StatusUnauthorized)
	}
	return s, ok
}
