package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leapblocks/internal/ui/notifier"
	"github.com/leapstack-labs/leapblocks/pkg/catalog"
	"github.com/leapstack-labs/leapblocks/pkg/dialect"
	"github.com/leapstack-labs/leapblocks/pkg/gesture"
	"github.com/leapstack-labs/leapblocks/pkg/workspace"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 2 * time.Hour

// Config holds Manager settings.
type Config struct {
	Catalog *catalog.Catalog
	// Dialect is the initial dialect of new sessions.
	Dialect  string
	Geometry gesture.Geometry
	TTL      time.Duration
	// ShowCode is the initial code panel visibility.
	ShowCode bool
	Logger   *slog.Logger
}

// Manager creates, finds and evicts sessions.
type Manager struct {
	cfg Config
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a Manager. Zero values in cfg take defaults.
func NewManager(cfg Config) *Manager {
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Dialect == "" {
		if d := dialect.Default(); d != nil {
			cfg.Dialect = d.Name
		}
	}
	if cfg.Geometry.Width == 0 || cfg.Geometry.Height == 0 {
		cfg.Geometry = gesture.DefaultGeometry(800, 600)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session.
func (m *Manager) Create() *Session {
	id := uuid.NewString()
	logger := m.cfg.Logger.With("session", id)
	ws := workspace.New(workspace.WithCatalog(m.cfg.Catalog), workspace.WithLogger(logger))
	s := &Session{
		id:       id,
		logger:   logger,
		notifier: notifier.New(),
		ws:       ws,
		machine:  gesture.NewMachine(ws, m.cfg.Geometry),
		dialect:  m.cfg.Dialect,
		showCode: m.cfg.ShowCode,
		lastSeen: m.now(),
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.cfg.Logger.Debug("session created", "session", id)
	return s
}

// Get returns the session for id and marks it as used.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	s.lastSeen = m.now()
	s.mu.Unlock()
	return s, true
}

// GetOrCreate returns the session for id, or a new one if id is unknown.
func (m *Manager) GetOrCreate(id string) *Session {
	if s, ok := m.Get(id); ok {
		return s
	}
	return m.Create()
}

// Catalog returns the catalog new sessions use.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.cfg.Catalog
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Evict removes sessions idle for longer than the TTL and returns how many were removed.
func (m *Manager) Evict() int {
	cutoff := m.now().Add(-m.cfg.TTL)

	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.close()
		m.cfg.Logger.Debug("session evicted", "session", s.id)
	}
	return len(stale)
}

// Run evicts idle sessions periodically until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.TTL / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.Evict(); n > 0 {
				m.cfg.Logger.Info("evicted idle sessions", "count", n)
			}
		}
	}
}
