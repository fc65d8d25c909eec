// Package ui provides the web host of the block editor.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapblocks/internal/session"
	"github.com/leapstack-labs/leapblocks/internal/ui/features/common"
	"github.com/leapstack-labs/leapblocks/internal/ui/notifier"
	"github.com/leapstack-labs/leapblocks/internal/ui/resources"
	"github.com/leapstack-labs/leapblocks/internal/ui/router"
)

// Server is the main UI server.
type Server struct {
	sessions     *session.Manager
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	staticDir    string
	logger       *slog.Logger
	reloads      *notifier.Notifier
}

// Config holds configuration for the UI server.
type Config struct {
	Sessions      *session.Manager
	Port          int
	Watch         bool
	StaticDir     string
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	manager := cfg.Sessions
	if manager == nil {
		manager = session.NewManager(session.Config{Logger: logger})
	}

	return &Server{
		sessions:     manager,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		staticDir:    cfg.StaticDir,
		logger:       logger,
		reloads:      notifier.New(),
	}
}

// IsDev reports whether assets are served from disk with hot reload.
func (s *Server) IsDev() bool {
	return s.watch && s.staticDir != ""
}

// Handler builds the HTTP handler and the assets it serves.
func (s *Server) Handler() (http.Handler, *resources.Assets, error) {
	opts := []resources.Option{resources.WithLogger(s.logger)}
	if s.IsDev() {
		opts = append(opts, resources.FromDir(s.staticDir))
	}
	assets, err := resources.New(opts...)
	if err != nil {
		return nil, nil, err
	}

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	binder := common.NewBinder(s.sessionStore, s.sessions, s.logger)
	if err := router.SetupRoutes(r, binder, assets, s.reloads, s.IsDev()); err != nil {
		return nil, nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, assets, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	handler, assets, err := s.Handler()
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start file watcher if enabled
	if s.IsDev() {
		eg.Go(func() error {
			return s.watchFiles(egctx, assets)
		})
	}

	// Evict idle editor sessions
	eg.Go(func() error {
		return s.sessions.Run(egctx)
	})

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		s.reloads.Close()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// watchFiles reloads the assets and the open pages when a static file changes.
func (s *Server) watchFiles(ctx context.Context, assets *resources.Assets) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(assets.Dir()); err != nil {
		s.logger.Error("failed to watch static directory", "error", err)
		// Don't fail - continue without watching
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("static file changed, reloading", "file", event.Name)
				if err := assets.Reload(); err != nil {
					s.logger.Error("asset reload failed", "error", err)
					return
				}
				s.reloads.Broadcast(0)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}
