// Package router sets up HTTP routes for the UI server.
package router

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	canvasFeature "github.com/leapstack-labs/leapblocks/internal/ui/features/canvas"
	codeFeature "github.com/leapstack-labs/leapblocks/internal/ui/features/code"
	"github.com/leapstack-labs/leapblocks/internal/ui/features/common"
	configureFeature "github.com/leapstack-labs/leapblocks/internal/ui/features/configure"
	"github.com/leapstack-labs/leapblocks/internal/ui/notifier"
	"github.com/leapstack-labs/leapblocks/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(
	router chi.Router,
	binder *common.Binder,
	assets *resources.Assets,
	reloads *notifier.Notifier,
	isDev bool,
) error {
	// Hot reload endpoint for dev mode
	if isDev {
		setupReload(router, reloads)
	}

	// Static assets
	router.Handle(resources.StaticPath("*"), assets.Handler())

	// Feature routes, each bound to the browser's editor session
	var setupErr error
	router.Group(func(r chi.Router) {
		r.Use(binder.Middleware)

		if err := canvasFeature.SetupRoutes(r, isDev); err != nil {
			setupErr = err
			return
		}
		if err := configureFeature.SetupRoutes(r); err != nil {
			setupErr = err
			return
		}
		if err := codeFeature.SetupRoutes(r); err != nil {
			setupErr = err
		}
	})

	return setupErr
}

func setupReload(router chi.Router, reloads *notifier.Notifier) {
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }

		// A fresh server reloads pages left open by the previous one.
		hotReloadOnce.Do(reload)

		updates := reloads.Subscribe()
		defer reloads.Unsubscribe(updates)

		select {
		case _, ok := <-updates:
			if ok {
				reload()
			}
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		reloads.Broadcast(0)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
