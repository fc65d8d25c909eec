// Package canvas provides the editor page, its live updates and the
// workspace gestures.
package canvas

import (
	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures routes for the canvas feature.
func SetupRoutes(router chi.Router, isDev bool) error {
	handlers := NewHandlers(isDev)

	router.Get("/", handlers.CanvasPage)
	router.Get("/updates", handlers.CanvasUpdates)
	router.Post("/api/pointer", handlers.Pointer)
	router.Post("/api/drop", handlers.Drop)
	router.Delete("/api/blocks/{id}", handlers.DeleteBlock)
	router.Post("/api/clear", handlers.Clear)

	return nil
}
