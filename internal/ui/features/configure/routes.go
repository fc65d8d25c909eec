// Package configure provides the block configuration form.
package configure

import (
	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures routes for the configure feature.
func SetupRoutes(router chi.Router) error {
	handlers := NewHandlers()

	router.Route("/api/blocks/{id}/config", func(r chi.Router) {
		r.Get("/", handlers.OpenForm)
		r.Post("/", handlers.SaveForm)
		r.Delete("/", handlers.CancelForm)
	})

	return nil
}
