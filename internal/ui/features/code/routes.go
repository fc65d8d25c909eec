// Package code provides the generated code panel.
package code

import (
	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures routes for the code feature.
func SetupRoutes(router chi.Router) error {
	handlers := NewHandlers()

	router.Post("/api/code/toggle", handlers.TogglePanel)
	router.Post("/api/code/dialect", handlers.SetDialect)
	router.Get("/api/code/download", handlers.Download)

	return nil
}
