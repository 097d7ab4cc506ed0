// Package router sets up the HTTP routes and middleware chain for the
// folio admin server: the JSON API under /api, a health probe, and the
// static admin UI for everything else.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"folio/internal/handlers"
	"folio/internal/middleware"
)

// New creates and returns the configured chi router. ui serves every path
// the API does not claim; it is typically the static admin bundle.
func New(api *handlers.API, ui http.Handler) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// The admin UI is often opened straight from the static site's dev
	// server, so the API answers cross-origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", api.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/content", api.ContentAll)
		r.Route("/content/{category}", func(r chi.Router) {
			r.Get("/", api.ContentCategory)
			r.Post("/", api.ContentSave)

			r.Route("/pile", func(r chi.Router) {
				r.Post("/move", api.PileMove)
				r.Post("/extract", api.PileExtract)
				r.Post("/add", api.PileAdd)
			})

			r.Get("/{identifier}", api.ItemGet)
			r.Put("/{identifier}", api.ItemUpdate)
			r.Delete("/{identifier}", api.ItemDelete)
		})

		r.Post("/upload", api.Upload)
		r.Post("/upload-bulk", api.UploadBulk)

		r.Get("/translations/{lang}", api.TranslationsGet)
		r.Post("/translations/{lang}", api.TranslationsSave)

		r.Get("/config/{name}", api.ConfigGet)
		r.Post("/config/{name}", api.ConfigSave)

		r.Post("/publish", api.Publish)
	})

	// Everything else is the admin UI.
	r.NotFound(ui.ServeHTTP)

	return r
}
