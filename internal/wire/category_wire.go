package wire

import (
	"net/http"

	"reviewhub/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCategory(r chi.Router, categoryHandler *adaptor.CategoryHandler, authn func(http.Handler) http.Handler) {
	r.Route("/categories", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", categoryHandler.ListCategories)

		// ==================== ADMIN ROUTES ====================
		r.With(authn).Post("/", categoryHandler.CreateCategory)
		r.With(authn).Delete("/{slug}", categoryHandler.DeleteCategory)
	})
}
