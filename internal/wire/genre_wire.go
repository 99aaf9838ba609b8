package wire

import (
	"net/http"

	"reviewhub/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireGenre(r chi.Router, genreHandler *adaptor.GenreHandler, authn func(http.Handler) http.Handler) {
	r.Route("/genres", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", genreHandler.ListGenres)

		// ==================== ADMIN ROUTES ====================
		r.With(authn).Post("/", genreHandler.CreateGenre)
		r.With(authn).Delete("/{slug}", genreHandler.DeleteGenre)
	})
}
