package wire

import (
	"net/http"

	"reviewhub/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireTitle configures the /titles tree. Reviews and comments hang off a
// title, so their wiring nests here.
func wireTitle(
	r chi.Router,
	titleHandler *adaptor.TitleHandler,
	reviewHandler *adaptor.ReviewHandler,
	commentHandler *adaptor.CommentHandler,
	authn func(http.Handler) http.Handler,
) {
	r.Route("/titles", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", titleHandler.ListTitles)
		r.Get("/{title_id}", titleHandler.GetTitle)

		// ==================== ADMIN ROUTES ====================
		r.With(authn).Post("/", titleHandler.CreateTitle)
		r.With(authn).Patch("/{title_id}", titleHandler.UpdateTitle)
		r.With(authn).Delete("/{title_id}", titleHandler.DeleteTitle)

		wireReview(r, reviewHandler, commentHandler, authn)
	})
}
