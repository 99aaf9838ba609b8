package wire

import (
	"net/http"

	"reviewhub/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireReview nests under the /titles route.
func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	commentHandler *adaptor.CommentHandler,
	authn func(http.Handler) http.Handler,
) {
	r.Route("/{title_id}/reviews", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", reviewHandler.ListReviews)
		r.Get("/{review_id}", reviewHandler.GetReview)

		// ==================== PROTECTED ROUTES ====================
		r.With(authn).Post("/", reviewHandler.CreateReview)
		r.With(authn).Patch("/{review_id}", reviewHandler.UpdateReview)
		r.With(authn).Delete("/{review_id}", reviewHandler.DeleteReview)

		wireComment(r, commentHandler, authn)
	})
}
