package wire

import (
	"net/http"

	"reviewhub/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireComment nests under a review route.
func wireComment(r chi.Router, commentHandler *adaptor.CommentHandler, authn func(http.Handler) http.Handler) {
	r.Route("/{review_id}/comments", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", commentHandler.ListComments)
		r.Get("/{comment_id}", commentHandler.GetComment)

		// ==================== PROTECTED ROUTES ====================
		r.With(authn).Post("/", commentHandler.CreateComment)
		r.With(authn).Patch("/{comment_id}", commentHandler.UpdateComment)
		r.With(authn).Delete("/{comment_id}", commentHandler.DeleteComment)
	})
}
