package wire

import (
	"reviewhub/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/auth/signup", authHandler.Signup)
	r.Post("/auth/token", authHandler.IssueToken)
}
