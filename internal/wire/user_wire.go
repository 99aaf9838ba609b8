package wire

import (
	"net/http"

	"reviewhub/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures user management routes. Everything under /users needs a
// valid token; the admin-only checks live in the service layer where the
// current role is known.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, authn func(http.Handler) http.Handler) {
	r.With(authn).Route("/users", func(r chi.Router) {
		// ==================== SELF-SERVICE ROUTES ====================
		r.Get("/me", userHandler.GetProfile)
		r.Patch("/me", userHandler.UpdateProfile)

		// ==================== ADMIN ROUTES ====================
		r.Get("/", userHandler.ListUsers)
		r.Post("/", userHandler.CreateUser)
		r.Get("/{username}", userHandler.GetUser)
		r.Patch("/{username}", userHandler.UpdateUser)
		r.Delete("/{username}", userHandler.DeleteUser)
	})
}
