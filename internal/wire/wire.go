package wire

import (
	"net/http"

	"reviewhub/internal/adaptor"
	"reviewhub/internal/data/repository"
	"reviewhub/internal/usecase"
	"reviewhub/pkg/mailer"
	"reviewhub/pkg/middleware"
	"reviewhub/pkg/token"
	"reviewhub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	signer token.Signer,
	mail mailer.Sender,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, signer, mail, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, signer, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	signer token.Signer,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	// Updates go through PATCH only; PUT on a matched route answers 405
	// rather than falling through to 404.
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseMethodNotAllowed(w)
	})

	// Authenticated routes share one Bearer-token middleware.
	authn := middleware.Authenticate(signer, repo.User, logger)

	r.Route("/api/v1", func(r chi.Router) {
		wireAuth(r, handler.Auth)
		wireUser(r, handler.User, authn)
		wireCategory(r, handler.Category, authn)
		wireGenre(r, handler.Genre, authn)
		wireTitle(r, handler.Title, handler.Review, handler.Comment, authn)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
