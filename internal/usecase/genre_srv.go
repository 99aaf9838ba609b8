package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"reviewhub/internal/data/entity"
	"reviewhub/internal/data/repository"
	"reviewhub/internal/dto/request"
	"reviewhub/internal/dto/response"
	"reviewhub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GenreService interface {
	ListGenres(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error)
	CreateGenre(ctx context.Context, identity Identity, req *request.CreateGenreRequest) (*response.GenreResponse, error)
	DeleteGenre(ctx context.Context, identity Identity, slug string) error
}

type genreService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewGenreService(repo *repository.Repository, log *zap.Logger) GenreService {
	return &genreService{
		repo: repo,
		log:  log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) ListGenres(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error) {
	genres, err := s.repo.Genre.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list genres", zap.Error(err))
		return nil, fmt.Errorf("list genres: %w", err)
	}

	total, err := s.repo.Genre.Count(ctx, search)
	if err != nil {
		s.log.Error("Failed to count genres", zap.Error(err))
		return nil, fmt.Errorf("count genres: %w", err)
	}

	genreResponses := make([]response.GenreResponse, len(genres))
	for i, genre := range genres {
		genreResponses[i] = response.GenreToResponse(genre)
	}

	return response.NewPaginatedResponse(genreResponses, req.Page, req.PerPage, total), nil
}

func (s *genreService) CreateGenre(ctx context.Context, identity Identity, req *request.CreateGenreRequest) (*response.GenreResponse, error) {
	if !IsAdminOrReadOnly(identity, http.MethodPost) {
		return nil, &utils.PermissionError{Message: "admin access required"}
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create genre validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationErrors(errs)
	}

	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.repo.Genre.Create(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, utils.NewValidationError("slug",
				"a genre with this slug already exists")
		}
		s.log.Error("Failed to create genre", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.log.Info("Genre created", zap.String("slug", genre.Slug))

	genreResp := response.GenreToResponse(genre)
	return &genreResp, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, identity Identity, slug string) error {
	if !IsAdminOrReadOnly(identity, http.MethodDelete) {
		return &utils.PermissionError{Message: "admin access required"}
	}

	genre, err := s.repo.Genre.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to find genre", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("find genre %s: %w", slug, err)
	}
	if genre == nil {
		return utils.NewNotFound("genre")
	}

	// Join rows cascade; titles themselves stay.
	if err := s.repo.Genre.DeleteBySlug(ctx, slug); err != nil {
		s.log.Error("Failed to delete genre", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("delete genre: %w", err)
	}

	return nil
}
