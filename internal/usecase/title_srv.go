package usecase

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"reviewhub/internal/data/entity"
	"reviewhub/internal/data/repository"
	"reviewhub/internal/dto/request"
	"reviewhub/internal/dto/response"
	"reviewhub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TitleService interface {
	ListTitles(ctx context.Context, filter repository.TitleFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	GetTitle(ctx context.Context, titleID string) (*response.TitleResponse, error)
	CreateTitle(ctx context.Context, identity Identity, req *request.CreateTitleRequest) (*response.TitleResponse, error)
	UpdateTitle(ctx context.Context, identity Identity, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	DeleteTitle(ctx context.Context, identity Identity, titleID string) error
}

type titleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log.With(zap.String("service", "title")),
	}
}

func (s *titleService) ListTitles(ctx context.Context, filter repository.TitleFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	titles, err := s.repo.Title.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list titles", zap.Error(err))
		return nil, fmt.Errorf("list titles: %w", err)
	}

	total, err := s.repo.Title.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count titles", zap.Error(err))
		return nil, fmt.Errorf("count titles: %w", err)
	}

	titleResponses := make([]response.TitleResponse, len(titles))
	for i, title := range titles {
		resp, err := s.buildTitleResponse(ctx, title)
		if err != nil {
			return nil, err
		}
		titleResponses[i] = *resp
	}

	return response.NewPaginatedResponse(titleResponses, req.Page, req.PerPage, total), nil
}

func (s *titleService) GetTitle(ctx context.Context, titleID string) (*response.TitleResponse, error) {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) CreateTitle(ctx context.Context, identity Identity, req *request.CreateTitleRequest) (*response.TitleResponse, error) {
	if !IsAdminOrReadOnly(identity, http.MethodPost) {
		return nil, &utils.PermissionError{Message: "admin access required"}
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create title validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationErrors(errs)
	}
	if err := ValidateYear(req.Year); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  &category.ID,
	}

	if err := s.repo.Title.CreateWithGenres(ctx, title, genreIDs(genres)); err != nil {
		s.log.Error("Failed to create title", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create title: %w", err)
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name))

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) UpdateTitle(ctx context.Context, identity Identity, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	if !IsAdminOrReadOnly(identity, http.MethodPatch) {
		return nil, &utils.PermissionError{Message: "admin access required"}
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update title validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationErrors(errs)
	}

	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := ValidateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}
	title.UpdatedAt = time.Now()

	if err := s.repo.Title.Update(ctx, title); err != nil {
		s.log.Error("Failed to update title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("update title: %w", err)
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(ctx, req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.repo.TitleGenre.Replace(ctx, title.ID, genreIDs(genres)); err != nil {
			s.log.Error("Failed to relink genres", zap.Error(err), zap.String("title_id", titleID))
			return nil, fmt.Errorf("relink genres: %w", err)
		}
	}

	s.log.Info("Title updated", zap.String("title_id", title.ID.String()))

	return s.buildTitleResponse(ctx, title)
}

func (s *titleService) DeleteTitle(ctx context.Context, identity Identity, titleID string) error {
	if !IsAdminOrReadOnly(identity, http.MethodDelete) {
		return &utils.PermissionError{Message: "admin access required"}
	}

	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return err
	}

	if err := s.repo.Title.Delete(ctx, title.ID); err != nil {
		s.log.Error("Failed to delete title", zap.Error(err), zap.String("title_id", titleID))
		return fmt.Errorf("delete title: %w", err)
	}

	return nil
}

// ==================== HELPERS ====================

func (s *titleService) findTitle(ctx context.Context, titleID string) (*entity.Title, error) {
	id, err := uuid.Parse(titleID)
	if err != nil {
		return nil, utils.NewNotFound("title")
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("find title %s: %w", titleID, err)
	}
	if title == nil {
		return nil, utils.NewNotFound("title")
	}

	return title, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*entity.Category, error) {
	category, err := s.repo.Category.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to resolve category slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("resolve category %s: %w", slug, err)
	}
	if category == nil {
		return nil, utils.NewValidationError("category",
			fmt.Sprintf("unknown category slug %q", slug))
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	slugs = dedupe(slugs)
	genres, err := s.repo.Genre.FindBySlugs(ctx, slugs)
	if err != nil {
		s.log.Error("Failed to resolve genre slugs", zap.Error(err), zap.Strings("slugs", slugs))
		return nil, fmt.Errorf("resolve genres: %w", err)
	}

	if len(genres) != len(slugs) {
		found := make(map[string]bool, len(genres))
		for _, genre := range genres {
			found[genre.Slug] = true
		}
		var missing []string
		for _, slug := range slugs {
			if !found[slug] {
				missing = append(missing, slug)
			}
		}
		sort.Strings(missing)
		return nil, utils.NewValidationError("genre",
			fmt.Sprintf("unknown genre slugs: %s", strings.Join(missing, ", ")))
	}

	return genres, nil
}

func (s *titleService) buildTitleResponse(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	var category *entity.Category
	if title.CategoryID != nil {
		var err error
		category, err = s.repo.Category.FindByID(ctx, *title.CategoryID)
		if err != nil {
			s.log.Error("Failed to load title category", zap.Error(err), zap.String("title_id", title.ID.String()))
			return nil, fmt.Errorf("load title category: %w", err)
		}
	}

	genres, err := s.repo.TitleGenre.FindGenresByTitleID(ctx, title.ID)
	if err != nil {
		s.log.Error("Failed to load title genres", zap.Error(err), zap.String("title_id", title.ID.String()))
		return nil, fmt.Errorf("load title genres: %w", err)
	}

	resp := response.TitleToResponse(title, category, genres)
	return &resp, nil
}

// dedupe drops repeated slugs, keeping first-seen order.
func dedupe(slugs []string) []string {
	seen := make(map[string]bool, len(slugs))
	out := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if !seen[slug] {
			seen[slug] = true
			out = append(out, slug)
		}
	}
	return out
}

func genreIDs(genres []*entity.Genre) []uuid.UUID {
	ids := make([]uuid.UUID, len(genres))
	for i, genre := range genres {
		ids[i] = genre.ID
	}
	return ids
}
