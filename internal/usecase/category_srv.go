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

type CategoryService interface {
	ListCategories(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error)
	CreateCategory(ctx context.Context, identity Identity, req *request.CreateCategoryRequest) (*response.CategoryResponse, error)
	DeleteCategory(ctx context.Context, identity Identity, slug string) error
}

type categoryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCategoryService(repo *repository.Repository, log *zap.Logger) CategoryService {
	return &categoryService{
		repo: repo,
		log:  log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) ListCategories(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error) {
	categories, err := s.repo.Category.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("list categories: %w", err)
	}

	total, err := s.repo.Category.Count(ctx, search)
	if err != nil {
		s.log.Error("Failed to count categories", zap.Error(err))
		return nil, fmt.Errorf("count categories: %w", err)
	}

	categoryResponses := make([]response.CategoryResponse, len(categories))
	for i, category := range categories {
		categoryResponses[i] = response.CategoryToResponse(category)
	}

	return response.NewPaginatedResponse(categoryResponses, req.Page, req.PerPage, total), nil
}

func (s *categoryService) CreateCategory(ctx context.Context, identity Identity, req *request.CreateCategoryRequest) (*response.CategoryResponse, error) {
	if !IsAdminOrReadOnly(identity, http.MethodPost) {
		return nil, &utils.PermissionError{Message: "admin access required"}
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create category validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationErrors(errs)
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.repo.Category.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, utils.NewValidationError("slug",
				"a category with this slug already exists")
		}
		s.log.Error("Failed to create category", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info("Category created", zap.String("slug", category.Slug))

	categoryResp := response.CategoryToResponse(category)
	return &categoryResp, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, identity Identity, slug string) error {
	if !IsAdminOrReadOnly(identity, http.MethodDelete) {
		return &utils.PermissionError{Message: "admin access required"}
	}

	category, err := s.repo.Category.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to find category", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("find category %s: %w", slug, err)
	}
	if category == nil {
		return utils.NewNotFound("category")
	}

	// Dependent titles keep existing with a null category (SET NULL).
	if err := s.repo.Category.DeleteBySlug(ctx, slug); err != nil {
		s.log.Error("Failed to delete category", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("delete category: %w", err)
	}

	return nil
}
