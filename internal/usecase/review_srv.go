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

type ReviewService interface {
	ListReviews(ctx context.Context, titleID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetReview(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error)
	CreateReview(ctx context.Context, identity Identity, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, identity Identity, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, identity Identity, titleID, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) ListReviews(ctx context.Context, titleID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	title, err := s.findParentTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, title.ID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountByTitleID(ctx, title.ID)
	if err != nil {
		s.log.Error("Failed to count reviews", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review, s.authorName(ctx, review.AuthorID))
	}

	return response.NewPaginatedResponse(reviewResponses, req.Page, req.PerPage, total), nil
}

func (s *reviewService) GetReview(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	reviewResp := response.ReviewToResponse(review, s.authorName(ctx, review.AuthorID))
	return &reviewResp, nil
}

func (s *reviewService) CreateReview(ctx context.Context, identity Identity, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if !CanSubmit(identity, http.MethodPost) {
		return nil, &utils.PermissionError{Message: "authentication required"}
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationErrors(errs)
	}
	if err := ValidateScore(req.Score); err != nil {
		return nil, err
	}

	title, err := s.findParentTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	// Friendly precheck; the unique constraint below is what actually
	// closes the race.
	existing, err := s.repo.Review.FindByAuthorAndTitle(ctx, identity.ID, title.ID)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err))
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, utils.NewValidationError("title",
			"you have already reviewed this title")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TitleID:  title.ID,
		AuthorID: identity.ID,
		Score:    req.Score,
		Text:     req.Text,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, utils.NewValidationError("title",
				"you have already reviewed this title")
		}
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("title_id", titleID),
			zap.String("author_id", identity.ID.String()),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", titleID),
		zap.String("author_id", identity.ID.String()),
		zap.Int("score", req.Score),
	)

	reviewResp := response.ReviewToResponse(review, identity.Username)
	return &reviewResp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, identity Identity, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationErrors(errs)
	}

	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !IsAdminModeratorAuthorOrReadOnly(identity, http.MethodPatch, review.AuthorID) {
		return nil, &utils.PermissionError{Message: "you cannot edit someone else's review"}
	}

	if req.Score != nil {
		if err := ValidateScore(*req.Score); err != nil {
			return nil, err
		}
		review.Score = *req.Score
	}
	if req.Text != nil {
		review.Text = *req.Text
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated", zap.String("review_id", review.ID.String()))

	reviewResp := response.ReviewToResponse(review, s.authorName(ctx, review.AuthorID))
	return &reviewResp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, identity Identity, titleID, reviewID string) error {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !IsAdminModeratorAuthorOrReadOnly(identity, http.MethodDelete, review.AuthorID) {
		return &utils.PermissionError{Message: "you cannot delete someone else's review"}
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		return fmt.Errorf("delete review: %w", err)
	}

	return nil
}

// ==================== HELPERS ====================

// findParentTitle resolves the title path segment; a missing parent is a
// not-found error, never a validation error.
func (s *reviewService) findParentTitle(ctx context.Context, titleID string) (*entity.Title, error) {
	id, err := uuid.Parse(titleID)
	if err != nil {
		return nil, utils.NewNotFound("title")
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find parent title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("find title %s: %w", titleID, err)
	}
	if title == nil {
		return nil, utils.NewNotFound("title")
	}

	return title, nil
}

func (s *reviewService) findReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	title, err := s.findParentTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, utils.NewNotFound("review")
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("find review %s: %w", reviewID, err)
	}
	if review == nil || review.TitleID != title.ID {
		return nil, utils.NewNotFound("review")
	}

	return review, nil
}

func (s *reviewService) authorName(ctx context.Context, authorID uuid.UUID) string {
	user, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil || user == nil {
		return ""
	}
	return user.Username
}
