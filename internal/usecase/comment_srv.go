package usecase

import (
	"context"
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

type CommentService interface {
	ListComments(ctx context.Context, titleID, reviewID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	GetComment(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error)
	CreateComment(ctx context.Context, identity Identity, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	UpdateComment(ctx context.Context, identity Identity, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, identity Identity, titleID, reviewID, commentID string) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) ListComments(ctx context.Context, titleID, reviewID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	review, err := s.findParentReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, review.ID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list comments", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("list comments: %w", err)
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, review.ID)
	if err != nil {
		s.log.Error("Failed to count comments", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("count comments: %w", err)
	}

	commentResponses := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		commentResponses[i] = response.CommentToResponse(comment, s.authorName(ctx, comment.AuthorID))
	}

	return response.NewPaginatedResponse(commentResponses, req.Page, req.PerPage, total), nil
}

func (s *commentService) GetComment(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error) {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	commentResp := response.CommentToResponse(comment, s.authorName(ctx, comment.AuthorID))
	return &commentResp, nil
}

func (s *commentService) CreateComment(ctx context.Context, identity Identity, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if !CanSubmit(identity, http.MethodPost) {
		return nil, &utils.PermissionError{Message: "authentication required"}
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationErrors(errs)
	}

	review, err := s.findParentReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: review.ID,
		AuthorID: identity.ID,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("review_id", reviewID),
			zap.String("author_id", identity.ID.String()),
		)
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", reviewID),
		zap.String("author_id", identity.ID.String()),
	)

	commentResp := response.CommentToResponse(comment, identity.Username)
	return &commentResp, nil
}

func (s *commentService) UpdateComment(ctx context.Context, identity Identity, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update comment validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationErrors(errs)
	}

	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !IsAdminModeratorAuthorOrReadOnly(identity, http.MethodPatch, comment.AuthorID) {
		return nil, &utils.PermissionError{Message: "you cannot edit someone else's comment"}
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		s.log.Error("Failed to update comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("update comment: %w", err)
	}

	s.log.Info("Comment updated", zap.String("comment_id", comment.ID.String()))

	commentResp := response.CommentToResponse(comment, s.authorName(ctx, comment.AuthorID))
	return &commentResp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, identity Identity, titleID, reviewID, commentID string) error {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !IsAdminModeratorAuthorOrReadOnly(identity, http.MethodDelete, comment.AuthorID) {
		return &utils.PermissionError{Message: "you cannot delete someone else's comment"}
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		s.log.Error("Failed to delete comment", zap.Error(err), zap.String("comment_id", commentID))
		return fmt.Errorf("delete comment: %w", err)
	}

	return nil
}

// ==================== HELPERS ====================

// findParentReview resolves the title/review path chain; a missing parent
// anywhere in the chain is a not-found error.
func (s *commentService) findParentReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	titleUUID, err := uuid.Parse(titleID)
	if err != nil {
		return nil, utils.NewNotFound("title")
	}

	title, err := s.repo.Title.FindByID(ctx, titleUUID)
	if err != nil {
		s.log.Error("Failed to find parent title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("find title %s: %w", titleID, err)
	}
	if title == nil {
		return nil, utils.NewNotFound("title")
	}

	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, utils.NewNotFound("review")
	}

	review, err := s.repo.Review.FindByID(ctx, reviewUUID)
	if err != nil {
		s.log.Error("Failed to find parent review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("find review %s: %w", reviewID, err)
	}
	if review == nil || review.TitleID != title.ID {
		return nil, utils.NewNotFound("review")
	}

	return review, nil
}

func (s *commentService) findComment(ctx context.Context, titleID, reviewID, commentID string) (*entity.Comment, error) {
	review, err := s.findParentReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(commentID)
	if err != nil {
		return nil, utils.NewNotFound("comment")
	}

	comment, err := s.repo.Comment.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("find comment %s: %w", commentID, err)
	}
	if comment == nil || comment.ReviewID != review.ID {
		return nil, utils.NewNotFound("comment")
	}

	return comment, nil
}

func (s *commentService) authorName(ctx context.Context, authorID uuid.UUID) string {
	user, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil || user == nil {
		return ""
	}
	return user.Username
}
