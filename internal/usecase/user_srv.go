package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reviewhub/internal/data/entity"
	"reviewhub/internal/data/repository"
	"reviewhub/internal/dto/request"
	"reviewhub/internal/dto/response"
	"reviewhub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	// Admin surface, addressed by username.
	ListUsers(ctx context.Context, identity Identity, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	CreateUser(ctx context.Context, identity Identity, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetUser(ctx context.Context, identity Identity, username string) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, identity Identity, username string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, identity Identity, username string) error

	// Self-service profile.
	GetProfile(ctx context.Context, identity Identity) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, identity Identity, req *request.UpdateProfileRequest) (*response.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewUserService(repo *repository.Repository, config *utils.Config, log *zap.Logger) UserService {
	return &userService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "user")),
	}
}

func (s *userService) ListUsers(ctx context.Context, identity Identity, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if !IsAdmin(identity) {
		return nil, &utils.PermissionError{Message: "admin access required"}
	}

	users, err := s.repo.User.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := s.repo.User.Count(ctx, search)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(userResponses, req.Page, req.PerPage, total), nil
}

func (s *userService) CreateUser(ctx context.Context, identity Identity, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if !IsAdmin(identity) {
		return nil, &utils.PermissionError{Message: "admin access required"}
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationErrors(errs)
	}
	if err := ValidateUsername(req.Username, s.config.Auth.ReservedUsername); err != nil {
		return nil, err
	}

	role := entity.Role(req.Role)
	if req.Role == "" {
		role = entity.RoleUser
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
		IsActive:  false,
		CodeSalt:  NewCodeSalt(),
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, utils.NewValidationError("username",
				"a user with this username already exists")
		}
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, utils.NewValidationError("email",
				"a user with this email already exists")
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	userResp := response.UserToResponse(user)
	return &userResp, nil
}

func (s *userService) GetUser(ctx context.Context, identity Identity, username string) (*response.UserResponse, error) {
	if !IsAdmin(identity) {
		return nil, &utils.PermissionError{Message: "admin access required"}
	}

	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	userResp := response.UserToResponse(user)
	return &userResp, nil
}

func (s *userService) UpdateUser(ctx context.Context, identity Identity, username string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if !IsAdmin(identity) {
		return nil, &utils.PermissionError{Message: "admin access required"}
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationErrors(errs)
	}

	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		if err := ValidateUsername(*req.Username, s.config.Auth.ReservedUsername); err != nil {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil {
		user.Role = entity.Role(*req.Role)
	}
	user.UpdatedAt = time.Now()

	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User updated by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	userResp := response.UserToResponse(user)
	return &userResp, nil
}

func (s *userService) DeleteUser(ctx context.Context, identity Identity, username string) error {
	if !IsAdmin(identity) {
		return &utils.PermissionError{Message: "admin access required"}
	}

	user, err := s.findUser(ctx, username)
	if err != nil {
		return err
	}

	// Reviews and comments cascade away with the user.
	if err := s.repo.User.Delete(ctx, user.ID); err != nil {
		s.log.Error("Failed to delete user", zap.Error(err), zap.String("username", username))
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

func (s *userService) GetProfile(ctx context.Context, identity Identity) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, identity.ID)
	if err != nil {
		s.log.Error("Failed to load profile", zap.Error(err), zap.String("user_id", identity.ID.String()))
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if user == nil {
		return nil, utils.NewNotFound("user")
	}

	userResp := response.UserToResponse(user)
	return &userResp, nil
}

// UpdateProfile edits the requester's own record. The request type carries
// no role field, so the role cannot change through this path.
func (s *userService) UpdateProfile(ctx context.Context, identity Identity, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationErrors(errs)
	}

	user, err := s.repo.User.FindByID(ctx, identity.ID)
	if err != nil {
		s.log.Error("Failed to load profile", zap.Error(err), zap.String("user_id", identity.ID.String()))
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if user == nil {
		return nil, utils.NewNotFound("user")
	}

	if req.Username != nil {
		if err := ValidateUsername(*req.Username, s.config.Auth.ReservedUsername); err != nil {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	user.UpdatedAt = time.Now()

	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("Profile updated", zap.String("user_id", user.ID.String()))

	userResp := response.UserToResponse(user)
	return &userResp, nil
}

func (s *userService) findUser(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("find user %s: %w", username, err)
	}
	if user == nil {
		return nil, utils.NewNotFound("user")
	}
	return user, nil
}

func (s *userService) saveUser(ctx context.Context, user *entity.User) error {
	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return utils.NewValidationError("username",
				"a user with this username already exists")
		}
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return utils.NewValidationError("email",
				"a user with this email already exists")
		}
		s.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
