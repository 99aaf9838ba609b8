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
	"reviewhub/pkg/mailer"
	"reviewhub/pkg/token"
	"reviewhub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	// Signup registers a user (or re-sends the confirmation code for an
	// existing one) and emails a confirmation code.
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	// IssueToken exchanges a valid confirmation code for a bearer token
	// and activates the user.
	IssueToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	codes  *CodeIssuer
	signer token.Signer
	mail   mailer.Sender
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	signer token.Signer,
	mail mailer.Sender,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		codes:  NewCodeIssuer(config.Auth.Secret),
		signer: signer,
		mail:   mail,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationErrors(errs)
	}
	if err := ValidateUsername(req.Username, s.config.Auth.ReservedUsername); err != nil {
		return nil, err
	}

	byUsername, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("check username: %w", err)
	}
	byEmail, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}

	switch {
	case byUsername != nil && byUsername.Email == req.Email:
		// Idempotent resend. Does not rotate the salt, so a code that is
		// already in the user's inbox stays valid.
		s.deliverCode(byUsername)
		s.log.Info("Signup resend", zap.String("username", req.Username))
		return &response.SignupResponse{Email: req.Email, Username: req.Username}, nil

	case byUsername != nil:
		return nil, utils.NewValidationError("username",
			"a user with this username already exists")

	case byEmail != nil:
		return nil, utils.NewValidationError("email",
			"a user with this email already exists")
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: req.Username,
		Email:    req.Email,
		Role:     entity.RoleUser,
		IsActive: false,
		CodeSalt: NewCodeSalt(),
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// Concurrent signup can lose the race between the existence
		// checks and the insert; the unique indexes report it.
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

	s.deliverCode(user)

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.SignupResponse{Email: req.Email, Username: req.Username}, nil
}

func (s *authService) IssueToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Token request validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationErrors(errs)
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user for token", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, utils.NewNotFound("user")
	}

	if !s.codes.Verify(user, req.ConfirmationCode) {
		s.log.Warn("Invalid confirmation code", zap.String("username", req.Username))
		return nil, &utils.AuthenticationError{Message: "confirmation code is invalid"}
	}

	// Activation rotates the salt in the same statement, consuming the code.
	if err := s.repo.User.Activate(ctx, user.ID, NewCodeSalt()); err != nil {
		s.log.Error("Failed to activate user", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("activate user: %w", err)
	}

	signed, err := s.signer.Sign(user.ID, user.Username)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("Token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.TokenResponse{Token: signed}, nil
}

// deliverCode emails the confirmation code without holding up the request.
// Delivery failure is logged and swallowed so signup always succeeds once
// validation passes.
func (s *authService) deliverCode(user *entity.User) {
	code := s.codes.Make(user)
	email := user.Email
	username := user.Username

	go func() {
		body := fmt.Sprintf("Hello %s,\n\nYour confirmation code: %s\n", username, code)
		if err := s.mail.Send(email, "Registration confirmation", body); err != nil {
			s.log.Error("Failed to send confirmation code",
				zap.Error(err),
				zap.String("email", email))
		}
	}()
}
