package services

import (
	"context"
	"errors"

	"github.com/lorrc/helpdesk-backend/internal/auth"
	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	apperrors "github.com/lorrc/helpdesk-backend/internal/core/errors"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

// AuthService implements authentication business logic
type AuthService struct {
	userRepo ports.UserRepository
	tokens   *auth.TokenManager
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService creates a new authentication service
func NewAuthService(userRepo ports.UserRepository, tokens *auth.TokenManager) ports.AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new user account with validated credentials and
// returns the user along with a signed access token.
func (s *AuthService) Register(ctx context.Context, params ports.RegisterParams) (*domain.User, string, error) {
	regParams := domain.UserRegistrationParams{
		FullName: params.FullName,
		Email:    params.Email,
		Password: params.Password,
		Role:     params.Role,
	}

	if err := regParams.Validate(); err != nil {
		return nil, "", err
	}

	// Check if user already exists
	_, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err == nil {
		return nil, "", apperrors.ErrUserExists
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, "", err // An actual DB error occurred
	}

	user, err := domain.NewUser(regParams)
	if err != nil {
		return nil, "", err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates a user with email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" {
		return nil, "", apperrors.ErrEmailRequired
	}
	if password == "" {
		return nil, "", apperrors.ErrPasswordRequired
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Don't reveal whether email exists
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
