package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories"
	"github.com/AriaGT/sistema-libreria/internal/pkg/apperrors"
	"github.com/AriaGT/sistema-libreria/internal/pkg/auth"
	"github.com/AriaGT/sistema-libreria/internal/pkg/metrics"
)

// AuthService handles authentication operations
type AuthService struct {
	store      repositories.Store
	hasher     PasswordHasher
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(store repositories.Store, hasher PasswordHasher, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		store:      store,
		hasher:     hasher,
		jwtService: jwtService,
	}
}

// Authenticate returns the user owning email when password matches its hash.
// An unknown email and a wrong password both yield (nil, nil).
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	// Checked before the lookup so the outcome never depends on the email existing
	if err := checkPasswordLength(password); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		user, err = r.Users.GetByEmail(ctx, email)
		return err
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

// Login authenticates a user and issues an access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		metrics.RecordLogin(false)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	metrics.RecordLogin(true)

	return &dto.LoginResponse{
		Message: "Login successful",
		User:    user,
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
	}, nil
}

// GetProfile returns the user a token was issued to
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	var user *models.User
	err := s.store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		user, err = requireUser(ctx, r, userID, msgUserNotFound)
		return err
	})
	return user, err
}
