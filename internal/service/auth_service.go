package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"unimarket/internal/auth"
	apperrors "unimarket/internal/errors"
	"unimarket/internal/model"
	"unimarket/internal/repository"
)

// AuthService handles registration, login, and bearer-subject resolution.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (accessToken string, err error)
	CurrentUser(ctx context.Context, username string) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenTTL   time.Duration
}

// NewAuthService creates a new authentication service. The token TTL is
// injected from configuration and passed explicitly on every issue call.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenTTL:   tokenTTL,
	}
}

// Register creates a new user with a hashed password. New users always get
// the "user" role; promotion to admin happens out-of-band.
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUsernameTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed access token. A missing
// user and a wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.Username, user.Role, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// CurrentUser resolves a token subject to a stored user. The subject may
// have been deleted after the token was issued.
func (s *authService) CurrentUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
