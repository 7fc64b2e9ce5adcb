package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ijpettengill/jobly/internal/auth"
	"github.com/ijpettengill/jobly/internal/config"
	"github.com/ijpettengill/jobly/internal/domain"
	"github.com/ijpettengill/jobly/internal/repository"
	apperrors "github.com/ijpettengill/jobly/pkg/util/errorutil"
)

// RegisterInput describes a new account.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a non-admin account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, error) {
	user, err := createUser(ctx, s.users, s.bcryptCost, input, false)
	if err != nil {
		return "", err
	}
	return s.tokenMgr.Issue(user.Username, user.IsAdmin)
}

// Login verifies credentials and returns a token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetWithPassword(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NewUnauthorized("invalid username/password")
		}
		return "", err
	}

	ok, err := auth.PasswordMatches(user.PasswordHash, password)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if !ok {
		return "", apperrors.NewUnauthorized("invalid username/password")
	}
	return s.tokenMgr.Issue(user.Username, user.IsAdmin)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func createUser(ctx context.Context, users repository.UserRepository, cost int, input RegisterInput, isAdmin bool) (*domain.User, error) {
	hash, err := auth.HashPassword(input.Password, cost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        strings.TrimSpace(input.Email),
		IsAdmin:      isAdmin,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
