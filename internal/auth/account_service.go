package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/invoicemanager/backend/internal/domain"
	"github.com/invoicemanager/backend/internal/password"
)

// AccountService orchestrates registration and login on top of the user
// store and the token service.
type AccountService struct {
	userRepo domain.UserRepository
	tokens   *TokenService
	logger   *slog.Logger
}

func NewAccountService(userRepo domain.UserRepository, tokens *TokenService, logger *slog.Logger) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a new account. A taken email is reported as
// domain.ErrAlreadyExists, distinct from credential errors.
func (s *AccountService) Register(ctx context.Context, name, email, plainPassword string) (*domain.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrAlreadyExists
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, domain.CreateUserInput{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies the credentials, revokes every prior session of the user
// and issues a fresh token. Wrong email and wrong password collapse into
// the same domain.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, plainPassword string) (*domain.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := password.Verify(user.PasswordHash, plainPassword); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	// Logging in invalidates every other device before the new token
	// becomes valid.
	if err := s.tokens.RevokeAll(ctx, user.ID); err != nil {
		return nil, "", err
	}

	rawToken, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return user, rawToken, nil
}
