package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/invoicemanager/backend/internal/crypto"
	"github.com/invoicemanager/backend/internal/domain"
)

// TokenService owns the lifecycle of opaque bearer tokens: issuance,
// validation and revocation. Only the SHA-256 digest of a token is ever
// persisted; the raw value exists in the issuance response and nowhere else.
type TokenService struct {
	sessionRepo domain.SessionRepository
	userRepo    domain.UserRepository
	ttl         time.Duration
	logger      *slog.Logger
}

func NewTokenService(
	sessionRepo domain.SessionRepository,
	userRepo domain.UserRepository,
	ttl time.Duration,
	logger *slog.Logger,
) *TokenService {
	return &TokenService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		ttl:         ttl,
		logger:      logger,
	}
}

// Issue mints a raw token for the user and persists a session holding its
// hash. The returned raw token is the only credential the client will hold.
func (s *TokenService) Issue(ctx context.Context, user *domain.User) (string, error) {
	rawToken, err := crypto.GenerateSessionToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	_, err = s.sessionRepo.Create(ctx, domain.CreateSessionInput{
		UserID:    user.ID,
		TokenHash: crypto.HashSessionToken(rawToken),
		ExpiresAt: time.Now().Add(s.ttl),
	})
	if err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}

	return rawToken, nil
}

// Validate resolves a raw token to its owning user. Unknown, revoked and
// expired tokens all collapse to domain.ErrNotFound so callers cannot tell
// the cases apart.
func (s *TokenService) Validate(ctx context.Context, rawToken string) (*domain.User, error) {
	tokenHash := crypto.HashSessionToken(rawToken)

	session, err := s.sessionRepo.FindActiveByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("no user for live session", "session_id", session.ID, "user_id", session.UserID)
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}

	return user, nil
}

// RevokeAll marks every live session of the user as revoked. Calling it
// when nothing is left to revoke is a no-op.
func (s *TokenService) RevokeAll(ctx context.Context, userID string) error {
	if err := s.sessionRepo.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

// RevokeByToken revokes the single session behind a raw token. Used by
// logout; a token that no longer resolves is already dead, so that case
// is not an error.
func (s *TokenService) RevokeByToken(ctx context.Context, rawToken string) error {
	tokenHash := crypto.HashSessionToken(rawToken)

	session, err := s.sessionRepo.FindActiveByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up session: %w", err)
	}

	return s.sessionRepo.Revoke(ctx, session.ID)
}
