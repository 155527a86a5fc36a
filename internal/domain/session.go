package domain

import (
	"context"
	"time"
)

// Session binds the hash of an opaque bearer token to a user and a
// validity window. Sessions are never deleted, only revoked, so the
// table doubles as a login audit trail.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	Revoked   bool
}

type CreateSessionInput struct {
	UserID    string
	TokenHash string
	ExpiresAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) (*Session, error)
	// FindActiveByTokenHash returns the session matching the hash that is
	// neither revoked nor expired, or ErrNotFound.
	FindActiveByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	FindByUserID(ctx context.Context, userID string) ([]Session, error)
	// RevokeAllForUser marks every live session of the user as revoked.
	// Calling it again after all sessions are revoked is a no-op.
	RevokeAllForUser(ctx context.Context, userID string) error
	Revoke(ctx context.Context, id string) error
}
