package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/invoicemanager/backend/internal/domain"
	"github.com/invoicemanager/backend/internal/password"
)

type memorySessionRepo struct {
	sessions map[string]*domain.Session
	nextID   int

	createErr error
	findErr   error
	revokeErr error
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *memorySessionRepo) Create(ctx context.Context, input domain.CreateSessionInput) (*domain.Session, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	session := &domain.Session{
		ID:        fmt.Sprintf("session-%d", r.nextID),
		UserID:    input.UserID,
		TokenHash: input.TokenHash,
		ExpiresAt: input.ExpiresAt,
		CreatedAt: time.Now(),
	}
	r.sessions[session.ID] = session
	return session, nil
}

func (r *memorySessionRepo) FindActiveByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, s := range r.sessions {
		if s.TokenHash == tokenHash && !s.Revoked && s.ExpiresAt.After(time.Now()) {
			copy := *s
			return &copy, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memorySessionRepo) FindByUserID(ctx context.Context, userID string) ([]domain.Session, error) {
	var out []domain.Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memorySessionRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	if r.revokeErr != nil {
		return r.revokeErr
	}
	for _, s := range r.sessions {
		if s.UserID == userID {
			s.Revoked = true
		}
	}
	return nil
}

func (r *memorySessionRepo) Revoke(ctx context.Context, id string) error {
	s, ok := r.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Revoked = true
	return nil
}

func (r *memorySessionRepo) expireAll() {
	for _, s := range r.sessions {
		s.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

func (r *memorySessionRepo) revokedCount() int {
	n := 0
	for _, s := range r.sessions {
		if s.Revoked {
			n++
		}
	}
	return n
}

type memoryUserRepo struct {
	users map[string]*domain.User

	findErr   error
	createErr error
}

func newMemoryUserRepo(users ...*domain.User) *memoryUserRepo {
	r := &memoryUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memoryUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryUserRepo) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	user := &domain.User{
		ID:           fmt.Sprintf("user-%d", len(r.users)+1),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    time.Now(),
	}
	r.users[user.ID] = user
	return user, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUser(id, email, plainPassword string) *domain.User {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		panic(err)
	}
	return &domain.User{
		ID:           id,
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
}
