package domain

import (
	"context"
	"time"
)

type User struct {
	ID           string
	Name         string
	Email        string
	Address      string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

type CreateUserInput struct {
	Name         string
	Email        string
	PasswordHash string
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, input CreateUserInput) (*User, error)
}
