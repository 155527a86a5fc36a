package auth

import (
	"context"
	"strings"

	"github.com/invoicemanager/backend/internal/domain"
)

// Outcome is the terminal state of one authentication attempt.
type Outcome int

const (
	// OutcomeNone means no credential was supplied. Not a failure:
	// downstream policy decides whether anonymous access is allowed.
	OutcomeNone Outcome = iota
	OutcomeFailed
	OutcomeAuthenticated
)

const (
	ReasonTokenMissing = "Token missing"
	ReasonTokenInvalid = "Invalid token"
)

const bearerPrefix = "Bearer "

// Result carries the outcome of a Gate check. User is set only when
// Outcome is OutcomeAuthenticated; Reason only when it is OutcomeFailed.
type Result struct {
	Outcome Outcome
	Reason  string
	User    *domain.User
}

// TokenValidator resolves a raw bearer token to its owning user, or
// reports domain.ErrNotFound.
type TokenValidator interface {
	Validate(ctx context.Context, rawToken string) (*domain.User, error)
}

// Gate is the per-request authentication interceptor. It extracts a bearer
// token from the Authorization header value and resolves it through the
// token validator. It never lets an error past its boundary: every
// validation problem becomes one of two generic failure reasons.
type Gate struct {
	tokens TokenValidator
}

func NewGate(tokens TokenValidator) *Gate {
	return &Gate{tokens: tokens}
}

// Authenticate runs one check against the raw Authorization header value.
// An empty header means the credential was absent. Values without the
// "Bearer " scheme are still treated as token material, so garbage fails
// with "Invalid token" rather than passing as anonymous.
func (g *Gate) Authenticate(ctx context.Context, authorization string) Result {
	if authorization == "" {
		return Result{Outcome: OutcomeNone}
	}

	token := authorization
	if strings.HasPrefix(token, bearerPrefix) {
		token = token[len(bearerPrefix):]
	}

	if strings.TrimSpace(token) == "" {
		return Result{Outcome: OutcomeFailed, Reason: ReasonTokenMissing}
	}

	user, err := g.tokens.Validate(ctx, token)
	if err != nil {
		return Result{Outcome: OutcomeFailed, Reason: ReasonTokenInvalid}
	}

	return Result{Outcome: OutcomeAuthenticated, User: user}
}
