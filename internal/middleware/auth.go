package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/invoicemanager/backend/internal/auth"
	"github.com/invoicemanager/backend/internal/handler"
	"github.com/invoicemanager/backend/internal/response"
)

type AuthMiddleware struct {
	gate   *auth.Gate
	logger *slog.Logger
}

type AuthMiddlewareConfig struct {
	Gate   *auth.Gate
	Logger *slog.Logger
}

func NewAuthMiddleware(cfg AuthMiddlewareConfig) *AuthMiddleware {
	return &AuthMiddleware{
		gate:   cfg.Gate,
		logger: cfg.Logger,
	}
}

// Require rejects the request unless the Authorization header carries a
// valid bearer token.
func (m *AuthMiddleware) Require() fiber.Handler {
	return func(c *fiber.Ctx) error {
		result := m.gate.Authenticate(c.Context(), c.Get(fiber.HeaderAuthorization))

		switch result.Outcome {
		case auth.OutcomeAuthenticated:
			handler.SetUserInContext(c, result.User)
			return c.Next()
		case auth.OutcomeFailed:
			m.logger.Debug("authentication failed", "reason", result.Reason, "path", c.Path())
			return response.Unauthorized(c, result.Reason)
		default:
			return response.Unauthorized(c, "authentication required")
		}
	}
}

// Optional resolves the user when a valid token is present and lets the
// request through either way.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		result := m.gate.Authenticate(c.Context(), c.Get(fiber.HeaderAuthorization))
		if result.Outcome == auth.OutcomeAuthenticated {
			handler.SetUserInContext(c, result.User)
		}
		return c.Next()
	}
}
