package handler

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/invoicemanager/backend/internal/auth"
	"github.com/invoicemanager/backend/internal/domain"
	"github.com/invoicemanager/backend/internal/response"
	"github.com/invoicemanager/backend/internal/validation"
)

type AuthHandler struct {
	accounts  *auth.AccountService
	tokens    *auth.TokenService
	validator *validation.Validator
	logger    *slog.Logger
}

type AuthHandlerConfig struct {
	Accounts  *auth.AccountService
	Tokens    *auth.TokenService
	Validator *validation.Validator
	Logger    *slog.Logger
}

func NewAuthHandler(cfg AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		accounts:  cfg.Accounts,
		tokens:    cfg.Tokens,
		validator: cfg.Validator,
		logger:    cfg.Logger,
	}
}

func (h *AuthHandler) Register(app fiber.Router) {
	authGroup := app.Group("/auth")
	authGroup.Post("/register", h.RegisterUser)
	authGroup.Post("/login", h.Login)
}

func (h *AuthHandler) RegisterProtected(app fiber.Router) {
	app.Get("/auth/me", h.GetCurrentUser)
	app.Post("/auth/logout", h.Logout)
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}
	if err := h.validator.Struct(req); err != nil {
		return HandleDomainError(c, err)
	}

	user, err := h.accounts.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.Warn("registration failed", "email", req.Email, "error", err)
		return HandleDomainError(c, err)
	}

	return response.Created(c, toUserResponse(user))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}
	if err := h.validator.Struct(req); err != nil {
		return HandleDomainError(c, err)
	}

	user, rawToken, err := h.accounts.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.OK(c, LoginResponse{
		Email:       user.Email,
		AccessToken: rawToken,
	})
}

func (h *AuthHandler) GetCurrentUser(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	return response.OK(c, toUserResponse(user))
}

// Logout revokes the session behind the presented token. A token that is
// already dead still logs out cleanly.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	rawToken := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if rawToken != "" {
		if err := h.tokens.RevokeByToken(c.Context(), rawToken); err != nil {
			h.logger.Warn("failed to revoke session", "error", err)
		}
	}

	return response.OK(c, map[string]string{"message": MsgLoggedOut})
}

const userContextKey = "user"

func SetUserInContext(c *fiber.Ctx, user *domain.User) {
	c.Locals(userContextKey, user)
}

func GetUserFromContext(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(userContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
