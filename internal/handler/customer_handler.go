package handler

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/invoicemanager/backend/internal/domain"
	"github.com/invoicemanager/backend/internal/response"
	"github.com/invoicemanager/backend/internal/service"
	"github.com/invoicemanager/backend/internal/validation"
)

type CustomerHandler struct {
	customers *service.CustomerService
	validator *validation.Validator
	logger    *slog.Logger
}

type CustomerHandlerConfig struct {
	Customers *service.CustomerService
	Validator *validation.Validator
	Logger    *slog.Logger
}

func NewCustomerHandler(cfg CustomerHandlerConfig) *CustomerHandler {
	return &CustomerHandler{
		customers: cfg.Customers,
		validator: cfg.Validator,
		logger:    cfg.Logger,
	}
}

func (h *CustomerHandler) RegisterProtected(app fiber.Router) {
	customers := app.Group("/customers")
	customers.Get("/", h.List)
	customers.Get("/all", h.ListAll)
	customers.Get("/:id", h.Get)
	customers.Post("/", h.Create)
	customers.Put("/:id", h.Update)
	customers.Delete("/:id", h.Delete)
	customers.Post("/:id/archive", h.Archive)
}

type CustomerRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"max=200"`
	Phone   string `json:"phone" validate:"max=20"`
}

type CustomerResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Address       string     `json:"address"`
	Phone         string     `json:"phone"`
	InvoicesCount int        `json:"invoicesCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

func toCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Address:       c.Address,
		Phone:         c.Phone,
		InvoicesCount: c.InvoicesCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toCustomerResponses(customers []domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = toCustomerResponse(&customers[i])
	}
	return out
}

func customerQueryFromRequest(c *fiber.Ctx) domain.CustomerQuery {
	return domain.CustomerQuery{
		Page:          c.QueryInt("page", 1),
		PageSize:      c.QueryInt("pageSize", 10),
		SortBy:        c.Query("sortBy", "createdAt"),
		SortDirection: c.Query("sortDirection", "desc"),
		Search:        c.Query("search"),
	}
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	query := customerQueryFromRequest(c)
	customers, total, err := h.customers.ListPaged(c.Context(), user.ID, query)
	if err != nil {
		h.logger.Error("failed to list customers", "error", err)
		return HandleDomainError(c, err)
	}

	return response.OKWithPagination(c, toCustomerResponses(customers), query.Page, query.PageSize, total)
}

func (h *CustomerHandler) ListAll(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	customers, err := h.customers.List(c.Context(), user.ID)
	if err != nil {
		h.logger.Error("failed to list customers", "error", err)
		return HandleDomainError(c, err)
	}

	return response.OK(c, toCustomerResponses(customers))
}

func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	customer, err := h.customers.Get(c.Context(), c.Params("id"), user.ID)
	if err != nil {
		return HandleNotFoundOrInternal(c, err, MsgCustomerNotFound)
	}

	return response.OK(c, toCustomerResponse(customer))
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	var req CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}
	if err := h.validator.Struct(req); err != nil {
		return HandleDomainError(c, err)
	}

	customer, err := h.customers.Create(c.Context(), domain.CreateCustomerInput{
		UserID:  user.ID,
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.Created(c, toCustomerResponse(customer))
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	var req CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}
	if err := h.validator.Struct(req); err != nil {
		return HandleDomainError(c, err)
	}

	customer, err := h.customers.Update(c.Context(), c.Params("id"), user.ID, domain.UpdateCustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.OK(c, toCustomerResponse(customer))
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	if err := h.customers.Delete(c.Context(), c.Params("id"), user.ID); err != nil {
		return HandleDomainError(c, err)
	}

	return response.NoContent(c)
}

func (h *CustomerHandler) Archive(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	if err := h.customers.Archive(c.Context(), c.Params("id"), user.ID); err != nil {
		return HandleDomainError(c, err)
	}

	return response.NoContent(c)
}
