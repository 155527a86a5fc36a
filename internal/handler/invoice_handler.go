package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/invoicemanager/backend/internal/domain"
	"github.com/invoicemanager/backend/internal/pdf"
	"github.com/invoicemanager/backend/internal/response"
	"github.com/invoicemanager/backend/internal/service"
	"github.com/invoicemanager/backend/internal/validation"
)

type InvoiceHandler struct {
	invoices  *service.InvoiceService
	customers *service.CustomerService
	validator *validation.Validator
	logger    *slog.Logger
}

type InvoiceHandlerConfig struct {
	Invoices  *service.InvoiceService
	Customers *service.CustomerService
	Validator *validation.Validator
	Logger    *slog.Logger
}

func NewInvoiceHandler(cfg InvoiceHandlerConfig) *InvoiceHandler {
	return &InvoiceHandler{
		invoices:  cfg.Invoices,
		customers: cfg.Customers,
		validator: cfg.Validator,
		logger:    cfg.Logger,
	}
}

func (h *InvoiceHandler) RegisterProtected(app fiber.Router) {
	invoices := app.Group("/invoices")
	invoices.Get("/", h.List)
	invoices.Get("/all", h.ListAll)
	invoices.Get("/:id", h.Get)
	invoices.Get("/:id/pdf", h.DownloadPDF)
	invoices.Post("/", h.Create)
	invoices.Put("/:id", h.Update)
	invoices.Delete("/:id", h.Delete)
	invoices.Post("/:id/archive", h.Archive)
	invoices.Post("/:id/status", h.ChangeStatus)
}

type InvoiceRowRequest struct {
	Service  string          `json:"service" validate:"required,max=100"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

type InvoiceRequest struct {
	CustomerID string              `json:"customerId" validate:"required"`
	StartDate  time.Time           `json:"startDate" validate:"required"`
	EndDate    time.Time           `json:"endDate" validate:"required"`
	Status     string              `json:"status" validate:"omitempty,oneof=created sent received paid cancelled rejected"`
	Comment    string              `json:"comment" validate:"max=500"`
	Rows       []InvoiceRowRequest `json:"rows" validate:"required,min=1,dive"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type InvoiceRowResponse struct {
	ID       string          `json:"id"`
	Service  string          `json:"service"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Sum      decimal.Decimal `json:"sum"`
}

type InvoiceResponse struct {
	ID           string               `json:"id"`
	CustomerID   string               `json:"customerId"`
	CustomerName string               `json:"customerName,omitempty"`
	StartDate    time.Time            `json:"startDate"`
	EndDate      time.Time            `json:"endDate"`
	Rows         []InvoiceRowResponse `json:"rows"`
	TotalSum     decimal.Decimal      `json:"totalSum"`
	Comment      string               `json:"comment,omitempty"`
	Status       string               `json:"status"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    *time.Time           `json:"updatedAt,omitempty"`
}

func toInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	rows := make([]InvoiceRowResponse, len(inv.Rows))
	for i, row := range inv.Rows {
		rows[i] = InvoiceRowResponse{
			ID:       row.ID,
			Service:  row.Service,
			Quantity: row.Quantity,
			Amount:   row.Amount,
			Sum:      row.Sum,
		}
	}
	return InvoiceResponse{
		ID:           inv.ID,
		CustomerID:   inv.CustomerID,
		CustomerName: inv.CustomerName,
		StartDate:    inv.StartDate,
		EndDate:      inv.EndDate,
		Rows:         rows,
		TotalSum:     inv.TotalSum,
		Comment:      inv.Comment,
		Status:       string(inv.Status),
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}
}

func toInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = toInvoiceResponse(&invoices[i])
	}
	return out
}

// checkRows enforces the numeric rules the struct validator cannot
// express for decimal fields.
func checkRows(req InvoiceRequest) error {
	for i, row := range req.Rows {
		if !row.Quantity.IsPositive() {
			return fmt.Errorf("row %d: quantity must be positive: %w", i+1, domain.ErrInvalidInput)
		}
		if !row.Amount.IsPositive() {
			return fmt.Errorf("row %d: amount must be positive: %w", i+1, domain.ErrInvalidInput)
		}
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("end date precedes start date: %w", domain.ErrInvalidInput)
	}
	return nil
}

func toRowInputs(rows []InvoiceRowRequest) []domain.InvoiceRowInput {
	out := make([]domain.InvoiceRowInput, len(rows))
	for i, row := range rows {
		out[i] = domain.InvoiceRowInput{
			Service:  row.Service,
			Quantity: row.Quantity,
			Amount:   row.Amount,
		}
	}
	return out
}

func invoiceQueryFromRequest(c *fiber.Ctx) (domain.InvoiceQuery, error) {
	query := domain.InvoiceQuery{
		Page:          c.QueryInt("page", 1),
		PageSize:      c.QueryInt("pageSize", 10),
		SortBy:        c.Query("sortBy", "createdAt"),
		SortDirection: c.Query("sortDirection", "desc"),
		Search:        c.Query("search"),
		CustomerName:  c.Query("customerName"),
		Status:        c.Query("status"),
	}

	if raw := c.Query("minTotal"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return query, fmt.Errorf("invalid minTotal: %w", domain.ErrInvalidInput)
		}
		query.MinTotal = &d
	}
	if raw := c.Query("maxTotal"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return query, fmt.Errorf("invalid maxTotal: %w", domain.ErrInvalidInput)
		}
		query.MaxTotal = &d
	}
	if raw := c.Query("startDateFrom"); raw != "" {
		ts, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return query, fmt.Errorf("invalid startDateFrom: %w", domain.ErrInvalidInput)
		}
		query.StartDateFrom = &ts
	}
	if raw := c.Query("startDateTo"); raw != "" {
		ts, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return query, fmt.Errorf("invalid startDateTo: %w", domain.ErrInvalidInput)
		}
		query.StartDateTo = &ts
	}

	return query, nil
}

func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	query, err := invoiceQueryFromRequest(c)
	if err != nil {
		return HandleDomainError(c, err)
	}

	invoices, total, err := h.invoices.ListPaged(c.Context(), query)
	if err != nil {
		h.logger.Error("failed to list invoices", "error", err)
		return HandleDomainError(c, err)
	}

	return response.OKWithPagination(c, toInvoiceResponses(invoices), query.Page, query.PageSize, total)
}

func (h *InvoiceHandler) ListAll(c *fiber.Ctx) error {
	invoices, err := h.invoices.List(c.Context())
	if err != nil {
		h.logger.Error("failed to list invoices", "error", err)
		return HandleDomainError(c, err)
	}

	return response.OK(c, toInvoiceResponses(invoices))
}

func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	invoice, err := h.invoices.Get(c.Context(), c.Params("id"))
	if err != nil {
		return HandleNotFoundOrInternal(c, err, MsgInvoiceNotFound)
	}

	return response.OK(c, toInvoiceResponse(invoice))
}

func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var req InvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}
	if err := h.validator.Struct(req); err != nil {
		return HandleDomainError(c, err)
	}
	if err := checkRows(req); err != nil {
		return HandleDomainError(c, err)
	}

	invoice, err := h.invoices.Create(c.Context(), domain.CreateInvoiceInput{
		CustomerID: req.CustomerID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Status:     domain.InvoiceStatus(req.Status),
		Comment:    req.Comment,
		Rows:       toRowInputs(req.Rows),
	})
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.Created(c, toInvoiceResponse(invoice))
}

func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var req InvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}
	if err := h.validator.Struct(req); err != nil {
		return HandleDomainError(c, err)
	}
	if err := checkRows(req); err != nil {
		return HandleDomainError(c, err)
	}

	status := domain.InvoiceStatusCreated
	if req.Status != "" {
		status = domain.InvoiceStatus(req.Status)
	}

	invoice, err := h.invoices.Update(c.Context(), c.Params("id"), domain.UpdateInvoiceInput{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    status,
		Comment:   req.Comment,
		Rows:      toRowInputs(req.Rows),
	})
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.OK(c, toInvoiceResponse(invoice))
}

func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.invoices.Delete(c.Context(), c.Params("id")); err != nil {
		return HandleDomainError(c, err)
	}

	return response.NoContent(c)
}

func (h *InvoiceHandler) Archive(c *fiber.Ctx) error {
	if err := h.invoices.Archive(c.Context(), c.Params("id")); err != nil {
		return HandleDomainError(c, err)
	}

	return response.NoContent(c)
}

func (h *InvoiceHandler) ChangeStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}
	if err := h.validator.Struct(req); err != nil {
		return HandleDomainError(c, err)
	}

	if err := h.invoices.ChangeStatus(c.Context(), c.Params("id"), req.Status); err != nil {
		return HandleDomainError(c, err)
	}

	return response.NoContent(c)
}

// DownloadPDF renders the invoice as a printable document. The customer
// block falls back to the joined name when the customer was archived.
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	invoice, err := h.invoices.Get(c.Context(), c.Params("id"))
	if err != nil {
		return HandleNotFoundOrInternal(c, err, MsgInvoiceNotFound)
	}

	customer, err := h.customers.Get(c.Context(), invoice.CustomerID, user.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return HandleDomainError(c, err)
		}
		customer = &domain.Customer{Name: invoice.CustomerName}
	}

	data, err := pdf.RenderInvoice(invoice, customer)
	if err != nil {
		h.logger.Error("failed to render invoice pdf", "invoice_id", invoice.ID, "error", err)
		return response.InternalError(c)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=invoice-%s.pdf", invoice.ID))
	return c.Send(data)
}
