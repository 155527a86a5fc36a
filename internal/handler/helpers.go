package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/invoicemanager/backend/internal/domain"
	"github.com/invoicemanager/backend/internal/response"
	"github.com/invoicemanager/backend/internal/validation"
)

func HandleDomainError(c *fiber.Ctx, err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return response.BadRequestWithDetails(c, "validation failed", verr.Fields)
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrInvoiceNotDraft):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrCustomerHasOpenInvoices):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidStatus):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalError(c)
	}
}

func HandleNotFoundOrInternal(c *fiber.Ctx, err error, notFoundMsg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return response.NotFound(c, notFoundMsg)
	}
	return response.InternalError(c)
}
