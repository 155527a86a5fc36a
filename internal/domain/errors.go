package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrAlreadyExists           = errors.New("resource already exists")
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInvoiceNotDraft         = errors.New("invoice is no longer in created status")
	ErrCustomerHasOpenInvoices = errors.New("customer has invoices past created status")
	ErrInvalidStatus           = errors.New("invalid invoice status")
	ErrInternalError           = errors.New("internal server error")
)
