package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusCreated   InvoiceStatus = "created"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusReceived  InvoiceStatus = "received"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusRejected  InvoiceStatus = "rejected"
)

func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch InvoiceStatus(s) {
	case InvoiceStatusCreated, InvoiceStatusSent, InvoiceStatusReceived,
		InvoiceStatusPaid, InvoiceStatusCancelled, InvoiceStatusRejected:
		return InvoiceStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

type InvoiceRow struct {
	ID        string
	InvoiceID string
	Service   string
	Quantity  decimal.Decimal
	Amount    decimal.Decimal
	Sum       decimal.Decimal
}

type Invoice struct {
	ID         string
	CustomerID string
	StartDate  time.Time
	EndDate    time.Time
	Rows       []InvoiceRow
	TotalSum   decimal.Decimal
	Comment    string
	Status     InvoiceStatus
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time

	// CustomerName is populated by fetch joins for responses and PDFs.
	CustomerName string
}

type InvoiceRowInput struct {
	Service  string
	Quantity decimal.Decimal
	Amount   decimal.Decimal

	// Sum is derived as Quantity * Amount by the service layer before
	// the input reaches a repository.
	Sum decimal.Decimal
}

type CreateInvoiceInput struct {
	CustomerID string
	StartDate  time.Time
	EndDate    time.Time
	Status     InvoiceStatus
	Comment    string
	Rows       []InvoiceRowInput

	// TotalSum is derived from Rows by the service layer.
	TotalSum decimal.Decimal
}

type UpdateInvoiceInput struct {
	StartDate time.Time
	EndDate   time.Time
	Status    InvoiceStatus
	Comment   string
	Rows      []InvoiceRowInput
	TotalSum  decimal.Decimal
}

type InvoiceQuery struct {
	Page          int
	PageSize      int
	SortBy        string
	SortDirection string
	Search        string
	CustomerName  string
	Status        string
	MinTotal      *decimal.Decimal
	MaxTotal      *decimal.Decimal
	StartDateFrom *time.Time
	StartDateTo   *time.Time
}

type InvoiceRepository interface {
	FindAll(ctx context.Context) ([]Invoice, error)
	FindByID(ctx context.Context, id string) (*Invoice, error)
	FindPaged(ctx context.Context, query InvoiceQuery) ([]Invoice, int, error)
	Create(ctx context.Context, input CreateInvoiceInput) (*Invoice, error)
	Update(ctx context.Context, id string, input UpdateInvoiceInput) (*Invoice, error)
	UpdateStatus(ctx context.Context, id string, status InvoiceStatus) error
	Delete(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
}
