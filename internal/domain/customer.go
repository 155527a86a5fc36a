package domain

import (
	"context"
	"time"
)

type Customer struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time

	// InvoicesCount is populated by list/find queries, not stored.
	InvoicesCount int
}

type CreateCustomerInput struct {
	UserID  string
	Name    string
	Email   string
	Address string
	Phone   string
}

type UpdateCustomerInput struct {
	Name    string
	Email   string
	Address string
	Phone   string
}

type CustomerQuery struct {
	Page          int
	PageSize      int
	SortBy        string
	SortDirection string
	Search        string
}

type CustomerRepository interface {
	FindAll(ctx context.Context, userID string) ([]Customer, error)
	FindByID(ctx context.Context, id, userID string) (*Customer, error)
	FindPaged(ctx context.Context, userID string, query CustomerQuery) ([]Customer, int, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, input CreateCustomerInput) (*Customer, error)
	Update(ctx context.Context, id string, input UpdateCustomerInput) (*Customer, error)
	Delete(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
	// CountInvoicesPastDraft reports how many of the customer's invoices
	// have moved beyond the created status. Deletion is refused while any exist.
	CountInvoicesPastDraft(ctx context.Context, id string) (int, error)
}
