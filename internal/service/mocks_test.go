package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/invoicemanager/backend/internal/domain"
)

type memoryCustomerRepo struct {
	customers map[string]*domain.Customer
	pastDraft map[string]int
	nextID    int
}

func newMemoryCustomerRepo() *memoryCustomerRepo {
	return &memoryCustomerRepo{
		customers: make(map[string]*domain.Customer),
		pastDraft: make(map[string]int),
	}
}

func (r *memoryCustomerRepo) FindAll(ctx context.Context, userID string) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, c := range r.customers {
		if c.UserID == userID && c.DeletedAt == nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memoryCustomerRepo) FindByID(ctx context.Context, id, userID string) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok || c.UserID != userID || c.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	copy := *c
	return &copy, nil
}

func (r *memoryCustomerRepo) FindPaged(ctx context.Context, userID string, query domain.CustomerQuery) ([]domain.Customer, int, error) {
	all, _ := r.FindAll(ctx, userID)
	total := len(all)
	start := (query.Page - 1) * query.PageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + query.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memoryCustomerRepo) Exists(ctx context.Context, id string) (bool, error) {
	c, ok := r.customers[id]
	return ok && c.DeletedAt == nil, nil
}

func (r *memoryCustomerRepo) Create(ctx context.Context, input domain.CreateCustomerInput) (*domain.Customer, error) {
	r.nextID++
	c := &domain.Customer{
		ID:        fmt.Sprintf("customer-%d", r.nextID),
		UserID:    input.UserID,
		Name:      input.Name,
		Email:     input.Email,
		Address:   input.Address,
		Phone:     input.Phone,
		CreatedAt: time.Now(),
	}
	r.customers[c.ID] = c
	return c, nil
}

func (r *memoryCustomerRepo) Update(ctx context.Context, id string, input domain.UpdateCustomerInput) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok || c.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	c.Name = input.Name
	c.Email = input.Email
	c.Address = input.Address
	c.Phone = input.Phone
	now := time.Now()
	c.UpdatedAt = &now
	copy := *c
	return &copy, nil
}

func (r *memoryCustomerRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *memoryCustomerRepo) Archive(ctx context.Context, id string) error {
	c, ok := r.customers[id]
	if !ok || c.DeletedAt != nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	c.DeletedAt = &now
	return nil
}

func (r *memoryCustomerRepo) CountInvoicesPastDraft(ctx context.Context, id string) (int, error) {
	return r.pastDraft[id], nil
}

type memoryInvoiceRepo struct {
	invoices map[string]*domain.Invoice
	nextID   int
}

func newMemoryInvoiceRepo() *memoryInvoiceRepo {
	return &memoryInvoiceRepo{invoices: make(map[string]*domain.Invoice)}
}

func (r *memoryInvoiceRepo) FindAll(ctx context.Context) ([]domain.Invoice, error) {
	var out []domain.Invoice
	for _, inv := range r.invoices {
		if inv.DeletedAt == nil {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *memoryInvoiceRepo) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || inv.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	copy := *inv
	return &copy, nil
}

func (r *memoryInvoiceRepo) FindPaged(ctx context.Context, query domain.InvoiceQuery) ([]domain.Invoice, int, error) {
	all, _ := r.FindAll(ctx)
	return all, len(all), nil
}

func (r *memoryInvoiceRepo) Create(ctx context.Context, input domain.CreateInvoiceInput) (*domain.Invoice, error) {
	r.nextID++
	inv := &domain.Invoice{
		ID:         fmt.Sprintf("invoice-%d", r.nextID),
		CustomerID: input.CustomerID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		TotalSum:   input.TotalSum,
		Comment:    input.Comment,
		Status:     input.Status,
		CreatedAt:  time.Now(),
	}
	for _, row := range input.Rows {
		inv.Rows = append(inv.Rows, domain.InvoiceRow{
			InvoiceID: inv.ID,
			Service:   row.Service,
			Quantity:  row.Quantity,
			Amount:    row.Amount,
			Sum:       row.Sum,
		})
	}
	r.invoices[inv.ID] = inv
	return inv, nil
}

func (r *memoryInvoiceRepo) Update(ctx context.Context, id string, input domain.UpdateInvoiceInput) (*domain.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || inv.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	inv.StartDate = input.StartDate
	inv.EndDate = input.EndDate
	inv.Comment = input.Comment
	inv.Status = input.Status
	inv.TotalSum = input.TotalSum
	inv.Rows = nil
	for _, row := range input.Rows {
		inv.Rows = append(inv.Rows, domain.InvoiceRow{
			InvoiceID: id,
			Service:   row.Service,
			Quantity:  row.Quantity,
			Amount:    row.Amount,
			Sum:       row.Sum,
		})
	}
	copy := *inv
	return &copy, nil
}

func (r *memoryInvoiceRepo) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) error {
	inv, ok := r.invoices[id]
	if !ok || inv.DeletedAt != nil {
		return domain.ErrNotFound
	}
	inv.Status = status
	return nil
}

func (r *memoryInvoiceRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.invoices, id)
	return nil
}

func (r *memoryInvoiceRepo) Archive(ctx context.Context, id string) error {
	inv, ok := r.invoices[id]
	if !ok || inv.DeletedAt != nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	inv.DeletedAt = &now
	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
