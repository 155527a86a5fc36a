package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/invoicemanager/backend/internal/domain"
)

type InvoiceService struct {
	invoiceRepo  domain.InvoiceRepository
	customerRepo domain.CustomerRepository
	logger       *slog.Logger
}

func NewInvoiceService(invoiceRepo domain.InvoiceRepository, customerRepo domain.CustomerRepository, logger *slog.Logger) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// priceRows derives each row's sum and the invoice total. Client-supplied
// totals are never trusted.
func priceRows(rows []domain.InvoiceRowInput) ([]domain.InvoiceRowInput, decimal.Decimal) {
	total := decimal.Zero
	priced := make([]domain.InvoiceRowInput, len(rows))
	for i, row := range rows {
		row.Sum = row.Quantity.Mul(row.Amount)
		priced[i] = row
		total = total.Add(row.Sum)
	}
	return priced, total
}

func (s *InvoiceService) List(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices, nil
}

func (s *InvoiceService) ListPaged(ctx context.Context, query domain.InvoiceQuery) ([]domain.Invoice, int, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		query.PageSize = 10
	}

	invoices, total, err := s.invoiceRepo.FindPaged(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices, total, nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindByID(ctx, id)
}

func (s *InvoiceService) Create(ctx context.Context, input domain.CreateInvoiceInput) (*domain.Invoice, error) {
	exists, err := s.customerRepo.Exists(ctx, input.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check customer: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("customer %s: %w", input.CustomerID, domain.ErrNotFound)
	}

	if input.Status == "" {
		input.Status = domain.InvoiceStatusCreated
	}
	input.Rows, input.TotalSum = priceRows(input.Rows)

	invoice, err := s.invoiceRepo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice created", "invoice_id", invoice.ID, "customer_id", invoice.CustomerID)
	return invoice, nil
}

func (s *InvoiceService) Update(ctx context.Context, id string, input domain.UpdateInvoiceInput) (*domain.Invoice, error) {
	input.Rows, input.TotalSum = priceRows(input.Rows)
	return s.invoiceRepo.Update(ctx, id, input)
}

// Delete removes an invoice permanently, allowed only while it is still
// in created status.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice.Status != domain.InvoiceStatusCreated {
		return domain.ErrInvoiceNotDraft
	}

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("invoice deleted", "invoice_id", id)
	return nil
}

func (s *InvoiceService) Archive(ctx context.Context, id string) error {
	if err := s.invoiceRepo.Archive(ctx, id); err != nil {
		return err
	}

	s.logger.Info("invoice archived", "invoice_id", id)
	return nil
}

func (s *InvoiceService) ChangeStatus(ctx context.Context, id, newStatus string) error {
	status, err := domain.ParseInvoiceStatus(newStatus)
	if err != nil {
		return err
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info("invoice status changed", "invoice_id", id, "status", string(status))
	return nil
}
