package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/invoicemanager/backend/internal/domain"
)

type CustomerService struct {
	customerRepo domain.CustomerRepository
	logger       *slog.Logger
}

func NewCustomerService(customerRepo domain.CustomerRepository, logger *slog.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

func (s *CustomerService) List(ctx context.Context, userID string) ([]domain.Customer, error) {
	customers, err := s.customerRepo.FindAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return customers, nil
}

func (s *CustomerService) ListPaged(ctx context.Context, userID string, query domain.CustomerQuery) ([]domain.Customer, int, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		query.PageSize = 10
	}

	customers, total, err := s.customerRepo.FindPaged(ctx, userID, query)
	if err != nil {
		return nil, 0, err
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return customers, total, nil
}

func (s *CustomerService) Get(ctx context.Context, id, userID string) (*domain.Customer, error) {
	return s.customerRepo.FindByID(ctx, id, userID)
}

func (s *CustomerService) Create(ctx context.Context, input domain.CreateCustomerInput) (*domain.Customer, error) {
	customer, err := s.customerRepo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer created", "customer_id", customer.ID, "user_id", input.UserID)
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id, userID string, input domain.UpdateCustomerInput) (*domain.Customer, error) {
	// Ownership and soft-delete state are checked before touching the row.
	if _, err := s.customerRepo.FindByID(ctx, id, userID); err != nil {
		return nil, err
	}

	return s.customerRepo.Update(ctx, id, input)
}

// Delete removes the customer permanently. Refused while any of the
// customer's invoices has moved past the created status.
func (s *CustomerService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.customerRepo.FindByID(ctx, id, userID); err != nil {
		return err
	}

	count, err := s.customerRepo.CountInvoicesPastDraft(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count invoices: %w", err)
	}
	if count > 0 {
		return domain.ErrCustomerHasOpenInvoices
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("customer deleted", "customer_id", id)
	return nil
}

// Archive soft-deletes the customer; invoices keep their foreign key and
// history stays queryable.
func (s *CustomerService) Archive(ctx context.Context, id, userID string) error {
	if _, err := s.customerRepo.FindByID(ctx, id, userID); err != nil {
		return err
	}

	if err := s.customerRepo.Archive(ctx, id); err != nil {
		return err
	}

	s.logger.Info("customer archived", "customer_id", id)
	return nil
}
