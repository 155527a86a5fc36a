package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoicemanager/backend/internal/domain"
)

func newTestInvoiceService(t *testing.T) (*InvoiceService, *memoryCustomerRepo, *memoryInvoiceRepo, string) {
	t.Helper()

	customers := newMemoryCustomerRepo()
	invoices := newMemoryInvoiceRepo()
	svc := NewInvoiceService(invoices, customers, newTestLogger())

	customer, err := customers.Create(context.Background(), domain.CreateCustomerInput{
		UserID: "user-1",
		Name:   "Acme Corp",
		Email:  "billing@acme.test",
	})
	if err != nil {
		t.Fatalf("create customer error: %v", err)
	}

	return svc, customers, invoices, customer.ID
}

func draftInvoiceInput(customerID string) domain.CreateInvoiceInput {
	return domain.CreateInvoiceInput{
		CustomerID: customerID,
		StartDate:  time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 2, 10, 17, 0, 0, 0, time.UTC),
		Status:     domain.InvoiceStatusCreated,
		Rows: []domain.InvoiceRowInput{
			{Service: "Development", Quantity: decimal.NewFromInt(10), Amount: decimal.RequireFromString("50.75")},
			{Service: "Review", Quantity: decimal.NewFromInt(2), Amount: decimal.NewFromInt(80)},
		},
	}
}

func TestCreateInvoiceComputesTotals(t *testing.T) {
	svc, _, _, customerID := newTestInvoiceService(t)

	invoice, err := svc.Create(context.Background(), draftInvoiceInput(customerID))
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	// 10 * 50.75 + 2 * 80 = 667.50
	wantTotal := decimal.RequireFromString("667.5")
	if !invoice.TotalSum.Equal(wantTotal) {
		t.Errorf("expected total %s, got %s", wantTotal, invoice.TotalSum)
	}
	if len(invoice.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(invoice.Rows))
	}
	if !invoice.Rows[0].Sum.Equal(decimal.RequireFromString("507.5")) {
		t.Errorf("row sum not derived: got %s", invoice.Rows[0].Sum)
	}
}

func TestCreateInvoiceUnknownCustomer(t *testing.T) {
	svc, _, _, _ := newTestInvoiceService(t)

	_, err := svc.Create(context.Background(), draftInvoiceInput("customer-missing"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteInvoiceOnlyWhileDraft(t *testing.T) {
	svc, _, _, customerID := newTestInvoiceService(t)

	invoice, err := svc.Create(context.Background(), draftInvoiceInput(customerID))
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := svc.ChangeStatus(context.Background(), invoice.ID, "sent"); err != nil {
		t.Fatalf("change status error: %v", err)
	}
	if err := svc.Delete(context.Background(), invoice.ID); !errors.Is(err, domain.ErrInvoiceNotDraft) {
		t.Errorf("expected ErrInvoiceNotDraft, got %v", err)
	}

	if err := svc.ChangeStatus(context.Background(), invoice.ID, "created"); err != nil {
		t.Fatalf("change status error: %v", err)
	}
	if err := svc.Delete(context.Background(), invoice.ID); err != nil {
		t.Errorf("delete of draft invoice failed: %v", err)
	}
}

func TestChangeStatusRejectsUnknownValue(t *testing.T) {
	svc, _, _, customerID := newTestInvoiceService(t)

	invoice, err := svc.Create(context.Background(), draftInvoiceInput(customerID))
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := svc.ChangeStatus(context.Background(), invoice.ID, "shredded"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestArchiveHidesInvoice(t *testing.T) {
	svc, _, _, customerID := newTestInvoiceService(t)

	invoice, err := svc.Create(context.Background(), draftInvoiceInput(customerID))
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := svc.Archive(context.Background(), invoice.ID); err != nil {
		t.Fatalf("archive error: %v", err)
	}
	if _, err := svc.Get(context.Background(), invoice.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("archived invoice still resolvable, err=%v", err)
	}
}

func TestUpdateRecomputesTotals(t *testing.T) {
	svc, _, _, customerID := newTestInvoiceService(t)

	invoice, err := svc.Create(context.Background(), draftInvoiceInput(customerID))
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	updated, err := svc.Update(context.Background(), invoice.ID, domain.UpdateInvoiceInput{
		StartDate: invoice.StartDate,
		EndDate:   invoice.EndDate,
		Status:    domain.InvoiceStatusCreated,
		Rows: []domain.InvoiceRowInput{
			{Service: "Consulting", Quantity: decimal.NewFromInt(3), Amount: decimal.NewFromInt(100)},
		},
	})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}

	if !updated.TotalSum.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected total 300, got %s", updated.TotalSum)
	}
	if len(updated.Rows) != 1 {
		t.Errorf("expected rows replaced, got %d rows", len(updated.Rows))
	}
}
