package service

import (
	"context"
	"errors"
	"testing"

	"github.com/invoicemanager/backend/internal/domain"
)

const testUserID = "user-1"

func newTestCustomerService(t *testing.T) (*CustomerService, *memoryCustomerRepo, string) {
	t.Helper()

	customers := newMemoryCustomerRepo()
	svc := NewCustomerService(customers, newTestLogger())

	customer, err := svc.Create(context.Background(), domain.CreateCustomerInput{
		UserID: testUserID,
		Name:   "Acme Corp",
		Email:  "billing@acme.test",
	})
	if err != nil {
		t.Fatalf("create customer error: %v", err)
	}

	return svc, customers, customer.ID
}

func TestCustomerScopedToOwner(t *testing.T) {
	svc, _, id := newTestCustomerService(t)

	if _, err := svc.Get(context.Background(), id, testUserID); err != nil {
		t.Errorf("owner cannot read own customer: %v", err)
	}
	if _, err := svc.Get(context.Background(), id, "someone-else"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign user resolved the customer, err=%v", err)
	}
}

func TestDeleteCustomerBlockedByOpenInvoices(t *testing.T) {
	svc, customers, id := newTestCustomerService(t)

	customers.pastDraft[id] = 2
	if err := svc.Delete(context.Background(), id, testUserID); !errors.Is(err, domain.ErrCustomerHasOpenInvoices) {
		t.Errorf("expected ErrCustomerHasOpenInvoices, got %v", err)
	}

	customers.pastDraft[id] = 0
	if err := svc.Delete(context.Background(), id, testUserID); err != nil {
		t.Errorf("delete failed with no open invoices: %v", err)
	}
}

func TestArchiveCustomerHidesFromListing(t *testing.T) {
	svc, _, id := newTestCustomerService(t)

	if err := svc.Archive(context.Background(), id, testUserID); err != nil {
		t.Fatalf("archive error: %v", err)
	}

	list, err := svc.List(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("archived customer still listed")
	}

	if _, err := svc.Get(context.Background(), id, testUserID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("archived customer still resolvable, err=%v", err)
	}
}

func TestListPagedDefaults(t *testing.T) {
	svc, _, _ := newTestCustomerService(t)

	customers, total, err := svc.ListPaged(context.Background(), testUserID, domain.CustomerQuery{Page: 0, PageSize: 1000})
	if err != nil {
		t.Fatalf("list paged error: %v", err)
	}
	if total != 1 || len(customers) != 1 {
		t.Errorf("expected 1 customer, got total=%d len=%d", total, len(customers))
	}
}
