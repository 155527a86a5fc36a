package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoicemanager/backend/internal/domain"
)

func TestRenderInvoice(t *testing.T) {
	invoice := &domain.Invoice{
		ID:         "inv-1",
		CustomerID: "cust-1",
		StartDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:     domain.InvoiceStatusSent,
		TotalSum:   decimal.RequireFromString("507.50"),
		Comment:    "March retainer",
		Rows: []domain.InvoiceRow{
			{Service: "Development", Quantity: decimal.NewFromInt(10), Amount: decimal.RequireFromString("50.75"), Sum: decimal.RequireFromString("507.50")},
		},
	}
	customer := &domain.Customer{
		Name:    "Acme Corp",
		Email:   "billing@acme.test",
		Address: "1 Main Street",
	}

	data, err := RenderInvoice(invoice, customer)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF, starts with %q", data[:min(8, len(data))])
	}
	if len(data) < 500 {
		t.Errorf("suspiciously small document: %d bytes", len(data))
	}
}
