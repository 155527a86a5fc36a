package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/invoicemanager/backend/internal/domain"
)

const dateLayout = "2006-01-02"

// RenderInvoice produces a printable A4 document for the invoice and its
// customer.
func RenderInvoice(invoice *domain.Invoice, customer *domain.Customer) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Invoice %s", invoice.ID), false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 10, fmt.Sprintf("Invoice #%s", invoice.ID))
	doc.Ln(14)

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 6, fmt.Sprintf("Period: %s to %s",
		invoice.StartDate.Format(dateLayout), invoice.EndDate.Format(dateLayout)))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Status: %s", invoice.Status))
	doc.Ln(10)

	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 6, "Billed to")
	doc.Ln(7)
	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 6, customer.Name)
	doc.Ln(6)
	if customer.Email != "" {
		doc.Cell(0, 6, customer.Email)
		doc.Ln(6)
	}
	if customer.Address != "" {
		doc.Cell(0, 6, customer.Address)
		doc.Ln(6)
	}
	doc.Ln(6)

	writeRowsTable(doc, invoice)

	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(150, 8, "Total", "", 0, "R", false, 0, "")
	doc.CellFormat(40, 8, invoice.TotalSum.StringFixed(2), "", 1, "R", false, 0, "")

	if invoice.Comment != "" {
		doc.Ln(6)
		doc.SetFont("Helvetica", "I", 10)
		doc.MultiCell(0, 5, invoice.Comment, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRowsTable(doc *fpdf.Fpdf, invoice *domain.Invoice) {
	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(90, 8, "Service", "1", 0, "L", true, 0, "")
	doc.CellFormat(25, 8, "Qty", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 8, "Amount", "1", 0, "R", true, 0, "")
	doc.CellFormat(40, 8, "Sum", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 11)
	for _, row := range invoice.Rows {
		doc.CellFormat(90, 8, row.Service, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 8, row.Quantity.String(), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 8, row.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		doc.CellFormat(40, 8, row.Sum.StringFixed(2), "1", 1, "R", false, 0, "")
	}
}
