package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/invoicemanager/backend/internal/domain"
)

type PostgresInvoiceRepository struct {
	db *sql.DB
}

func NewPostgresInvoiceRepository(db *sql.DB) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{db: db}
}

const invoiceColumns = `
	i.id, i.customer_id, i.start_date, i.end_date, i.total_sum, i.comment,
	i.status, i.created_at, i.updated_at, i.deleted_at, c.name AS customer_name`

var invoiceSortColumns = map[string]string{
	"customername": "c.name",
	"startdate":    "i.start_date",
	"total":        "i.total_sum",
	"createdat":    "i.created_at",
}

func scanInvoice(scan func(dest ...any) error) (*domain.Invoice, error) {
	var invoice domain.Invoice
	var comment sql.NullString
	var updatedAt, deletedAt sql.NullTime

	err := scan(
		&invoice.ID,
		&invoice.CustomerID,
		&invoice.StartDate,
		&invoice.EndDate,
		&invoice.TotalSum,
		&comment,
		&invoice.Status,
		&invoice.CreatedAt,
		&updatedAt,
		&deletedAt,
		&invoice.CustomerName,
	)
	if err != nil {
		return nil, err
	}

	invoice.Comment = comment.String
	invoice.UpdatedAt = fromNullTime(updatedAt)
	invoice.DeletedAt = fromNullTime(deletedAt)

	return &invoice, nil
}

// loadRows attaches line items to the given invoices with a single query.
func (r *PostgresInvoiceRepository) loadRows(ctx context.Context, invoices []*domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Invoice, len(invoices))
	ids := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		byID[inv.ID] = inv
		ids = append(ids, inv.ID)
	}

	query := `
		SELECT id, invoice_id, service, quantity, amount, row_sum
		FROM invoice_rows
		WHERE invoice_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var row domain.InvoiceRow
		if err := rows.Scan(&row.ID, &row.InvoiceID, &row.Service, &row.Quantity, &row.Amount, &row.Sum); err != nil {
			return err
		}
		if inv, ok := byID[row.InvoiceID]; ok {
			inv.Rows = append(inv.Rows, row)
		}
	}

	return rows.Err()
}

func (r *PostgresInvoiceRepository) FindAll(ctx context.Context) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE i.deleted_at IS NULL
		ORDER BY i.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadRows(ctx, invoices); err != nil {
		return nil, err
	}

	out := make([]domain.Invoice, len(invoices))
	for i, inv := range invoices {
		out[i] = *inv
	}
	return out, nil
}

func (r *PostgresInvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE i.id = $1 AND i.deleted_at IS NULL
	`

	invoice, err := scanInvoice(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadRows(ctx, []*domain.Invoice{invoice}); err != nil {
		return nil, err
	}

	return invoice, nil
}

func (r *PostgresInvoiceRepository) FindPaged(ctx context.Context, query domain.InvoiceQuery) ([]domain.Invoice, int, error) {
	where := []string{"i.deleted_at IS NULL"}
	var args []any

	addArg := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if query.CustomerName != "" {
		addArg("lower(c.name) LIKE $%d", "%"+strings.ToLower(query.CustomerName)+"%")
	}
	if query.Status != "" {
		if status, err := domain.ParseInvoiceStatus(strings.ToLower(query.Status)); err == nil {
			addArg("i.status = $%d", string(status))
		}
	}
	if query.MinTotal != nil {
		addArg("i.total_sum >= $%d", *query.MinTotal)
	}
	if query.MaxTotal != nil {
		addArg("i.total_sum <= $%d", *query.MaxTotal)
	}
	if query.StartDateFrom != nil {
		addArg("i.start_date >= $%d", *query.StartDateFrom)
	}
	if query.StartDateTo != nil {
		addArg("i.start_date <= $%d", *query.StartDateTo)
	}
	if query.Search != "" {
		args = append(args, "%"+strings.ToLower(query.Search)+"%")
		idx := len(args)
		where = append(where, fmt.Sprintf(
			"(lower(c.name) LIKE $%d OR lower(coalesce(i.comment, '')) LIKE $%d)", idx, idx))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE ` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := orderClause(invoiceSortColumns, query.SortBy, query.SortDirection, "i.created_at DESC")

	args = append(args, query.PageSize, (query.Page-1)*query.PageSize)
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, invoiceColumns, whereClause, orderBy, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.loadRows(ctx, invoices); err != nil {
		return nil, 0, err
	}

	out := make([]domain.Invoice, len(invoices))
	for i, inv := range invoices {
		out[i] = *inv
	}
	return out, total, nil
}

func (r *PostgresInvoiceRepository) insertRows(ctx context.Context, tx *sql.Tx, invoiceID string, rows []domain.InvoiceRowInput) error {
	query := `
		INSERT INTO invoice_rows (invoice_id, service, quantity, amount, row_sum)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, query, invoiceID, row.Service, row.Quantity, row.Amount, row.Sum); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresInvoiceRepository) Create(ctx context.Context, input domain.CreateInvoiceInput) (*domain.Invoice, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO invoices (customer_id, start_date, end_date, total_sum, comment, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id string
	err = tx.QueryRowContext(ctx, query,
		input.CustomerID,
		input.StartDate,
		input.EndDate,
		input.TotalSum,
		toNullStringValue(input.Comment),
		string(input.Status),
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	if err := r.insertRows(ctx, tx, id, input.Rows); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresInvoiceRepository) Update(ctx context.Context, id string, input domain.UpdateInvoiceInput) (*domain.Invoice, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		UPDATE invoices
		SET start_date = $2, end_date = $3, total_sum = $4, comment = $5, status = $6, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := tx.ExecContext(ctx, query,
		id,
		input.StartDate,
		input.EndDate,
		input.TotalSum,
		toNullStringValue(input.Comment),
		string(input.Status),
	)
	if err != nil {
		return nil, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	// Line items are replaced wholesale on update.
	if _, err := tx.ExecContext(ctx, `DELETE FROM invoice_rows WHERE invoice_id = $1`, id); err != nil {
		return nil, err
	}
	if err := r.insertRows(ctx, tx, id, input.Rows); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresInvoiceRepository) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) error {
	query := `UPDATE invoices SET status = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, string(status))
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *PostgresInvoiceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *PostgresInvoiceRepository) Archive(ctx context.Context, id string) error {
	query := `UPDATE invoices SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

var _ domain.InvoiceRepository = (*PostgresInvoiceRepository)(nil)
