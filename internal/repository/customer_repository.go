package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/invoicemanager/backend/internal/domain"
)

type PostgresCustomerRepository struct {
	db *sql.DB
}

func NewPostgresCustomerRepository(db *sql.DB) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

const customerColumns = `
	c.id, c.user_id, c.name, c.email, c.address, c.phone,
	c.created_at, c.updated_at, c.deleted_at,
	(SELECT COUNT(*) FROM invoices i WHERE i.customer_id = c.id AND i.deleted_at IS NULL) AS invoices_count`

// customerSortColumns whitelists the sortable fields; anything else falls
// back to created_at desc.
var customerSortColumns = map[string]string{
	"name":      "c.name",
	"email":     "c.email",
	"address":   "c.address",
	"createdat": "c.created_at",
}

func scanCustomer(scan func(dest ...any) error) (*domain.Customer, error) {
	var customer domain.Customer
	var address, phone sql.NullString
	var updatedAt, deletedAt sql.NullTime

	err := scan(
		&customer.ID,
		&customer.UserID,
		&customer.Name,
		&customer.Email,
		&address,
		&phone,
		&customer.CreatedAt,
		&updatedAt,
		&deletedAt,
		&customer.InvoicesCount,
	)
	if err != nil {
		return nil, err
	}

	customer.Address = address.String
	customer.Phone = phone.String
	customer.UpdatedAt = fromNullTime(updatedAt)
	customer.DeletedAt = fromNullTime(deletedAt)

	return &customer, nil
}

func (r *PostgresCustomerRepository) FindAll(ctx context.Context, userID string) ([]domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers c
		WHERE c.user_id = $1 AND c.deleted_at IS NULL
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *customer)
	}

	return customers, rows.Err()
}

func (r *PostgresCustomerRepository) FindByID(ctx context.Context, id, userID string) (*domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers c
		WHERE c.id = $1 AND c.user_id = $2 AND c.deleted_at IS NULL
	`

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, id, userID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return customer, nil
}

func (r *PostgresCustomerRepository) FindPaged(ctx context.Context, userID string, query domain.CustomerQuery) ([]domain.Customer, int, error) {
	where := []string{"c.user_id = $1", "c.deleted_at IS NULL"}
	args := []any{userID}

	if query.Search != "" {
		args = append(args, "%"+strings.ToLower(query.Search)+"%")
		idx := len(args)
		where = append(where, fmt.Sprintf(
			"(lower(c.name) LIKE $%d OR lower(c.email) LIKE $%d OR lower(coalesce(c.address, '')) LIKE $%d)",
			idx, idx, idx))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM customers c WHERE ` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := orderClause(customerSortColumns, query.SortBy, query.SortDirection, "c.created_at DESC")

	args = append(args, query.PageSize, (query.Page-1)*query.PageSize)
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM customers c
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, customerColumns, whereClause, orderBy, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, *customer)
	}

	return customers, total, rows.Err()
}

func (r *PostgresCustomerRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1 AND deleted_at IS NULL)`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *PostgresCustomerRepository) Create(ctx context.Context, input domain.CreateCustomerInput) (*domain.Customer, error) {
	query := `
		INSERT INTO customers AS c (user_id, name, email, address, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + customerColumns

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query,
		input.UserID,
		input.Name,
		input.Email,
		toNullStringValue(input.Address),
		toNullStringValue(input.Phone),
	).Scan)
	if err != nil {
		return nil, err
	}

	return customer, nil
}

func (r *PostgresCustomerRepository) Update(ctx context.Context, id string, input domain.UpdateCustomerInput) (*domain.Customer, error) {
	query := `
		UPDATE customers AS c
		SET name = $2, email = $3, address = $4, phone = $5, updated_at = NOW()
		WHERE c.id = $1 AND c.deleted_at IS NULL
		RETURNING ` + customerColumns

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query,
		id,
		input.Name,
		input.Email,
		toNullStringValue(input.Address),
		toNullStringValue(input.Phone),
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return customer, nil
}

func (r *PostgresCustomerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
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

func (r *PostgresCustomerRepository) Archive(ctx context.Context, id string) error {
	query := `UPDATE customers SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

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

func (r *PostgresCustomerRepository) CountInvoicesPastDraft(ctx context.Context, id string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM invoices WHERE customer_id = $1 AND status <> 'created'`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&count)
	return count, err
}

var _ domain.CustomerRepository = (*PostgresCustomerRepository)(nil)
