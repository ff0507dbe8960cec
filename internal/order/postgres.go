package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by the orders table.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const orderColumns = `id, first_name, last_name, email, street_address, city, zip_code,
state_region, product_details, subtotal, promo_discount, shipping_fee,
tax_rate, tax, total_amount, shipping_method, promo_applied, status, created_at`

func (r *postgresRepo) Create(ctx context.Context, params CreateParams) (Order, error) {
	details := params.ProductDetails
	if details == nil {
		details = []LineSnapshot{}
	}
	encoded, err := json.Marshal(details)
	if err != nil {
		return Order{}, fmt.Errorf("order: encode product details: %w", err)
	}
	q := `
INSERT INTO orders (
	first_name, last_name, email, street_address, city, zip_code, state_region,
	product_details, subtotal, promo_discount, shipping_fee, tax_rate, tax,
	total_amount, shipping_method, promo_applied, status
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, 'pending')
RETURNING ` + orderColumns
	row := r.pool.QueryRow(ctx, q,
		params.FirstName,
		params.LastName,
		params.Email,
		params.StreetAddress,
		params.City,
		params.ZipCode,
		params.StateRegion,
		encoded,
		params.Subtotal,
		params.PromoDiscount,
		params.ShippingFee,
		params.TaxRate,
		params.Tax,
		params.TotalAmount,
		params.ShippingMethod,
		params.PromoApplied,
	)
	return scanOrder(row)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	return o, err
}

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]Order, int, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(lower(email) LIKE $%d OR lower(first_name) LIKE $%d OR lower(last_name) LIKE $%d)", n, n, n))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("order: count: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}
	args = append(args, perPage, (page-1)*perPage)
	q := fmt.Sprintf("SELECT %s FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		orderColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("order: list: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("order: list: %w", err)
	}
	return orders, total, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id int64, target Status) (Order, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(current.Status, target) {
		return Order{}, ErrInvalidTransition
	}
	// The WHERE clause re-checks the current status so a concurrent update
	// cannot skip a lifecycle step.
	q := `UPDATE orders SET status = $1 WHERE id = $2 AND status = $3 RETURNING ` + orderColumns
	o, err := scanOrder(r.pool.QueryRow(ctx, q, string(target), id, string(current.Status)))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrInvalidTransition
	}
	return o, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		o       Order
		status  string
		details []byte
	)
	if err := row.Scan(
		&o.ID,
		&o.FirstName,
		&o.LastName,
		&o.Email,
		&o.StreetAddress,
		&o.City,
		&o.ZipCode,
		&o.StateRegion,
		&details,
		&o.Subtotal,
		&o.PromoDiscount,
		&o.ShippingFee,
		&o.TaxRate,
		&o.Tax,
		&o.TotalAmount,
		&o.ShippingMethod,
		&o.PromoApplied,
		&status,
		&o.CreatedAt,
	); err != nil {
		return Order{}, err
	}
	o.Status = Status(status)
	if len(details) > 0 {
		if err := json.Unmarshal(details, &o.ProductDetails); err != nil {
			return Order{}, fmt.Errorf("order: decode product details: %w", err)
		}
	}
	return o, nil
}
