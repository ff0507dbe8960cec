package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by the given pool.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const productColumns = `id, name, price, description, category, images, sizes, tags, is_new, is_limited, sold_out, created_at`

func (r *postgresRepo) ListProducts(ctx context.Context, params ListParams) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var (
		clauses []string
		args    []any
	)
	if category := strings.TrimSpace(params.Category); category != "" {
		args = append(args, strings.ToUpper(category))
		clauses = append(clauses, fmt.Sprintf("upper(category) = $%d", len(args)))
	}
	if tag := strings.TrimSpace(params.Tag); tag != "" {
		args = append(args, tag)
		clauses = append(clauses, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) GetProduct(ctx context.Context, id string) (Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *postgresRepo) ListDrops(ctx context.Context) ([]Drop, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, image, status, drops_at, products FROM drops ORDER BY drops_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list drops: %w", err)
	}
	defer rows.Close()

	var drops []Drop
	for rows.Next() {
		var d Drop
		if err := rows.Scan(&d.ID, &d.Title, &d.Image, &d.Status, &d.DropsAt, &d.Products); err != nil {
			return nil, fmt.Errorf("list drops: %w", err)
		}
		drops = append(drops, d)
	}
	return drops, rows.Err()
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Description, &p.Category,
		&p.Images, &p.Sizes, &p.Tags, &p.IsNew, &p.IsLimited, &p.SoldOut, &p.CreatedAt,
	)
	return p, err
}
