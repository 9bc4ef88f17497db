package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"chandra-dukan-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*Product, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, int64, error)
	Create(ctx context.Context, input CreateInput) (*Product, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*Product, error)
	Deactivate(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, id int64, delta int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, category_id, name, name_hi, description,
	price, unit, image_url, stock, sold, active,
	created_at, updated_at
`

func scanProduct(row interface{ Scan(dest ...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.NameHi, &p.Description,
		&p.Price, &p.Unit, &p.ImageURL, &p.Stock, &p.Sold, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*Product, error) {
	if len(ids) == 0 {
		return map[int64]*Product{}, nil
	}

	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id IN (`+strings.Join(placeholders, ", ")+`)`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64]*Product, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result[p.ID] = p
	}

	return result, rows.Err()
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	where := []string{}
	args := []any{}
	idx := 1

	if !opts.IncludeInactive {
		where = append(where, "active = TRUE")
	}
	if opts.CategoryID != nil {
		where = append(where, fmt.Sprintf("category_id = $%d", idx))
		args = append(args, *opts.CategoryID)
		idx++
	}
	if opts.Search != nil && *opts.Search != "" {
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR name_hi ILIKE $%d)", idx, idx))
		args = append(args, "%"+*opts.Search+"%")
		idx++
	}
	if opts.InStock {
		where = append(where, "stock > 0")
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM products"+whereClause, args...).Scan(&total)
	if err != nil {
		log.Error("failed to count products", zap.Error(err))
		return nil, 0, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(
		"SELECT %s FROM products%s ORDER BY name ASC LIMIT $%d OFFSET $%d",
		productColumns, whereClause, idx, idx+1,
	)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list products", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}

	return products, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, input CreateInput) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (category_id, name, name_hi, description, price, unit, image_url, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		input.CategoryID, input.Name, input.NameHi, input.Description,
		input.Price, input.Unit, input.ImageURL, input.Stock,
	)
	return scanProduct(row)
}

func (r *repository) Update(ctx context.Context, id int64, input UpdateInput) (*Product, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{}
	idx := 1

	addSet := func(col string, val any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if input.CategoryID != nil {
		addSet("category_id", *input.CategoryID)
	}
	if input.Name != nil {
		addSet("name", *input.Name)
	}
	if input.NameHi != nil {
		addSet("name_hi", *input.NameHi)
	}
	if input.Description != nil {
		addSet("description", *input.Description)
	}
	if input.Price != nil {
		addSet("price", *input.Price)
	}
	if input.Unit != nil {
		addSet("unit", *input.Unit)
	}
	if input.ImageURL != nil {
		addSet("image_url", *input.ImageURL)
	}
	if input.Stock != nil {
		addSet("stock", *input.Stock)
	}
	if input.Active != nil {
		addSet("active", *input.Active)
	}

	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), idx, productColumns,
	)
	args = append(args, id)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// AdjustStock applies a manual admin correction (restock or shrinkage).
// Unlike the ledger operations it leaves the sold counter alone, and the
// stock floor is still enforced in the WHERE clause.
func (r *repository) AdjustStock(ctx context.Context, id int64, delta int) error {
	if delta == 0 {
		return ErrInvalidQuantity
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2 AND stock + $1 >= 0
	`, delta, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInsufficientStock
	}
	return nil
}
