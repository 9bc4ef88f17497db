package category

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type Repository interface {
	List(ctx context.Context, includeInactive bool) ([]*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	Create(ctx context.Context, input CreateInput) (*Category, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*Category, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const categoryColumns = `id, name, name_hi, image_url, sort_order, active, created_at, updated_at`

func scanCategory(row interface{ Scan(dest ...any) error }) (*Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.NameHi, &c.ImageURL,
		&c.SortOrder, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, includeInactive bool) ([]*Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if !includeInactive {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY sort_order, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, input CreateInput) (*Category, error) {
	return scanCategory(r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, name_hi, image_url, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		input.Name, input.NameHi, input.ImageURL, input.SortOrder,
	))
}

func (r *repository) Update(ctx context.Context, id int64, input UpdateInput) (*Category, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{}
	idx := 1

	addSet := func(col string, val any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if input.Name != nil {
		addSet("name", *input.Name)
	}
	if input.NameHi != nil {
		addSet("name_hi", *input.NameHi)
	}
	if input.ImageURL != nil {
		addSet("image_url", *input.ImageURL)
	}
	if input.SortOrder != nil {
		addSet("sort_order", *input.SortOrder)
	}
	if input.Active != nil {
		addSet("active", *input.Active)
	}

	query := fmt.Sprintf(
		"UPDATE categories SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), idx, categoryColumns,
	)
	args = append(args, id)

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
