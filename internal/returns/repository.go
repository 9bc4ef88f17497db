package returns

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"chandra-dukan-be/internal/product"

	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

type Repository interface {
	Create(ctx context.Context, ret *Return) error
	GetByID(ctx context.Context, id string) (*Return, error)
	List(ctx context.Context, userID *int64, limit, page int32) ([]*Return, int64, error)
	// UpdateStatus validates the transition under a row lock. Entering
	// approved also restores the order's reserved stock, in the same
	// transaction.
	UpdateStatus(ctx context.Context, id string, to Status, note *string) (*Return, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const returnColumns = `id, order_id, user_id, reason, refund_amount, refund_method, proof_images, status, note, created_at, updated_at`

func scanReturn(row interface{ Scan(dest ...any) error }) (*Return, error) {
	var ret Return
	err := row.Scan(&ret.ID, &ret.OrderID, &ret.UserID, &ret.Reason,
		&ret.RefundAmount, &ret.RefundMethod, pq.Array(&ret.ProofImages),
		&ret.Status, &ret.Note, &ret.CreatedAt, &ret.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func (r *repository) Create(ctx context.Context, ret *Return) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO returns (id, order_id, user_id, reason, refund_amount, refund_method, proof_images, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`,
		ret.ID, ret.OrderID, ret.UserID, ret.Reason,
		ret.RefundAmount, ret.RefundMethod, pq.Array(ret.ProofImages), ret.Status,
	).Scan(&ret.CreatedAt, &ret.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return ErrReturnExists
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Return, error) {
	ret, err := scanReturn(r.db.QueryRowContext(ctx,
		`SELECT `+returnColumns+` FROM returns WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, ErrReturnNotFound
	}
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (r *repository) List(ctx context.Context, userID *int64, limit, page int32) ([]*Return, int64, error) {
	where := ""
	args := []any{}
	if userID != nil {
		where = " WHERE user_id = $1"
		args = append(args, *userID)
	}

	var total int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM returns"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := "SELECT " + returnColumns + " FROM returns" + where + " ORDER BY created_at DESC"
	if userID != nil {
		query += " LIMIT $2 OFFSET $3"
	} else {
		query += " LIMIT $1 OFFSET $2"
	}
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*Return
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, ret)
	}
	return result, total, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id string, to Status, note *string) (*Return, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current Status
	var orderID int64
	err = tx.QueryRowContext(ctx,
		`SELECT status, order_id FROM returns WHERE id = $1 FOR UPDATE`, id).
		Scan(&current, &orderID)
	if err == sql.ErrNoRows {
		return nil, ErrReturnNotFound
	}
	if err != nil {
		return nil, err
	}

	if !CanTransition(current, to) {
		return nil, ErrInvalidTransition
	}

	if to == StatusApproved {
		rows, err := tx.QueryContext(ctx,
			`SELECT product_id, quantity FROM order_items WHERE order_id = $1`, orderID)
		if err != nil {
			return nil, err
		}
		type restore struct {
			productID int64
			qty       int
		}
		var restores []restore
		for rows.Next() {
			var rst restore
			if err := rows.Scan(&rst.productID, &rst.qty); err != nil {
				rows.Close()
				return nil, err
			}
			restores = append(restores, rst)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()

		for _, rst := range restores {
			if err := product.IncrementStock(ctx, tx, rst.productID, rst.qty); err != nil {
				return nil, err
			}
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE returns SET status = $1, note = $2, updated_at = $3 WHERE id = $4`,
		to, note, time.Now(), id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}
