package product

import (
	"context"
	"database/sql"
)

// Execer is satisfied by both *sql.DB and *sql.Tx so stock mutations can run
// standalone or inside a caller-owned transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// DecrementStock reserves qty units of a product: stock goes down, the sold
// counter goes up. The WHERE clause carries the stock precondition so a row
// is only touched when enough stock exists; zero rows affected means the
// reservation failed and nothing was persisted.
func DecrementStock(ctx context.Context, q Execer, productID int64, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	res, err := q.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1, sold = sold + $1, updated_at = NOW()
		WHERE id = $2 AND active = TRUE AND stock >= $1
	`, qty, productID)
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

// IncrementStock reverses a prior decrement 1:1 on cancellation or an
// approved return. No upper bound is enforced; quantities always mirror an
// earlier reservation.
func IncrementStock(ctx context.Context, q Execer, productID int64, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	res, err := q.ExecContext(ctx, `
		UPDATE products
		SET stock = stock + $1, sold = sold - $1, updated_at = NOW()
		WHERE id = $2
	`, qty, productID)
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
