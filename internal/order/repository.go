package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"chandra-dukan-be/internal/logger"
	"chandra-dukan-be/internal/product"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

type Repository interface {
	PlaceOrder(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	GetByNumber(ctx context.Context, number string) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, int64, error)
	UpdateStatus(ctx context.Context, orderID int64, to Status, note *string) (*Order, error)
	ConfirmPayment(ctx context.Context, orderID int64, note *string) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// PlaceOrder persists the order, its line items, the initial history entry
// and every stock decrement in a single transaction. Any failed decrement
// rolls the whole order back, so there are never partial reservations.
func (r *repository) PlaceOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Reserve stock for every line item.
	for i := range o.Items {
		item := &o.Items[i]
		if err := product.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("product %d (%s): %w", item.ProductID, item.Name, err)
		}
	}

	// 2. Assign the next daily order number.
	now := time.Now()
	var lastNumber string
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(order_number), '')
		FROM orders
		WHERE order_number LIKE $1
	`, DayPrefix(now)+"%").Scan(&lastNumber)
	if err != nil {
		return err
	}

	seq, err := NextSequence(lastNumber)
	if err != nil {
		return err
	}
	o.OrderNumber = FormatOrderNumber(now, seq)
	o.CreatedAt = now
	o.UpdatedAt = now

	// 3. Insert the order. A concurrent insert of the same number trips the
	// unique index; the caller retries the assignment exactly once.
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, user_id,
			subtotal, delivery_charge, discount, tax, total,
			payment_method, payment_status, status,
			customer_name, customer_phone, customer_address, customer_landmark, customer_pincode,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$16)
		RETURNING id
	`,
		o.OrderNumber, o.UserID,
		o.Pricing.Subtotal, o.Pricing.DeliveryCharge, o.Pricing.Discount, o.Pricing.Tax, o.Pricing.Total,
		o.PaymentMethod, o.PaymentStatus, o.Status,
		o.Customer.Name, o.Customer.Phone, o.Customer.Address, o.Customer.Landmark, o.Customer.Pincode,
		now,
	).Scan(&o.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return ErrOrderNumberConflict
		}
		return err
	}

	// 4. Insert line-item snapshots.
	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, price, quantity, subtotal, image_url)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING id
		`,
			o.ID, item.ProductID, item.Name, item.Price, item.Quantity, item.Subtotal, item.ImageURL,
		).Scan(&item.ID)
		if err != nil {
			return err
		}
	}

	// 5. Record the initial history entry.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_status_history (order_id, status, note, created_at)
		VALUES ($1, $2, $3, $4)
	`, o.ID, o.Status, nil, now)
	if err != nil {
		return err
	}
	o.StatusHistory = []StatusEntry{{Status: o.Status, Timestamp: now}}

	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	return r.getOrder(ctx, "o.id = $1", id)
}

func (r *repository) GetByNumber(ctx context.Context, number string) (*Order, error) {
	return r.getOrder(ctx, "o.order_number = $1", number)
}

const orderColumns = `
	o.id, o.order_number, o.user_id,
	o.subtotal, o.delivery_charge, o.discount, o.tax, o.total,
	o.payment_method, o.payment_status, o.status,
	o.customer_name, o.customer_phone, o.customer_address, o.customer_landmark, o.customer_pincode,
	o.delivery_date, o.cancellation_reason, o.created_at, o.updated_at
`

func scanOrder(row interface{ Scan(dest ...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID,
		&o.Pricing.Subtotal, &o.Pricing.DeliveryCharge, &o.Pricing.Discount, &o.Pricing.Tax, &o.Pricing.Total,
		&o.PaymentMethod, &o.PaymentStatus, &o.Status,
		&o.Customer.Name, &o.Customer.Phone, &o.Customer.Address, &o.Customer.Landmark, &o.Customer.Pincode,
		&o.DeliveryDate, &o.CancellationReason, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) getOrder(ctx context.Context, where string, arg any) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders o WHERE `+where, arg)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	if err := r.loadHistory(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) loadItems(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, name, price, quantity, subtotal, image_url
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.Name, &item.Price, &item.Quantity, &item.Subtotal, &item.ImageURL)
		if err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func (r *repository) loadHistory(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, note, created_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY id
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var entry StatusEntry
		if err := rows.Scan(&entry.Status, &entry.Note, &entry.Timestamp); err != nil {
			return err
		}
		o.StatusHistory = append(o.StatusHistory, entry)
	}
	return rows.Err()
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Order, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrders"),
	)

	where := []string{}
	args := []any{}
	idx := 1

	if filter.UserID != nil {
		where = append(where, fmt.Sprintf("o.user_id = $%d", idx))
		args = append(args, *filter.UserID)
		idx++
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("o.status = $%d", idx))
		args = append(args, *filter.Status)
		idx++
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("o.created_at >= $%d", idx))
		args = append(args, *filter.DateFrom)
		idx++
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("o.created_at <= $%d", idx))
		args = append(args, *filter.DateTo)
		idx++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders o"+whereClause, args...).Scan(&total)
	if err != nil {
		log.Error("failed to count orders", zap.Error(err))
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(
		"SELECT %s FROM orders o%s ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d",
		orderColumns, whereClause, idx, idx+1,
	)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list orders", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, o := range orders {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, 0, err
		}
	}

	return orders, total, nil
}

// UpdateStatus moves an order through the state machine inside one
// transaction: the current status is read under a row lock, the transition
// validated, side effects applied (delivery date + paid on delivered, stock
// restoration on cancelled) and the history entry appended, so the status
// column can never drift from the last history row.
func (r *repository) UpdateStatus(ctx context.Context, orderID int64, to Status, note *string) (*Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current Status
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&current)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if to == StatusCancelled && current.Terminal() {
		return nil, ErrOrderTerminal
	}
	if err := ValidateTransition(current, to); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := r.applyTransition(ctx, tx, orderID, to, note, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("from", string(current)),
		zap.String("to", string(to)),
	)

	return r.GetByID(ctx, orderID)
}

// applyTransition performs the status write, its side effects and the
// history append on the caller's transaction.
func (r *repository) applyTransition(ctx context.Context, tx *sql.Tx, orderID int64, to Status, note *string, now time.Time) error {
	set := []string{"status = $1", "updated_at = $2"}
	args := []any{to, now}
	idx := 3

	switch to {
	case StatusDelivered:
		// Delivery implies payment collected (cash on delivery included).
		set = append(set, fmt.Sprintf("delivery_date = $%d", idx), "payment_status = 'paid'")
		args = append(args, now)
		idx++
	case StatusCancelled:
		set = append(set, fmt.Sprintf("cancellation_reason = $%d", idx))
		args = append(args, note)
		idx++

		// Restore every reserved quantity, 1:1 with placement.
		rows, err := tx.QueryContext(ctx,
			`SELECT product_id, quantity FROM order_items WHERE order_id = $1`, orderID)
		if err != nil {
			return err
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
				return err
			}
			restores = append(restores, rst)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		for _, rst := range restores {
			if err := product.IncrementStock(ctx, tx, rst.productID, rst.qty); err != nil {
				return err
			}
		}
	}

	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = $%d", strings.Join(set, ", "), idx)
	args = append(args, orderID)
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO order_status_history (order_id, status, note, created_at)
		VALUES ($1, $2, $3, $4)
	`, orderID, to, note, now)
	return err
}

// ConfirmPayment marks the order paid and, when still pending, moves it to
// confirmed. Repeated gateway callbacks for an already-paid order are a
// no-op, not an error.
func (r *repository) ConfirmPayment(ctx context.Context, orderID int64, note *string) (*Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var status Status
	var paymentStatus PaymentStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status, payment_status FROM orders WHERE id = $1 FOR UPDATE`, orderID).
		Scan(&status, &paymentStatus)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if paymentStatus == PaymentStatusPaid {
		return r.GetByID(ctx, orderID)
	}

	now := time.Now()
	if status == StatusPending {
		if err := r.applyTransition(ctx, tx, orderID, StatusConfirmed, note, now); err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET payment_status = 'paid', updated_at = $1 WHERE id = $2`, now, orderID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, orderID)
}
