package payment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

type Repository interface {
	SavePayment(ctx context.Context, p *Payment) error
	GetByOrder(ctx context.Context, orderID int64) (*Payment, error)
	// SaveWebhookEvent records a gateway callback for audit. The boolean is
	// true when the event id was seen before, so retried callbacks can be
	// acknowledged without reprocessing.
	SaveWebhookEvent(ctx context.Context, provider, eventID string, payload []byte, signatureValid bool) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SavePayment(ctx context.Context, p *Payment) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO payments (order_id, provider, gateway_order_id, gateway_payment_id, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`,
		p.OrderID, p.Provider, p.GatewayOrderID, p.GatewayPaymentID, p.Amount, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *repository) GetByOrder(ctx context.Context, orderID int64) (*Payment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, provider, gateway_order_id, gateway_payment_id, amount, status, created_at
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, orderID)

	var p Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.Provider, &p.GatewayOrderID,
		&p.GatewayPaymentID, &p.Amount, &p.Status, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) SaveWebhookEvent(ctx context.Context, provider, eventID string, payload []byte, signatureValid bool) (bool, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payment_webhooks (provider, event_id, payload, signature_valid)
		VALUES ($1, $2, $3, $4)
	`, provider, eventID, payload, signatureValid)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
