package notification

import "context"

// Sender delivers customer-facing notifications. Implementations wrap the
// actual SMS/email providers; callers treat delivery as best-effort and only
// log failures, so a provider outage never blocks an order.
type Sender interface {
	OrderPlaced(ctx context.Context, phone, orderNumber string, total float64) error
	OrderStatusChanged(ctx context.Context, phone, orderNumber, status string) error
	SendOTP(ctx context.Context, phone, code string) error
}
