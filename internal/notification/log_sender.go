package notification

import (
	"context"

	"chandra-dukan-be/internal/logger"

	"go.uber.org/zap"
)

// LogSender writes notifications to the application log. It stands in for
// the SMS/email providers in development and tests.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) OrderPlaced(ctx context.Context, phone, orderNumber string, total float64) error {
	logger.FromCtx(ctx).Info("notification: order placed",
		zap.String("phone", phone),
		zap.String("order_number", orderNumber),
		zap.Float64("total", total),
	)
	return nil
}

func (s *LogSender) OrderStatusChanged(ctx context.Context, phone, orderNumber, status string) error {
	logger.FromCtx(ctx).Info("notification: order status changed",
		zap.String("phone", phone),
		zap.String("order_number", orderNumber),
		zap.String("status", status),
	)
	return nil
}

func (s *LogSender) SendOTP(ctx context.Context, phone, code string) error {
	// The code itself stays out of the log.
	logger.FromCtx(ctx).Info("notification: otp sent",
		zap.String("phone", phone),
	)
	return nil
}
