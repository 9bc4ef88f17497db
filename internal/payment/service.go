package payment

import (
	"context"

	"chandra-dukan-be/internal/logger"
	"chandra-dukan-be/internal/order"
	"chandra-dukan-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	// VerifyAndConfirm validates the gateway signature and, only on success,
	// records the payment and marks the order paid/confirmed. A signature
	// mismatch changes nothing and is surfaced as an error.
	VerifyAndConfirm(ctx context.Context, input VerifyInput) (*order.Order, error)
}

type service struct {
	repo      Repository
	orderRepo order.Repository
	verifier  *Verifier
	provider  string
}

func NewService(repo Repository, orderRepo order.Repository, verifier *Verifier) Service {
	return &service{
		repo:      repo,
		orderRepo: orderRepo,
		verifier:  verifier,
		provider:  "razorpay",
	}
}

func (s *service) VerifyAndConfirm(ctx context.Context, input VerifyInput) (*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "VerifyAndConfirm"),
		zap.Int64("order_id", input.OrderID),
		zap.String("gateway_order_id", input.GatewayOrderID),
	)

	if input.GatewayOrderID == "" || input.GatewayPaymentID == "" || input.Signature == "" {
		return nil, ErrMissingField
	}

	if !s.verifier.Verify(input.GatewayOrderID, input.GatewayPaymentID, input.Signature) {
		log.Warn("signature mismatch")
		return nil, ErrSignatureMismatch
	}

	existing, err := s.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	userID, _ := utils.GetUserIDFromContext(ctx)
	if !utils.IsAdmin(ctx) && existing.UserID != userID {
		return nil, order.ErrForbidden
	}

	note := "payment verified via " + s.provider
	o, err := s.orderRepo.ConfirmPayment(ctx, input.OrderID, &note)
	if err != nil {
		return nil, err
	}

	p := &Payment{
		OrderID:          o.ID,
		Provider:         s.provider,
		GatewayOrderID:   input.GatewayOrderID,
		GatewayPaymentID: input.GatewayPaymentID,
		Amount:           o.Pricing.Total,
		Status:           "captured",
	}
	if err := s.repo.SavePayment(ctx, p); err != nil {
		// The order is already confirmed; a failed audit row is logged, not
		// surfaced to the customer.
		log.Error("failed to save payment record", zap.Error(err))
	}

	log.Info("payment verified", zap.String("order_number", o.OrderNumber))
	return o, nil
}
