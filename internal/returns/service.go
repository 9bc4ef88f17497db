package returns

import (
	"context"
	"fmt"
	"strings"

	"chandra-dukan-be/internal/logger"
	"chandra-dukan-be/internal/order"
	"chandra-dukan-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Request(ctx context.Context, userID int64, input CreateInput) (*Return, error)
	List(ctx context.Context, limit, page int32) ([]*Return, int64, error)
	UpdateStatus(ctx context.Context, id string, to Status, note *string) (*Return, error)
}

type service struct {
	repo      Repository
	orderRepo order.Repository
}

func NewService(repo Repository, orderRepo order.Repository) Service {
	return &service{repo: repo, orderRepo: orderRepo}
}

// Request opens a return for a delivered order. The refund amount is pinned
// to the order total at request time.
func (s *service) Request(ctx context.Context, userID int64, input CreateInput) (*Return, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RequestReturn"),
		zap.Int64("order_id", input.OrderID),
	)

	if strings.TrimSpace(input.Reason) == "" {
		return nil, ErrReasonRequired
	}

	o, err := s.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrForbidden
	}
	if o.Status != order.StatusDelivered {
		return nil, ErrOrderNotDelivered
	}

	refundMethod := input.RefundMethod
	if refundMethod == "" {
		refundMethod = "original"
	}

	ret := &Return{
		ID:           uuid.New(),
		OrderID:      o.ID,
		UserID:       userID,
		Reason:       strings.TrimSpace(input.Reason),
		RefundAmount: o.Pricing.Total,
		RefundMethod: refundMethod,
		ProofImages:  input.ProofImages,
		Status:       StatusRequested,
	}

	if err := s.repo.Create(ctx, ret); err != nil {
		log.Warn("return request rejected", zap.Error(err))
		return nil, err
	}

	log.Info("return requested", zap.String("return_id", ret.ID.String()))
	return ret, nil
}

// List scopes non-admin callers to their own returns.
func (s *service) List(ctx context.Context, limit, page int32) ([]*Return, int64, error) {
	var userID *int64
	if !utils.IsAdmin(ctx) {
		id, ok := utils.GetUserIDFromContext(ctx)
		if !ok {
			return nil, 0, ErrForbidden
		}
		userID = &id
	}
	return s.repo.List(ctx, userID, limit, page)
}

// UpdateStatus drives the return lifecycle (admin only, enforced at the
// route). Completing a return also flips the order to returned.
func (s *service) UpdateStatus(ctx context.Context, id string, to Status, note *string) (*Return, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateReturnStatus"),
		zap.String("return_id", id),
		zap.String("to", string(to)),
	)

	ret, err := s.repo.UpdateStatus(ctx, id, to, note)
	if err != nil {
		log.Warn("return transition rejected", zap.Error(err))
		return nil, err
	}

	if to == StatusCompleted {
		// The return row is already committed at this point; a failed order
		// flip must reach the admin so it can be retried via the order
		// status endpoint.
		if _, err := s.orderRepo.UpdateStatus(ctx, ret.OrderID, order.StatusReturned, note); err != nil {
			log.Error("failed to mark order returned", zap.Error(err))
			return nil, fmt.Errorf("return completed but order not marked returned: %w", err)
		}
	}

	log.Info("return status updated")
	return ret, nil
}
