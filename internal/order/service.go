package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chandra-dukan-be/internal/logger"
	"chandra-dukan-be/internal/notification"
	"chandra-dukan-be/internal/product"
	"chandra-dukan-be/internal/utils"

	"go.uber.org/zap"
)

// PricingRules holds the delivery-charge business rules.
type PricingRules struct {
	FreeDeliveryThreshold float64
	DeliveryCharge        float64
}

type Service interface {
	PlaceOrder(ctx context.Context, userID int64, input PlaceOrderInput) (*Order, error)
	GetOrder(ctx context.Context, orderID int64) (*Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, int64, error)
	UpdateStatus(ctx context.Context, orderID int64, to Status, note *string) (*Order, error)
	CancelOrder(ctx context.Context, orderID int64, reason string) (*Order, error)
	Track(ctx context.Context, orderNumber string) (*TrackingInfo, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
	notifier    notification.Sender
	pricing     PricingRules
}

func NewService(repo Repository, productRepo product.Repository, notifier notification.Sender, pricing PricingRules) Service {
	return &service{
		repo:        repo,
		productRepo: productRepo,
		notifier:    notifier,
		pricing:     pricing,
	}
}

// PlaceOrder runs the placement workflow: validate the cart against live
// products, snapshot line items, price the order server-side and persist it
// with all stock decrements in one transaction.
func (s *service) PlaceOrder(ctx context.Context, userID int64, input PlaceOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Int64("user_id", userID),
		zap.Int("item_count", len(input.Items)),
	)

	if err := validatePlaceOrderInput(input); err != nil {
		log.Warn("order rejected", zap.Error(err))
		return nil, err
	}

	// 1. Load every referenced product in one round trip.
	ids := make([]int64, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		log.Error("failed to load products", zap.Error(err))
		return nil, err
	}

	// 2. Validate availability and snapshot line items.
	items := make([]OrderItem, 0, len(input.Items))
	var subtotal float64

	for _, reqItem := range input.Items {
		p, ok := products[reqItem.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %d: %w", reqItem.ProductID, product.ErrProductNotFound)
		}
		if !p.Active {
			return nil, fmt.Errorf("product %s: %w", p.Name, product.ErrProductInactive)
		}
		// Early stock check for a clean error; the transaction's conditional
		// decrement is what actually enforces the precondition under races.
		if p.Stock < reqItem.Quantity {
			return nil, fmt.Errorf("product %s: %w", p.Name, product.ErrInsufficientStock)
		}

		itemSubtotal := p.Price * float64(reqItem.Quantity)
		subtotal += itemSubtotal

		items = append(items, OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  reqItem.Quantity,
			Subtotal:  itemSubtotal,
			ImageURL:  p.ImageURL,
		})
	}

	// 3. Price the order. Discount and tax are zero at creation.
	deliveryCharge := s.pricing.DeliveryCharge
	if subtotal >= s.pricing.FreeDeliveryThreshold {
		deliveryCharge = 0
	}
	pricing := Pricing{
		Subtotal:       subtotal,
		DeliveryCharge: deliveryCharge,
		Total:          subtotal + deliveryCharge,
	}

	o := &Order{
		UserID:        userID,
		Items:         items,
		Pricing:       pricing,
		PaymentMethod: input.PaymentMethod,
		// Prepaid methods also start pending; a separate verification step
		// confirms the payment.
		PaymentStatus: PaymentStatusPending,
		Status:        StatusPending,
		Customer:      input.Customer,
	}

	// 4. Persist. A duplicate order number from a concurrent placement gets
	// exactly one retry with a freshly assigned sequence.
	if err := s.repo.PlaceOrder(ctx, o); err != nil {
		if errors.Is(err, ErrOrderNumberConflict) {
			log.Warn("order number conflict, retrying once")
			o.StatusHistory = nil
			err = s.repo.PlaceOrder(ctx, o)
		}
		if err != nil {
			log.Error("failed to place order", zap.Error(err))
			return nil, err
		}
	}

	log.Info("order placed",
		zap.String("order_number", o.OrderNumber),
		zap.Float64("total", o.Pricing.Total),
	)

	if err := s.notifier.OrderPlaced(ctx, o.Customer.Phone, o.OrderNumber, o.Pricing.Total); err != nil {
		log.Warn("order placed notification failed", zap.Error(err))
	}

	return o, nil
}

func validatePlaceOrderInput(input PlaceOrderInput) error {
	if len(input.Items) == 0 {
		return ErrEmptyOrder
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return product.ErrInvalidQuantity
		}
	}
	if !input.PaymentMethod.Valid() {
		return ErrInvalidPayment
	}
	if strings.TrimSpace(input.Customer.Name) == "" ||
		strings.TrimSpace(input.Customer.Phone) == "" ||
		strings.TrimSpace(input.Customer.Address) == "" {
		return ErrCustomerIncomplete
	}
	return nil
}

// GetOrder returns the order when the caller owns it or is an admin.
func (s *service) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	userID, _ := utils.GetUserIDFromContext(ctx)
	if !utils.IsAdmin(ctx) && o.UserID != userID {
		return nil, ErrForbidden
	}

	return o, nil
}

// ListOrders scopes non-admin callers to their own orders.
func (s *service) ListOrders(ctx context.Context, filter ListFilter) ([]*Order, int64, error) {
	if !utils.IsAdmin(ctx) {
		userID, ok := utils.GetUserIDFromContext(ctx)
		if !ok {
			return nil, 0, ErrForbidden
		}
		filter.UserID = &userID
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	} else if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	return s.repo.List(ctx, filter)
}

// UpdateStatus drives the state machine for admin transitions.
func (s *service) UpdateStatus(ctx context.Context, orderID int64, to Status, note *string) (*Order, error) {
	o, err := s.repo.UpdateStatus(ctx, orderID, to, note)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.OrderStatusChanged(ctx, o.Customer.Phone, o.OrderNumber, string(o.Status)); err != nil {
		logger.FromCtx(ctx).Warn("status notification failed", zap.Error(err))
	}

	return o, nil
}

// CancelOrder cancels a non-terminal order, recording the reason and
// restoring reserved stock. Owners may cancel their own orders; admins any.
func (s *service) CancelOrder(ctx context.Context, orderID int64, reason string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CancelOrder"),
		zap.Int64("order_id", orderID),
	)

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	existing, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	userID, _ := utils.GetUserIDFromContext(ctx)
	if !utils.IsAdmin(ctx) && existing.UserID != userID {
		return nil, ErrForbidden
	}

	o, err := s.repo.UpdateStatus(ctx, orderID, StatusCancelled, &reason)
	if err != nil {
		log.Warn("cancellation rejected", zap.Error(err))
		return nil, err
	}

	log.Info("order cancelled", zap.String("order_number", o.OrderNumber))

	if err := s.notifier.OrderStatusChanged(ctx, o.Customer.Phone, o.OrderNumber, string(o.Status)); err != nil {
		log.Warn("cancellation notification failed", zap.Error(err))
	}

	return o, nil
}

// Track is the public tracking view, keyed by order number.
func (s *service) Track(ctx context.Context, orderNumber string) (*TrackingInfo, error) {
	o, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	return &TrackingInfo{
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		StatusHistory: o.StatusHistory,
		Items:         o.Items,
		Total:         o.Pricing.Total,
		DeliveryDate:  o.DeliveryDate,
	}, nil
}
