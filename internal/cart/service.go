package cart

import (
	"context"
	"fmt"

	"chandra-dukan-be/internal/logger"
	"chandra-dukan-be/internal/order"
	"chandra-dukan-be/internal/product"

	"go.uber.org/zap"
)

type Service interface {
	Get(ctx context.Context, userID int64) (*Summary, error)
	SetItem(ctx context.Context, userID, productID int64, quantity int) (*Summary, error)
	RemoveItem(ctx context.Context, userID, productID int64) (*Summary, error)
	Clear(ctx context.Context, userID int64) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
	pricing     order.PricingRules
}

func NewService(repo Repository, productRepo product.Repository, pricing order.PricingRules) Service {
	return &service{repo: repo, productRepo: productRepo, pricing: pricing}
}

func (s *service) Get(ctx context.Context, userID int64) (*Summary, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(items), nil
}

// SetItem adds the product or updates its quantity in place.
func (s *service) SetItem(ctx context.Context, userID, productID int64, quantity int) (*Summary, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetCartItem"),
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
	)

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, product.ErrProductInactive
	}
	if p.Stock < quantity {
		return nil, fmt.Errorf("product %s: %w", p.Name, product.ErrInsufficientStock)
	}

	if err := s.repo.Upsert(ctx, userID, productID, quantity); err != nil {
		log.Error("failed to update cart", zap.Error(err))
		return nil, err
	}

	return s.Get(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID int64) (*Summary, error) {
	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID int64) error {
	return s.repo.Clear(ctx, userID)
}

func (s *service) summarize(items []*CartItem) *Summary {
	summary := &Summary{Items: items}
	if items == nil {
		summary.Items = []*CartItem{}
	}

	for _, item := range items {
		if item.Product != nil {
			summary.Subtotal += item.Product.Price * float64(item.Quantity)
		}
	}

	if summary.Subtotal > 0 && summary.Subtotal < s.pricing.FreeDeliveryThreshold {
		summary.DeliveryCharge = s.pricing.DeliveryCharge
	}
	summary.Total = summary.Subtotal + summary.DeliveryCharge

	return summary
}
