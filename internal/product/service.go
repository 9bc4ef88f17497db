package product

import (
	"context"
	"strings"

	"chandra-dukan-be/internal/logger"
	"chandra-dukan-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, int64, error)
	Create(ctx context.Context, input CreateInput) (*Product, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*Product, error)
	Deactivate(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, id int64, delta int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Active && !utils.IsAdmin(ctx) {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*Product, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)

	if opts.Limit <= 0 {
		opts.Limit = 20
	} else if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}

	// Only admins may see deactivated products.
	if opts.IncludeInactive && !utils.IsAdmin(ctx) {
		opts.IncludeInactive = false
	}

	products, total, err := s.repo.List(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list", zap.Error(err))
		return nil, 0, err
	}

	log.Info("product list fetched",
		zap.Int("count", len(products)),
		zap.Int64("total", total),
	)
	return products, total, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if input.Stock < 0 {
		return nil, ErrInvalidQuantity
	}
	if input.Unit == "" {
		input.Unit = "piece"
	}

	return s.repo.Create(ctx, input)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*Product, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, ErrInvalidQuantity
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *service) AdjustStock(ctx context.Context, id int64, delta int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdjustStock"),
		zap.Int64("product_id", id),
		zap.Int("delta", delta),
	)

	if err := s.repo.AdjustStock(ctx, id, delta); err != nil {
		log.Warn("stock adjustment rejected", zap.Error(err))
		return err
	}

	log.Info("stock adjusted")
	return nil
}
