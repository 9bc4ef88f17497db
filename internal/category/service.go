package category

import (
	"context"
	"strings"

	"chandra-dukan-be/internal/logger"
	"chandra-dukan-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Category, error)
	Create(ctx context.Context, input CreateInput) (*Category, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListCategories"),
	)

	categories, err := s.repo.List(ctx, utils.IsAdmin(ctx))
	if err != nil {
		log.Error("failed to list categories", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	return s.repo.Create(ctx, input)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*Category, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrNameRequired
	}
	return s.repo.Update(ctx, id, input)
}
