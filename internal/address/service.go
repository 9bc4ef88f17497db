package address

import (
	"context"
	"strings"

	"chandra-dukan-be/internal/logger"
	"chandra-dukan-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, userID int64) ([]*Address, error)
	Create(ctx context.Context, userID int64, input CreateAddressInput) (*Address, error)
	SetDefault(ctx context.Context, userID int64, addressID string) error
	Delete(ctx context.Context, userID int64, addressID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID int64) ([]*Address, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func (s *service) Create(ctx context.Context, userID int64, input CreateAddressInput) (*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateAddress"),
		zap.Int64("user_id", userID),
	)

	name := strings.TrimSpace(input.Name)
	line := strings.TrimSpace(input.AddressLine)
	phone := utils.NormalizePhone(input.Phone)

	if name == "" || line == "" || len(phone) != 10 {
		return nil, ErrAddressIncomplete
	}
	if len(input.Pincode) != 6 || !isDigits(input.Pincode) {
		return nil, ErrInvalidPincode
	}

	addr := &Address{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Phone:       phone,
		AddressLine: line,
		Landmark:    input.Landmark,
		City:        strings.TrimSpace(input.City),
		Pincode:     input.Pincode,
		IsDefault:   input.SetAsDefault,
		IsActive:    true,
	}

	if input.SetAsDefault {
		if err := s.repo.ClearDefault(ctx, userID); err != nil {
			log.Error("failed to clear default address", zap.Error(err))
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, addr); err != nil {
		log.Error("failed to create address", zap.Error(err))
		return nil, err
	}

	return addr, nil
}

func (s *service) SetDefault(ctx context.Context, userID int64, addressID string) error {
	id, err := uuid.Parse(addressID)
	if err != nil {
		return ErrAddressNotFound
	}

	addr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if addr.UserID != userID {
		return ErrForbidden
	}

	if err := s.repo.ClearDefault(ctx, userID); err != nil {
		return err
	}
	return s.repo.SetDefault(ctx, userID, id)
}

func (s *service) Delete(ctx context.Context, userID int64, addressID string) error {
	id, err := uuid.Parse(addressID)
	if err != nil {
		return ErrAddressNotFound
	}

	addr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if addr.UserID != userID {
		return ErrForbidden
	}

	return s.repo.Deactivate(ctx, id)
}
