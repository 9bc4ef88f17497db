package user

import (
	"context"
	"errors"
	"strings"

	"chandra-dukan-be/internal/logger"
	"chandra-dukan-be/internal/notification"
	"chandra-dukan-be/internal/otp"
	"chandra-dukan-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	RequestOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, code string) (*AuthResult, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

type service struct {
	repo     Repository
	otpStore *otp.Store
	notifier notification.Sender
}

func NewService(repo Repository, otpStore *otp.Store, notifier notification.Sender) Service {
	return &service{repo: repo, otpStore: otpStore, notifier: notifier}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	phone := utils.NormalizePhone(input.Phone)
	if len(phone) != 10 {
		return nil, ErrInvalidPhone
	}
	if len(input.Password) < 6 {
		return nil, ErrWeakPassword
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:         strings.TrimSpace(input.Name),
		Phone:        phone,
		Email:        input.Email,
		PasswordHash: &hash,
		Role:         RoleUser,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		log.Warn("registration failed", zap.Error(err))
		return nil, err
	}

	token, err := GenerateJWT(u.ID, u.Phone, u.Role)
	if err != nil {
		return nil, err
	}

	log.Info("user registered", zap.Int64("user_id", u.ID))
	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	phone := utils.NormalizePhone(input.Phone)

	u, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if u.PasswordHash == nil || !CheckPasswordHash(input.Password, *u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Phone, u.Role)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: u}, nil
}

// RequestOTP issues a login code to a registered phone. Unknown phones get
// the same success response so the endpoint cannot be used to probe for
// registered numbers.
func (s *service) RequestOTP(ctx context.Context, phone string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RequestOTP"),
	)

	phone = utils.NormalizePhone(phone)
	if len(phone) != 10 {
		return ErrInvalidPhone
	}

	if _, err := s.repo.GetByPhone(ctx, phone); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("otp requested for unknown phone")
			return nil
		}
		return err
	}

	code, err := s.otpStore.Generate(phone)
	if err != nil {
		return err
	}

	if err := s.notifier.SendOTP(ctx, phone, code); err != nil {
		log.Warn("otp delivery failed", zap.Error(err))
	}

	log.Info("otp issued")
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, phone, code string) (*AuthResult, error) {
	phone = utils.NormalizePhone(phone)

	if !s.otpStore.Consume(phone, code) {
		return nil, ErrInvalidOTP
	}

	u, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	token, err := GenerateJWT(u.ID, u.Phone, u.Role)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
