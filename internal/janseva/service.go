package janseva

import (
	"context"
	"strings"

	"chandra-dukan-be/internal/logger"
	"chandra-dukan-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	ListServices(ctx context.Context) ([]*ServiceInfo, error)
	Apply(ctx context.Context, userID int64, input ApplyInput) (*Application, error)
	ListApplications(ctx context.Context, limit, page int32) ([]*Application, int64, error)
	UpdateStatus(ctx context.Context, id string, to ApplicationStatus, note *string) (*Application, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListServices(ctx context.Context) ([]*ServiceInfo, error) {
	return s.repo.ListServices(ctx, utils.IsAdmin(ctx))
}

func (s *service) Apply(ctx context.Context, userID int64, input ApplyInput) (*Application, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ApplyJanSeva"),
		zap.Int64("service_id", input.ServiceID),
	)

	if strings.TrimSpace(input.ApplicantName) == "" {
		return nil, ErrApplicantIncomplete
	}
	phone := utils.NormalizePhone(input.ApplicantPhone)
	if len(phone) != 10 {
		return nil, ErrApplicantIncomplete
	}

	svc, err := s.repo.GetService(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, ErrServiceNotFound
	}

	app := &Application{
		ID:             uuid.New(),
		ServiceID:      svc.ID,
		UserID:         userID,
		ApplicantName:  strings.TrimSpace(input.ApplicantName),
		ApplicantPhone: phone,
		Details:        input.Details,
		Status:         StatusSubmitted,
	}

	if err := s.repo.CreateApplication(ctx, app); err != nil {
		log.Error("failed to create application", zap.Error(err))
		return nil, err
	}

	log.Info("application submitted", zap.String("application_id", app.ID.String()))
	return app, nil
}

func (s *service) ListApplications(ctx context.Context, limit, page int32) ([]*Application, int64, error) {
	var userID *int64
	if !utils.IsAdmin(ctx) {
		id, ok := utils.GetUserIDFromContext(ctx)
		if !ok {
			return nil, 0, ErrForbidden
		}
		userID = &id
	}
	return s.repo.ListApplications(ctx, userID, limit, page)
}

func (s *service) UpdateStatus(ctx context.Context, id string, to ApplicationStatus, note *string) (*Application, error) {
	return s.repo.UpdateApplicationStatus(ctx, id, to, note)
}
