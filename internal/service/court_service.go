package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/courtbooking/internal/model"
	"go.uber.org/zap"
)

type CourtService struct {
	courtRepo CourtRepository
	logger    *zap.Logger
}

func NewCourtService(courtRepo CourtRepository, logger *zap.Logger) *CourtService {
	return &CourtService{
		courtRepo: courtRepo,
		logger:    logger,
	}
}

// CourtInput данные корта при создании и изменении
type CourtInput struct {
	Name            string
	HourlyRateCents int64
	Availability    model.Availability
}

func (in CourtInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalidRequest("court name is required")
	}
	if in.HourlyRateCents < 0 {
		return invalidRequest("hourly rate must not be negative")
	}
	if err := in.Availability.Validate(); err != nil {
		return invalidRequest(err.Error())
	}
	return nil
}

// CreateCourt создаёт корт вместе с шаблоном доступности
func (s *CourtService) CreateCourt(ctx context.Context, in CourtInput, actor model.Actor) (*model.Court, error) {
	if !actor.CanManage {
		return nil, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	court := &model.Court{
		Name:            strings.TrimSpace(in.Name),
		HourlyRateCents: in.HourlyRateCents,
		Availability:    in.Availability,
	}
	if court.Availability == nil {
		court.Availability = model.Availability{}
	}

	if err := s.courtRepo.Create(ctx, court); err != nil {
		s.logger.Error("Failed to create court",
			zap.String("name", court.Name),
			zap.Error(err))
		return nil, fmt.Errorf("create court: %w", err)
	}

	s.logger.Info("Court created",
		zap.Int64("court_id", court.ID),
		zap.String("name", court.Name),
		zap.Int64("hourly_rate_cents", court.HourlyRateCents))

	return court, nil
}

// UpdateCourt меняет название, ставку и шаблон доступности.
// Уже принятые бронирования не пересматриваются.
func (s *CourtService) UpdateCourt(ctx context.Context, courtID int64, in CourtInput, actor model.Actor) (*model.Court, error) {
	if !actor.CanManage {
		return nil, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	court, err := s.GetCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	court.Name = strings.TrimSpace(in.Name)
	court.HourlyRateCents = in.HourlyRateCents
	if in.Availability != nil {
		court.Availability = in.Availability
	}

	if err := s.courtRepo.Update(ctx, court); err != nil {
		return nil, fmt.Errorf("update court: %w", err)
	}

	s.logger.Info("Court updated", zap.Int64("court_id", court.ID))
	return court, nil
}

// SetAvailability заменяет недельный шаблон корта целиком
func (s *CourtService) SetAvailability(ctx context.Context, courtID int64, availability model.Availability, actor model.Actor) (*model.Court, error) {
	if !actor.CanManage {
		return nil, ErrForbidden
	}
	if err := availability.Validate(); err != nil {
		return nil, invalidRequest(err.Error())
	}

	court, err := s.GetCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	if availability == nil {
		availability = model.Availability{}
	}
	court.Availability = availability

	if err := s.courtRepo.Update(ctx, court); err != nil {
		return nil, fmt.Errorf("update court availability: %w", err)
	}

	s.logger.Info("Court availability set",
		zap.Int64("court_id", court.ID),
		zap.Int("weekdays", len(availability)))

	return court, nil
}

func (s *CourtService) GetCourt(ctx context.Context, courtID int64) (*model.Court, error) {
	court, err := s.courtRepo.GetByID(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("get court: %w", err)
	}
	if court == nil {
		return nil, notFound("court", courtID)
	}
	return court, nil
}

func (s *CourtService) ListCourts(ctx context.Context) ([]*model.Court, error) {
	courts, err := s.courtRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	return courts, nil
}

// DeleteCourt удаляет корт. Бронирования корта остаются как есть.
func (s *CourtService) DeleteCourt(ctx context.Context, courtID int64, actor model.Actor) error {
	if !actor.CanManage {
		return ErrForbidden
	}
	if _, err := s.GetCourt(ctx, courtID); err != nil {
		return err
	}

	if err := s.courtRepo.Delete(ctx, courtID); err != nil {
		return fmt.Errorf("delete court: %w", err)
	}

	s.logger.Info("Court deleted", zap.Int64("court_id", courtID))
	return nil
}
