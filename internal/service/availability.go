package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"heala/internal/domain"
	"heala/internal/repository"
	"heala/pkg/validator"
)

type AvailabilityServiceImpl struct {
	repo             repository.AvailabilityRepository
	practitionerRepo repository.PractitionerRepository
	logger           *zap.Logger
}

func NewAvailabilityService(
	repo repository.AvailabilityRepository,
	practitionerRepo repository.PractitionerRepository,
	logger *zap.Logger,
) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		repo:             repo,
		practitionerRepo: practitionerRepo,
		logger:           logger,
	}
}

func (s *AvailabilityServiceImpl) Add(ctx context.Context, actor domain.Actor, dto domain.CreateAvailabilityDTO) (string, error) {
	practitioner, err := s.practitionerRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		return "", err
	}

	if dto.DayOfWeek < 0 || dto.DayOfWeek > 6 {
		return "", fmt.Errorf("day_of_week: %w", domain.ErrValidation)
	}
	if _, err := validator.ParseTimeOfDay(dto.StartTime); err != nil {
		return "", fmt.Errorf("start_time: %w", domain.ErrValidation)
	}
	if _, err := validator.ParseTimeOfDay(dto.EndTime); err != nil {
		return "", fmt.Errorf("end_time: %w", domain.ErrValidation)
	}
	if !validator.TimeOfDayBefore(dto.StartTime, dto.EndTime) {
		return "", fmt.Errorf("start_time must be before end_time: %w", domain.ErrValidation)
	}

	id, err := s.repo.Create(ctx, domain.Availability{
		PractitionerID: practitioner.ID,
		DayOfWeek:      dto.DayOfWeek,
		StartTime:      dto.StartTime,
		EndTime:        dto.EndTime,
	})
	if err != nil {
		s.logger.Error("creating availability", zap.String("practitionerId", practitioner.ID), zap.Error(err))
		return "", err
	}

	return id, nil
}

func (s *AvailabilityServiceImpl) ListByPractitioner(ctx context.Context, practitionerID string) ([]domain.Availability, error) {
	return s.repo.ListByPractitioner(ctx, practitionerID)
}

func (s *AvailabilityServiceImpl) Delete(ctx context.Context, actor domain.Actor, id string) error {
	window, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	practitioner, err := s.practitionerRepo.GetByID(ctx, window.PractitionerID)
	if err != nil {
		return err
	}
	if practitioner.UserID != actor.ID {
		return fmt.Errorf("deleting availability %s: %w", id, domain.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("deleting availability", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}
