package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"heala/internal/domain"
	"heala/internal/repository"
	"heala/pkg/validator"
)

type EventServiceImpl struct {
	repo             repository.EventRepository
	practitionerRepo repository.PractitionerRepository
	logger           *zap.Logger
}

func NewEventService(
	repo repository.EventRepository,
	practitionerRepo repository.PractitionerRepository,
	logger *zap.Logger,
) *EventServiceImpl {
	return &EventServiceImpl{
		repo:             repo,
		practitionerRepo: practitionerRepo,
		logger:           logger,
	}
}

func (s *EventServiceImpl) Create(ctx context.Context, actor domain.Actor, dto domain.CreateEventDTO) (string, error) {
	if actor.Role != domain.UserRolePractitioner && actor.Role != domain.UserRoleAdmin {
		return "", fmt.Errorf("creating events: %w", domain.ErrForbidden)
	}

	eventDate, err := validator.ParseDate(dto.EventDate)
	if err != nil {
		return "", fmt.Errorf("event_date: %w", domain.ErrValidation)
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

	id, err := s.repo.Create(ctx, actor.ID, domain.Event{
		Title:        validator.SanitizeString(dto.Title),
		Description:  validator.SanitizeString(dto.Description),
		EventDate:    eventDate,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		LocationName: dto.LocationName,
		ImageURL:     dto.ImageURL,
		Price:        dto.Price,
		MaxAttendees: dto.MaxAttendees,
	})
	if err != nil {
		s.logger.Error("creating event", zap.String("organizerId", actor.ID), zap.Error(err))
		return "", err
	}

	return id, nil
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EventServiceImpl) Update(ctx context.Context, actor domain.Actor, id string, dto domain.UpdateEventDTO) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.OrganizerID != actor.ID && actor.Role != domain.UserRoleAdmin {
		return fmt.Errorf("updating event %s: %w", id, domain.ErrForbidden)
	}

	if dto.EventDate != nil {
		if _, err := validator.ParseDate(*dto.EventDate); err != nil {
			return fmt.Errorf("event_date: %w", domain.ErrValidation)
		}
	}
	if dto.StartTime != nil {
		if _, err := validator.ParseTimeOfDay(*dto.StartTime); err != nil {
			return fmt.Errorf("start_time: %w", domain.ErrValidation)
		}
	}
	if dto.EndTime != nil {
		if _, err := validator.ParseTimeOfDay(*dto.EndTime); err != nil {
			return fmt.Errorf("end_time: %w", domain.ErrValidation)
		}
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("updating event", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, actor domain.Actor, id string) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.OrganizerID != actor.ID && actor.Role != domain.UserRoleAdmin {
		return fmt.Errorf("deleting event %s: %w", id, domain.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("deleting event", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *EventServiceImpl) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	events, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("listing events", zap.Error(err))
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("counting events", zap.Error(err))
		return nil, 0, err
	}

	return events, total, nil
}

func (s *EventServiceImpl) Register(ctx context.Context, actor domain.Actor, eventID string) (string, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return "", err
	}

	if _, err := s.repo.GetRegistration(ctx, eventID, actor.ID); err == nil {
		return "", fmt.Errorf("registration for event %s: %w", eventID, domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	if event.MaxAttendees != nil {
		count, err := s.repo.CountRegistrations(ctx, eventID)
		if err != nil {
			return "", err
		}
		if count >= *event.MaxAttendees {
			return "", fmt.Errorf("event %s is full: %w", eventID, domain.ErrValidation)
		}
	}

	id, err := s.repo.CreateRegistration(ctx, domain.EventRegistration{
		EventID: eventID,
		UserID:  actor.ID,
	})
	if err != nil {
		s.logger.Error("registering for event", zap.String("eventId", eventID), zap.Error(err))
		return "", err
	}

	return id, nil
}

func (s *EventServiceImpl) ListRegistrations(ctx context.Context, actor domain.Actor, eventID string) ([]domain.EventRegistration, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != actor.ID && actor.Role != domain.UserRoleAdmin {
		return nil, fmt.Errorf("listing registrations for event %s: %w", eventID, domain.ErrForbidden)
	}

	return s.repo.ListRegistrations(ctx, eventID)
}
