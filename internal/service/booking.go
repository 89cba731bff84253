package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"heala/internal/domain"
	"heala/internal/repository"
	"heala/pkg/validator"
)

type BookingServiceImpl struct {
	bookingRepo      repository.BookingRepository
	practitionerRepo repository.PractitionerRepository
	logger           *zap.Logger

	// now is swappable so date-sensitive rules stay testable.
	now func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	practitionerRepo repository.PractitionerRepository,
	logger *zap.Logger,
) *BookingServiceImpl {
	return &BookingServiceImpl{
		bookingRepo:      bookingRepo,
		practitionerRepo: practitionerRepo,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *BookingServiceImpl) Create(ctx context.Context, actor domain.Actor, dto domain.CreateBookingDTO) (string, error) {
	if actor.Role != domain.UserRoleClient {
		return "", fmt.Errorf("only clients may create bookings: %w", domain.ErrForbidden)
	}

	bookingDate, err := validator.ParseDate(dto.BookingDate)
	if err != nil {
		return "", fmt.Errorf("booking_date: %w", domain.ErrValidation)
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
	if bookingDate.Before(validator.DateOnly(s.now())) {
		return "", fmt.Errorf("booking_date is in the past: %w", domain.ErrValidation)
	}

	practitioner, err := s.practitionerRepo.GetByID(ctx, dto.PractitionerID)
	if err != nil {
		return "", err
	}
	if !domain.IsBookable(practitioner) {
		return "", fmt.Errorf("practitioner %s: %w", dto.PractitionerID, domain.ErrPractitionerNotBookable)
	}

	id, err := s.bookingRepo.Create(ctx, domain.Booking{
		ClientID:       actor.ID,
		PractitionerID: dto.PractitionerID,
		BookingDate:    bookingDate,
		StartTime:      dto.StartTime,
		EndTime:        dto.EndTime,
		Amount:         dto.Amount,
		Notes:          validator.SanitizeString(dto.Notes),
	})
	if err != nil {
		s.logger.Error("creating booking", zap.Error(err))
		return "", err
	}

	s.logger.Info("booking created",
		zap.String("id", id),
		zap.String("clientId", actor.ID),
		zap.String("practitionerId", dto.PractitionerID),
	)

	return id, nil
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeAccess(ctx, actor, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

func (s *BookingServiceImpl) List(ctx context.Context, actor domain.Actor, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	// Non-admins only ever see their own side of the ledger.
	switch actor.Role {
	case domain.UserRoleClient:
		filter.ClientID = &actor.ID
		filter.PractitionerID = nil
	case domain.UserRolePractitioner:
		practitioner, err := s.practitionerRepo.GetByUserID(ctx, actor.ID)
		if err != nil {
			return nil, 0, err
		}
		filter.PractitionerID = &practitioner.ID
		filter.ClientID = nil
	case domain.UserRoleAdmin:
	default:
		return nil, 0, fmt.Errorf("listing bookings: %w", domain.ErrForbidden)
	}

	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("listing bookings", zap.Error(err))
		return nil, 0, err
	}

	total, err := s.bookingRepo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("counting bookings", zap.Error(err))
		return nil, 0, err
	}

	return bookings, total, nil
}

func (s *BookingServiceImpl) Transition(ctx context.Context, actor domain.Actor, id string, next domain.BookingStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("status %q: %w", next, domain.ErrValidation)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorizeTransition(ctx, actor, booking, next); err != nil {
		return err
	}

	if !domain.CanTransition(booking.Status, next) {
		return fmt.Errorf("booking %s: %s -> %s: %w", id, booking.Status, next, domain.ErrInvalidTransition)
	}

	// A session cannot be marked completed before its day arrives. The
	// session day itself counts.
	if next == domain.BookingStatusCompleted {
		today := validator.DateOnly(s.now())
		if validator.DateOnly(booking.BookingDate).After(today) {
			return fmt.Errorf("booking %s dated %s: %w", id, booking.BookingDate.Format("2006-01-02"), domain.ErrPrematureCompletion)
		}
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, next, booking.Status); err != nil {
		s.logger.Warn("booking transition rejected by store",
			zap.String("id", id),
			zap.String("from", string(booking.Status)),
			zap.String("to", string(next)),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("booking transitioned",
		zap.String("id", id),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(next)),
		zap.String("actorId", actor.ID),
	)

	return nil
}

// authorizeTransition encodes who may request which transition: the owning
// client may only cancel, the owning practitioner may confirm, cancel and
// complete. Admins observe but never transition bookings.
func (s *BookingServiceImpl) authorizeTransition(ctx context.Context, actor domain.Actor, booking *domain.Booking, next domain.BookingStatus) error {
	switch actor.Role {
	case domain.UserRoleClient:
		if booking.ClientID != actor.ID {
			return fmt.Errorf("booking %s: %w", booking.ID, domain.ErrForbidden)
		}
		if next != domain.BookingStatusCancelled {
			return fmt.Errorf("clients may only cancel: %w", domain.ErrForbidden)
		}
		return nil
	case domain.UserRolePractitioner:
		practitioner, err := s.practitionerRepo.GetByUserID(ctx, actor.ID)
		if err != nil {
			return err
		}
		if booking.PractitionerID != practitioner.ID {
			return fmt.Errorf("booking %s: %w", booking.ID, domain.ErrForbidden)
		}
		return nil
	default:
		return fmt.Errorf("booking transitions: %w", domain.ErrForbidden)
	}
}

func (s *BookingServiceImpl) authorizeAccess(ctx context.Context, actor domain.Actor, booking *domain.Booking) error {
	switch actor.Role {
	case domain.UserRoleAdmin:
		return nil
	case domain.UserRoleClient:
		if booking.ClientID == actor.ID {
			return nil
		}
	case domain.UserRolePractitioner:
		practitioner, err := s.practitionerRepo.GetByUserID(ctx, actor.ID)
		if err != nil {
			return err
		}
		if booking.PractitionerID == practitioner.ID {
			return nil
		}
	}
	return fmt.Errorf("booking %s: %w", booking.ID, domain.ErrForbidden)
}

func (s *BookingServiceImpl) PractitionerStats(ctx context.Context, actor domain.Actor, practitionerID string) (*domain.PractitionerStats, error) {
	practitioner, err := s.practitionerRepo.GetByID(ctx, practitionerID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.UserRoleAdmin && practitioner.UserID != actor.ID {
		return nil, fmt.Errorf("stats for practitioner %s: %w", practitionerID, domain.ErrForbidden)
	}

	pending := domain.BookingStatusPending
	pendingCount, err := s.bookingRepo.CountByFilter(ctx, domain.BookingFilter{
		PractitionerID: &practitionerID,
		Status:         &pending,
	})
	if err != nil {
		return nil, err
	}

	today := validator.DateOnly(s.now())
	confirmed := domain.BookingStatusConfirmed
	upcomingCount, err := s.bookingRepo.CountByFilter(ctx, domain.BookingFilter{
		PractitionerID: &practitionerID,
		Status:         &confirmed,
		FromDate:       &today,
	})
	if err != nil {
		return nil, err
	}

	earnings, err := s.bookingRepo.SumCompletedAmount(ctx, practitionerID)
	if err != nil {
		return nil, err
	}

	return &domain.PractitionerStats{
		PendingCount:  pendingCount,
		UpcomingCount: upcomingCount,
		TotalEarnings: earnings,
	}, nil
}

func (s *BookingServiceImpl) ClientStats(ctx context.Context, actor domain.Actor) (*domain.ClientStats, error) {
	if actor.Role != domain.UserRoleClient {
		return nil, fmt.Errorf("client stats: %w", domain.ErrForbidden)
	}

	today := validator.DateOnly(s.now())
	confirmed := domain.BookingStatusConfirmed
	upcoming, err := s.bookingRepo.CountByFilter(ctx, domain.BookingFilter{
		ClientID: &actor.ID,
		Status:   &confirmed,
		FromDate: &today,
	})
	if err != nil {
		return nil, err
	}

	completed := domain.BookingStatusCompleted
	past, err := s.bookingRepo.CountByFilter(ctx, domain.BookingFilter{
		ClientID: &actor.ID,
		Status:   &completed,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ClientStats{
		UpcomingCount: upcoming,
		PastCount:     past,
	}, nil
}
