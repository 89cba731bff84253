package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"heala/internal/domain"
	"heala/internal/repository"
)

type AdminServiceImpl struct {
	userRepo         repository.UserRepository
	practitionerRepo repository.PractitionerRepository
	bookingRepo      repository.BookingRepository
	logger           *zap.Logger
}

func NewAdminService(
	userRepo repository.UserRepository,
	practitionerRepo repository.PractitionerRepository,
	bookingRepo repository.BookingRepository,
	logger *zap.Logger,
) *AdminServiceImpl {
	return &AdminServiceImpl{
		userRepo:         userRepo,
		practitionerRepo: practitionerRepo,
		bookingRepo:      bookingRepo,
		logger:           logger,
	}
}

func (s *AdminServiceImpl) Overview(ctx context.Context, actor domain.Actor) (*domain.AdminOverview, error) {
	if actor.Role != domain.UserRoleAdmin {
		return nil, fmt.Errorf("reading admin overview: %w", domain.ErrForbidden)
	}

	totalUsers, err := s.userRepo.Count(ctx, nil)
	if err != nil {
		s.logger.Error("counting users", zap.Error(err))
		return nil, err
	}

	totalPractitioners, err := s.practitionerRepo.CountByFilter(ctx, domain.PractitionerFilter{})
	if err != nil {
		s.logger.Error("counting practitioners", zap.Error(err))
		return nil, err
	}

	pending := domain.VerificationStatusPending
	pendingVerifications, err := s.practitionerRepo.CountByFilter(ctx, domain.PractitionerFilter{VerificationStatus: &pending})
	if err != nil {
		s.logger.Error("counting pending verifications", zap.Error(err))
		return nil, err
	}

	totalBookings, err := s.bookingRepo.CountByFilter(ctx, domain.BookingFilter{})
	if err != nil {
		s.logger.Error("counting bookings", zap.Error(err))
		return nil, err
	}

	pendingStatus := domain.BookingStatusPending
	pendingBookings, err := s.bookingRepo.CountByFilter(ctx, domain.BookingFilter{Status: &pendingStatus})
	if err != nil {
		s.logger.Error("counting pending bookings", zap.Error(err))
		return nil, err
	}

	return &domain.AdminOverview{
		TotalUsers:           totalUsers,
		TotalPractitioners:   totalPractitioners,
		PendingVerifications: pendingVerifications,
		TotalBookings:        totalBookings,
		PendingBookings:      pendingBookings,
	}, nil
}
