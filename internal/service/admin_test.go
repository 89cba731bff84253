package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"heala/internal/domain"
)

func TestOverviewRequiresAdmin(t *testing.T) {
	svc := NewAdminService(newFakeUserRepo(), newFakePractitionerRepo(), newFakeBookingRepo(), zap.NewNop())

	client := domain.Actor{ID: "client-1", Role: domain.UserRoleClient}
	if _, err := svc.Overview(context.Background(), client); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestOverviewAggregatesCounts(t *testing.T) {
	users := newFakeUserRepo(
		&domain.User{ID: "user-1", Role: domain.UserRoleClient},
		&domain.User{ID: "user-2", Role: domain.UserRolePractitioner},
		&domain.User{ID: "user-3", Role: domain.UserRoleAdmin},
	)
	practitioners := newFakePractitionerRepo(
		&domain.Practitioner{ID: "prac-1", UserID: "user-2", VerificationStatus: domain.VerificationStatusPending},
		&domain.Practitioner{ID: "prac-2", UserID: "user-4", VerificationStatus: domain.VerificationStatusVerified},
	)
	day := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	bookings := newFakeBookingRepo(
		&domain.Booking{ID: "booking-1", PractitionerID: "prac-2", BookingDate: day, Status: domain.BookingStatusPending},
		&domain.Booking{ID: "booking-2", PractitionerID: "prac-2", BookingDate: day, Status: domain.BookingStatusCompleted},
	)

	svc := NewAdminService(users, practitioners, bookings, zap.NewNop())

	admin := domain.Actor{ID: "admin-1", Role: domain.UserRoleAdmin}
	overview, err := svc.Overview(context.Background(), admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if overview.TotalUsers != 3 {
		t.Errorf("total users = %d, want 3", overview.TotalUsers)
	}
	if overview.TotalPractitioners != 2 {
		t.Errorf("total practitioners = %d, want 2", overview.TotalPractitioners)
	}
	if overview.PendingVerifications != 1 {
		t.Errorf("pending verifications = %d, want 1", overview.PendingVerifications)
	}
	if overview.TotalBookings != 2 {
		t.Errorf("total bookings = %d, want 2", overview.TotalBookings)
	}
	if overview.PendingBookings != 1 {
		t.Errorf("pending bookings = %d, want 1", overview.PendingBookings)
	}
}
