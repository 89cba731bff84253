package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"heala/internal/domain"
)

var testDay = time.Date(2025, 6, 16, 10, 30, 0, 0, time.UTC)

func newTestBookingService(bookingRepo *fakeBookingRepo, practitionerRepo *fakePractitionerRepo) *BookingServiceImpl {
	svc := NewBookingService(bookingRepo, practitionerRepo, zap.NewNop())
	svc.now = func() time.Time { return testDay }
	return svc
}

func verifiedPractitioner() *domain.Practitioner {
	return &domain.Practitioner{
		ID:                 "prac-1",
		UserID:             "prac-user-1",
		VerificationStatus: domain.VerificationStatusVerified,
		IsAvailable:        true,
	}
}

func TestCreateBookingRequiresClientRole(t *testing.T) {
	svc := newTestBookingService(newFakeBookingRepo(), newFakePractitionerRepo(verifiedPractitioner()))

	actor := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	_, err := svc.Create(context.Background(), actor, domain.CreateBookingDTO{
		PractitionerID: "prac-1",
		BookingDate:    "2025-06-20",
		StartTime:      "09:00",
		EndTime:        "10:00",
	})

	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateBookingRejectsUnverifiedPractitioner(t *testing.T) {
	p := verifiedPractitioner()
	p.VerificationStatus = domain.VerificationStatusPending
	svc := newTestBookingService(newFakeBookingRepo(), newFakePractitionerRepo(p))

	actor := domain.Actor{ID: "client-1", Role: domain.UserRoleClient}
	_, err := svc.Create(context.Background(), actor, domain.CreateBookingDTO{
		PractitionerID: "prac-1",
		BookingDate:    "2025-06-20",
		StartTime:      "09:00",
		EndTime:        "10:00",
	})

	if !errors.Is(err, domain.ErrPractitionerNotBookable) {
		t.Errorf("expected ErrPractitionerNotBookable, got %v", err)
	}
}

func TestCreateBookingRejectsUnavailablePractitioner(t *testing.T) {
	p := verifiedPractitioner()
	p.IsAvailable = false
	svc := newTestBookingService(newFakeBookingRepo(), newFakePractitionerRepo(p))

	actor := domain.Actor{ID: "client-1", Role: domain.UserRoleClient}
	_, err := svc.Create(context.Background(), actor, domain.CreateBookingDTO{
		PractitionerID: "prac-1",
		BookingDate:    "2025-06-20",
		StartTime:      "09:00",
		EndTime:        "10:00",
	})

	if !errors.Is(err, domain.ErrPractitionerNotBookable) {
		t.Errorf("expected ErrPractitionerNotBookable, got %v", err)
	}
}

func TestCreateBookingValidatesTimes(t *testing.T) {
	svc := newTestBookingService(newFakeBookingRepo(), newFakePractitionerRepo(verifiedPractitioner()))
	actor := domain.Actor{ID: "client-1", Role: domain.UserRoleClient}

	tests := []struct {
		name string
		dto  domain.CreateBookingDTO
	}{
		{"bad date", domain.CreateBookingDTO{PractitionerID: "prac-1", BookingDate: "20-06-2025", StartTime: "09:00", EndTime: "10:00"}},
		{"bad start", domain.CreateBookingDTO{PractitionerID: "prac-1", BookingDate: "2025-06-20", StartTime: "9am", EndTime: "10:00"}},
		{"end before start", domain.CreateBookingDTO{PractitionerID: "prac-1", BookingDate: "2025-06-20", StartTime: "10:00", EndTime: "09:00"}},
		{"past date", domain.CreateBookingDTO{PractitionerID: "prac-1", BookingDate: "2025-06-15", StartTime: "09:00", EndTime: "10:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), actor, tt.dto); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreateBookingStartsPending(t *testing.T) {
	bookingRepo := newFakeBookingRepo()
	svc := newTestBookingService(bookingRepo, newFakePractitionerRepo(verifiedPractitioner()))

	actor := domain.Actor{ID: "client-1", Role: domain.UserRoleClient}
	id, err := svc.Create(context.Background(), actor, domain.CreateBookingDTO{
		PractitionerID: "prac-1",
		BookingDate:    "2025-06-20",
		StartTime:      "09:00",
		EndTime:        "10:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	booking := bookingRepo.bookings[id]
	if booking.Status != domain.BookingStatusPending {
		t.Errorf("new booking status = %s, want pending", booking.Status)
	}
}

func TestTransitionClientMayOnlyCancel(t *testing.T) {
	booking := &domain.Booking{
		ID:             "booking-1",
		ClientID:       "client-1",
		PractitionerID: "prac-1",
		Status:         domain.BookingStatusPending,
		BookingDate:    testDay,
	}
	svc := newTestBookingService(newFakeBookingRepo(booking), newFakePractitionerRepo(verifiedPractitioner()))

	client := domain.Actor{ID: "client-1", Role: domain.UserRoleClient}

	if err := svc.Transition(context.Background(), client, "booking-1", domain.BookingStatusConfirmed); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("client confirming: expected ErrForbidden, got %v", err)
	}
	if err := svc.Transition(context.Background(), client, "booking-1", domain.BookingStatusCancelled); err != nil {
		t.Errorf("client cancelling own booking: unexpected error %v", err)
	}
}

func TestTransitionRejectsForeignActor(t *testing.T) {
	booking := &domain.Booking{
		ID:             "booking-1",
		ClientID:       "client-1",
		PractitionerID: "prac-1",
		Status:         domain.BookingStatusPending,
		BookingDate:    testDay,
	}
	svc := newTestBookingService(newFakeBookingRepo(booking), newFakePractitionerRepo(verifiedPractitioner()))

	stranger := domain.Actor{ID: "client-2", Role: domain.UserRoleClient}
	if err := svc.Transition(context.Background(), stranger, "booking-1", domain.BookingStatusCancelled); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	admin := domain.Actor{ID: "admin-1", Role: domain.UserRoleAdmin}
	if err := svc.Transition(context.Background(), admin, "booking-1", domain.BookingStatusCancelled); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("admin transition: expected ErrForbidden, got %v", err)
	}
}

func TestTransitionRejectsUnreachableStates(t *testing.T) {
	booking := &domain.Booking{
		ID:             "booking-1",
		ClientID:       "client-1",
		PractitionerID: "prac-1",
		Status:         domain.BookingStatusCancelled,
		BookingDate:    testDay,
	}
	svc := newTestBookingService(newFakeBookingRepo(booking), newFakePractitionerRepo(verifiedPractitioner()))

	practitioner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	err := svc.Transition(context.Background(), practitioner, "booking-1", domain.BookingStatusConfirmed)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransitionRejectsPrematureCompletion(t *testing.T) {
	booking := &domain.Booking{
		ID:             "booking-1",
		ClientID:       "client-1",
		PractitionerID: "prac-1",
		Status:         domain.BookingStatusConfirmed,
		BookingDate:    testDay.Add(48 * time.Hour),
	}
	svc := newTestBookingService(newFakeBookingRepo(booking), newFakePractitionerRepo(verifiedPractitioner()))

	practitioner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	err := svc.Transition(context.Background(), practitioner, "booking-1", domain.BookingStatusCompleted)
	if !errors.Is(err, domain.ErrPrematureCompletion) {
		t.Errorf("expected ErrPrematureCompletion, got %v", err)
	}
}

func TestTransitionAllowsSameDayCompletion(t *testing.T) {
	booking := &domain.Booking{
		ID:             "booking-1",
		ClientID:       "client-1",
		PractitionerID: "prac-1",
		Status:         domain.BookingStatusConfirmed,
		BookingDate:    time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
	}
	repo := newFakeBookingRepo(booking)
	svc := newTestBookingService(repo, newFakePractitionerRepo(verifiedPractitioner()))

	practitioner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	if err := svc.Transition(context.Background(), practitioner, "booking-1", domain.BookingStatusCompleted); err != nil {
		t.Fatalf("same-day completion: unexpected error %v", err)
	}

	if repo.bookings["booking-1"].Status != domain.BookingStatusCompleted {
		t.Errorf("status = %s, want completed", repo.bookings["booking-1"].Status)
	}
}

func TestTransitionSurfacesConcurrentModification(t *testing.T) {
	booking := &domain.Booking{
		ID:             "booking-1",
		ClientID:       "client-1",
		PractitionerID: "prac-1",
		Status:         domain.BookingStatusPending,
		BookingDate:    testDay,
	}
	repo := newFakeBookingRepo(booking)
	svc := newTestBookingService(repo, newFakePractitionerRepo(verifiedPractitioner()))

	// Another writer moves the booking after the service read it.
	client := domain.Actor{ID: "client-1", Role: domain.UserRoleClient}
	loaded, err := svc.GetByID(context.Background(), client, "booking-1")
	if err != nil {
		t.Fatalf("loading booking: %v", err)
	}
	repo.bookings["booking-1"].Status = domain.BookingStatusConfirmed

	err = repo.UpdateStatus(context.Background(), "booking-1", domain.BookingStatusCancelled, loaded.Status)
	if !errors.Is(err, domain.ErrConcurrentModification) {
		t.Errorf("expected ErrConcurrentModification, got %v", err)
	}
}

func TestPractitionerStats(t *testing.T) {
	amount := 500.0
	bookings := []*domain.Booking{
		{ID: "b1", PractitionerID: "prac-1", Status: domain.BookingStatusPending, BookingDate: testDay.Add(24 * time.Hour)},
		{ID: "b2", PractitionerID: "prac-1", Status: domain.BookingStatusConfirmed, BookingDate: testDay.Add(48 * time.Hour)},
		{ID: "b3", PractitionerID: "prac-1", Status: domain.BookingStatusCompleted, BookingDate: testDay.Add(-24 * time.Hour), Amount: &amount},
		{ID: "b4", PractitionerID: "prac-1", Status: domain.BookingStatusCompleted, BookingDate: testDay.Add(-48 * time.Hour), Amount: &amount},
	}
	svc := newTestBookingService(newFakeBookingRepo(bookings...), newFakePractitionerRepo(verifiedPractitioner()))

	owner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	stats, err := svc.PractitionerStats(context.Background(), owner, "prac-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.PendingCount != 1 {
		t.Errorf("pending = %d, want 1", stats.PendingCount)
	}
	if stats.UpcomingCount != 1 {
		t.Errorf("upcoming = %d, want 1", stats.UpcomingCount)
	}
	if stats.TotalEarnings != 1000 {
		t.Errorf("earnings = %f, want 1000", stats.TotalEarnings)
	}
}

func TestPractitionerStatsForbiddenForOthers(t *testing.T) {
	svc := newTestBookingService(newFakeBookingRepo(), newFakePractitionerRepo(verifiedPractitioner()))

	stranger := domain.Actor{ID: "someone-else", Role: domain.UserRolePractitioner}
	if _, err := svc.PractitionerStats(context.Background(), stranger, "prac-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}
