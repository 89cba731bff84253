package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"heala/internal/domain"
)

func newTestPractitionerService(repo *fakePractitionerRepo) *PractitionerServiceImpl {
	return NewPractitionerService(repo, nil, nil, nil, zap.NewNop())
}

func TestUpdateRecomputesCompleteness(t *testing.T) {
	repo := newFakePractitionerRepo(&domain.Practitioner{
		ID:     "prac-1",
		UserID: "prac-user-1",
	})
	svc := newTestPractitionerService(repo)

	bio := "Certified therapist"
	rate := 450.0
	owner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	err := svc.Update(context.Background(), owner, "prac-1", domain.UpdatePractitionerDTO{
		Bio:        &bio,
		HourlyRate: &rate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := repo.practitioners["prac-1"].ProfileCompleteness; got != 29 {
		t.Errorf("completeness = %d, want 29", got)
	}
}

func TestUpdateCompletenessReachesFull(t *testing.T) {
	repo := newFakePractitionerRepo(&domain.Practitioner{
		ID:     "prac-1",
		UserID: "prac-user-1",
	})
	svc := newTestPractitionerService(repo)

	bio := "Certified therapist"
	rate := 450.0
	years := 6
	location := "Cape Town"
	specs := []string{"Sports Massage"}
	services := []string{"Deep tissue"}
	quals := []string{"Diploma"}

	owner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	err := svc.Update(context.Background(), owner, "prac-1", domain.UpdatePractitionerDTO{
		Bio:               &bio,
		HourlyRate:        &rate,
		YearsOfExperience: &years,
		LocationName:      &location,
		Specializations:   &specs,
		Services:          &services,
		Qualifications:    &quals,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := repo.practitioners["prac-1"].ProfileCompleteness; got != 100 {
		t.Errorf("completeness = %d, want 100", got)
	}
}

func TestUpdateForbiddenForNonOwner(t *testing.T) {
	repo := newFakePractitionerRepo(&domain.Practitioner{
		ID:     "prac-1",
		UserID: "prac-user-1",
	})
	svc := newTestPractitionerService(repo)

	bio := "hijacked"
	stranger := domain.Actor{ID: "other-user", Role: domain.UserRolePractitioner}
	err := svc.Update(context.Background(), stranger, "prac-1", domain.UpdatePractitionerDTO{Bio: &bio})

	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateRejectsNegativeRate(t *testing.T) {
	repo := newFakePractitionerRepo(&domain.Practitioner{
		ID:     "prac-1",
		UserID: "prac-user-1",
	})
	svc := newTestPractitionerService(repo)

	rate := -10.0
	owner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	err := svc.Update(context.Background(), owner, "prac-1", domain.UpdatePractitionerDTO{HourlyRate: &rate})

	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestCompletenessReportForStoredProfile(t *testing.T) {
	repo := newFakePractitionerRepo(&domain.Practitioner{
		ID:           "prac-1",
		UserID:       "prac-user-1",
		Bio:          "bio",
		HourlyRate:   100,
		LocationName: "Durban",
	})
	svc := newTestPractitionerService(repo)

	report, err := svc.Completeness(context.Background(), "prac-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Completeness != 43 {
		t.Errorf("completeness = %d, want 43", report.Completeness)
	}
	if len(report.MissingFields) != 4 {
		t.Errorf("missing fields = %v, want 4 entries", report.MissingFields)
	}
}
