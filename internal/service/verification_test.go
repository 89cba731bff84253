package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"heala/internal/domain"
)

func newTestVerificationService(
	practitionerRepo *fakePractitionerRepo,
	documentRepo *fakeDocumentRepo,
	noteRepo *fakeNoteRepo,
) *VerificationServiceImpl {
	return NewVerificationService(practitionerRepo, documentRepo, noteRepo, nil, zap.NewNop())
}

func pendingPractitioner() *domain.Practitioner {
	return &domain.Practitioner{
		ID:                 "prac-1",
		UserID:             "prac-user-1",
		VerificationStatus: domain.VerificationStatusPending,
	}
}

func requiredDocs() []*domain.Document {
	return []*domain.Document{
		{PractitionerID: "prac-1", DocumentType: domain.DocumentTypeQualification},
		{PractitionerID: "prac-1", DocumentType: domain.DocumentTypeGovernmentID},
	}
}

func TestDecideRequiresAdmin(t *testing.T) {
	actors := []domain.Actor{
		{ID: "client-1", Role: domain.UserRoleClient},
		{ID: "prac-user-1", Role: domain.UserRolePractitioner},
	}

	for _, actor := range actors {
		svc := newTestVerificationService(newFakePractitionerRepo(pendingPractitioner()), newFakeDocumentRepo(), &fakeNoteRepo{})

		err := svc.Decide(context.Background(), actor, "prac-1", domain.DecideVerificationDTO{Decision: domain.VerificationDecisionVerified})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("role %s: expected ErrForbidden, got %v", actor.Role, err)
		}
	}
}

// stalePractitionerRepo serves a fixed snapshot on reads while delegating
// writes, so a caller can act on state another admin already changed.
type stalePractitionerRepo struct {
	*fakePractitionerRepo
	snapshot domain.Practitioner
}

func (r *stalePractitionerRepo) GetByID(ctx context.Context, id string) (*domain.Practitioner, error) {
	copied := r.snapshot
	return &copied, nil
}

func TestDecideLosesRaceAgainstConcurrentDecision(t *testing.T) {
	repo := newFakePractitionerRepo(pendingPractitioner())
	stale := &stalePractitionerRepo{fakePractitionerRepo: repo, snapshot: *pendingPractitioner()}
	noteRepo := &fakeNoteRepo{}

	first := newTestVerificationService(repo, newFakeDocumentRepo(), noteRepo)
	second := NewVerificationService(stale, newFakeDocumentRepo(), noteRepo, nil, zap.NewNop())

	admin := domain.Actor{ID: "admin-1", Role: domain.UserRoleAdmin}
	if err := first.Decide(context.Background(), admin, "prac-1", domain.DecideVerificationDTO{
		Decision: domain.VerificationDecisionVerified,
	}); err != nil {
		t.Fatalf("first decision failed: %v", err)
	}

	err := second.Decide(context.Background(), admin, "prac-1", domain.DecideVerificationDTO{
		Decision: domain.VerificationDecisionRejected,
	})
	if !errors.Is(err, domain.ErrConcurrentModification) {
		t.Errorf("expected ErrConcurrentModification, got %v", err)
	}

	if got := repo.practitioners["prac-1"].VerificationStatus; got != domain.VerificationStatusVerified {
		t.Errorf("status = %s, want verified from the winning decision", got)
	}
	if len(noteRepo.notes) != 1 {
		t.Errorf("expected only the winner's audit note, got %d", len(noteRepo.notes))
	}
}

func TestDecideVerifiesPendingPractitioner(t *testing.T) {
	practitionerRepo := newFakePractitionerRepo(pendingPractitioner())
	noteRepo := &fakeNoteRepo{}
	svc := newTestVerificationService(practitionerRepo, newFakeDocumentRepo(), noteRepo)

	admin := domain.Actor{ID: "admin-1", Role: domain.UserRoleAdmin}
	err := svc.Decide(context.Background(), admin, "prac-1", domain.DecideVerificationDTO{
		Decision: domain.VerificationDecisionVerified,
		Note:     "documents look good",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := practitionerRepo.practitioners["prac-1"].VerificationStatus; got != domain.VerificationStatusVerified {
		t.Errorf("status = %s, want verified", got)
	}
	if len(noteRepo.notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(noteRepo.notes))
	}
	if noteRepo.notes[0].Action != "verified" || noteRepo.notes[0].AdminID != "admin-1" {
		t.Errorf("note = %+v", noteRepo.notes[0])
	}
}

func TestDecideAppendsNoteEvenWhenEmpty(t *testing.T) {
	noteRepo := &fakeNoteRepo{}
	svc := newTestVerificationService(newFakePractitionerRepo(pendingPractitioner()), newFakeDocumentRepo(), noteRepo)

	admin := domain.Actor{ID: "admin-1", Role: domain.UserRoleAdmin}
	err := svc.Decide(context.Background(), admin, "prac-1", domain.DecideVerificationDTO{
		Decision: domain.VerificationDecisionRejected,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(noteRepo.notes) != 1 {
		t.Fatalf("expected 1 note even with empty text, got %d", len(noteRepo.notes))
	}
	if noteRepo.notes[0].Action != "rejected" {
		t.Errorf("action = %s, want rejected", noteRepo.notes[0].Action)
	}
}

func TestDecideRejectsNonPendingPractitioner(t *testing.T) {
	p := pendingPractitioner()
	p.VerificationStatus = domain.VerificationStatusVerified
	svc := newTestVerificationService(newFakePractitionerRepo(p), newFakeDocumentRepo(), &fakeNoteRepo{})

	admin := domain.Actor{ID: "admin-1", Role: domain.UserRoleAdmin}
	err := svc.Decide(context.Background(), admin, "prac-1", domain.DecideVerificationDTO{Decision: domain.VerificationDecisionRejected})

	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestDecideRejectsInvalidDecision(t *testing.T) {
	svc := newTestVerificationService(newFakePractitionerRepo(pendingPractitioner()), newFakeDocumentRepo(), &fakeNoteRepo{})

	admin := domain.Actor{ID: "admin-1", Role: domain.UserRoleAdmin}
	err := svc.Decide(context.Background(), admin, "prac-1", domain.DecideVerificationDTO{Decision: "pending"})

	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestSubmitForReviewRequiresOwnership(t *testing.T) {
	svc := newTestVerificationService(newFakePractitionerRepo(pendingPractitioner()), newFakeDocumentRepo(requiredDocs()...), &fakeNoteRepo{})

	stranger := domain.Actor{ID: "other-user", Role: domain.UserRolePractitioner}
	if err := svc.SubmitForReview(context.Background(), stranger, "prac-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestSubmitForReviewRequiresDocuments(t *testing.T) {
	p := pendingPractitioner()
	p.VerificationStatus = domain.VerificationStatusRejected
	docs := newFakeDocumentRepo(&domain.Document{PractitionerID: "prac-1", DocumentType: domain.DocumentTypeQualification})
	svc := newTestVerificationService(newFakePractitionerRepo(p), docs, &fakeNoteRepo{})

	owner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	err := svc.SubmitForReview(context.Background(), owner, "prac-1")

	if !errors.Is(err, domain.ErrMissingRequiredDocuments) {
		t.Errorf("expected ErrMissingRequiredDocuments, got %v", err)
	}
}

func TestSubmitForReviewMovesRejectedBackToPending(t *testing.T) {
	p := pendingPractitioner()
	p.VerificationStatus = domain.VerificationStatusRejected
	practitionerRepo := newFakePractitionerRepo(p)
	svc := newTestVerificationService(practitionerRepo, newFakeDocumentRepo(requiredDocs()...), &fakeNoteRepo{})

	owner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	if err := svc.SubmitForReview(context.Background(), owner, "prac-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := practitionerRepo.practitioners["prac-1"].VerificationStatus; got != domain.VerificationStatusPending {
		t.Errorf("status = %s, want pending", got)
	}
}

func TestSubmitForReviewRejectsVerifiedProfile(t *testing.T) {
	p := pendingPractitioner()
	p.VerificationStatus = domain.VerificationStatusVerified
	svc := newTestVerificationService(newFakePractitionerRepo(p), newFakeDocumentRepo(requiredDocs()...), &fakeNoteRepo{})

	owner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	if err := svc.SubmitForReview(context.Background(), owner, "prac-1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestSubmitForReviewIsIdempotentWhilePending(t *testing.T) {
	practitionerRepo := newFakePractitionerRepo(pendingPractitioner())
	svc := newTestVerificationService(practitionerRepo, newFakeDocumentRepo(requiredDocs()...), &fakeNoteRepo{})

	owner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	if err := svc.SubmitForReview(context.Background(), owner, "prac-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := practitionerRepo.practitioners["prac-1"].VerificationStatus; got != domain.VerificationStatusPending {
		t.Errorf("status = %s, want pending", got)
	}
}

func TestListNotesRequiresAdmin(t *testing.T) {
	svc := newTestVerificationService(newFakePractitionerRepo(pendingPractitioner()), newFakeDocumentRepo(), &fakeNoteRepo{})

	owner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	if _, err := svc.ListNotes(context.Background(), owner, "prac-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}
