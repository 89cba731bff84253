package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"heala/internal/cache"
	"heala/internal/domain"
	"heala/internal/repository"
)

type VerificationServiceImpl struct {
	practitionerRepo repository.PractitionerRepository
	documentRepo     repository.DocumentRepository
	noteRepo         repository.VerificationNoteRepository
	cache            *cache.PractitionerCache
	logger           *zap.Logger
}

func NewVerificationService(
	practitionerRepo repository.PractitionerRepository,
	documentRepo repository.DocumentRepository,
	noteRepo repository.VerificationNoteRepository,
	practitionerCache *cache.PractitionerCache,
	logger *zap.Logger,
) *VerificationServiceImpl {
	return &VerificationServiceImpl{
		practitionerRepo: practitionerRepo,
		documentRepo:     documentRepo,
		noteRepo:         noteRepo,
		cache:            practitionerCache,
		logger:           logger,
	}
}

func (s *VerificationServiceImpl) SubmitForReview(ctx context.Context, actor domain.Actor, practitionerID string) error {
	practitioner, err := s.practitionerRepo.GetByID(ctx, practitionerID)
	if err != nil {
		return err
	}
	if practitioner.UserID != actor.ID {
		return fmt.Errorf("submitting practitioner %s for review: %w", practitionerID, domain.ErrForbidden)
	}

	if practitioner.VerificationStatus == domain.VerificationStatusVerified {
		return fmt.Errorf("practitioner %s is already verified: %w", practitionerID, domain.ErrInvalidTransition)
	}

	if err := s.checkRequiredDocuments(ctx, practitionerID); err != nil {
		return err
	}

	// An already pending profile stays in the queue; only a rejection needs
	// to be moved back.
	if practitioner.VerificationStatus == domain.VerificationStatusPending {
		return nil
	}

	err = s.practitionerRepo.UpdateVerificationStatus(ctx, practitionerID,
		domain.VerificationStatusPending, domain.VerificationStatusRejected)
	if err != nil {
		s.logger.Warn("resubmission rejected by store", zap.String("practitionerId", practitionerID), zap.Error(err))
		return err
	}

	s.cache.Invalidate(ctx, practitionerID)
	s.logger.Info("practitioner resubmitted for verification", zap.String("practitionerId", practitionerID))

	return nil
}

func (s *VerificationServiceImpl) Decide(ctx context.Context, actor domain.Actor, practitionerID string, dto domain.DecideVerificationDTO) error {
	if actor.Role != domain.UserRoleAdmin {
		return fmt.Errorf("deciding verification: %w", domain.ErrForbidden)
	}
	if !dto.Decision.IsValid() {
		return fmt.Errorf("decision %q: %w", dto.Decision, domain.ErrValidation)
	}

	practitioner, err := s.practitionerRepo.GetByID(ctx, practitionerID)
	if err != nil {
		return err
	}

	if practitioner.VerificationStatus != domain.VerificationStatusPending {
		return fmt.Errorf("practitioner %s is %s: %w", practitionerID, practitioner.VerificationStatus, domain.ErrInvalidTransition)
	}

	err = s.practitionerRepo.UpdateVerificationStatus(ctx, practitionerID,
		dto.Decision.Status(), domain.VerificationStatusPending)
	if err != nil {
		s.logger.Warn("verification decision rejected by store",
			zap.String("practitionerId", practitionerID),
			zap.String("decision", string(dto.Decision)),
			zap.Error(err),
		)
		return err
	}

	// The audit note is written even when the admin leaves it empty: the
	// trail must record every decision.
	note := domain.VerificationNote{
		PractitionerID: practitionerID,
		AdminID:        actor.ID,
		Note:           dto.Note,
		Action:         string(dto.Decision),
	}
	if _, err := s.noteRepo.Append(ctx, note); err != nil {
		s.logger.Error("appending verification note", zap.String("practitionerId", practitionerID), zap.Error(err))
		return err
	}

	s.cache.Invalidate(ctx, practitionerID)
	s.logger.Info("verification decided",
		zap.String("practitionerId", practitionerID),
		zap.String("decision", string(dto.Decision)),
		zap.String("adminId", actor.ID),
	)

	return nil
}

func (s *VerificationServiceImpl) ListNotes(ctx context.Context, actor domain.Actor, practitionerID string) ([]domain.VerificationNote, error) {
	if actor.Role != domain.UserRoleAdmin {
		return nil, fmt.Errorf("listing verification notes: %w", domain.ErrForbidden)
	}
	return s.noteRepo.ListByPractitioner(ctx, practitionerID)
}

func (s *VerificationServiceImpl) checkRequiredDocuments(ctx context.Context, practitionerID string) error {
	docs, err := s.documentRepo.ListByPractitioner(ctx, practitionerID)
	if err != nil {
		return err
	}

	present := make(map[domain.DocumentType]bool, len(docs))
	for _, doc := range docs {
		present[doc.DocumentType] = true
	}

	for _, required := range domain.RequiredDocumentTypes {
		if !present[required] {
			return fmt.Errorf("document type %s: %w", required, domain.ErrMissingRequiredDocuments)
		}
	}

	return nil
}
