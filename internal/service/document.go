package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"heala/internal/domain"
	"heala/internal/repository"
	"heala/internal/storage"
)

const documentURLExpiry = 15 * time.Minute

type DocumentServiceImpl struct {
	repo             repository.DocumentRepository
	practitionerRepo repository.PractitionerRepository
	fileStorage      storage.FileStorage
	logger           *zap.Logger
}

func NewDocumentService(
	repo repository.DocumentRepository,
	practitionerRepo repository.PractitionerRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *DocumentServiceImpl {
	return &DocumentServiceImpl{
		repo:             repo,
		practitionerRepo: practitionerRepo,
		fileStorage:      fileStorage,
		logger:           logger,
	}
}

func (s *DocumentServiceImpl) Upload(ctx context.Context, actor domain.Actor, docType domain.DocumentType, data []byte, filename string) (string, error) {
	if s.fileStorage == nil {
		return "", fmt.Errorf("uploading document: %w", domain.ErrStorageUnavailable)
	}

	practitioner, err := s.practitionerRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		return "", err
	}

	if !docType.IsValid() {
		return "", fmt.Errorf("document type %q: %w", docType, domain.ErrValidation)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty file: %w", domain.ErrValidation)
	}
	if len(data) > domain.MaxDocumentSize {
		return "", fmt.Errorf("file exceeds %d bytes: %w", domain.MaxDocumentSize, domain.ErrValidation)
	}

	// The content type is sniffed from the bytes, never trusted from the
	// request.
	contentType := http.DetectContentType(data)
	if !domain.AllowedDocumentMIMETypes[contentType] {
		return "", fmt.Errorf("content type %s: %w", contentType, domain.ErrValidation)
	}

	objectKey, err := s.fileStorage.Upload(ctx, "documents", data, filename, contentType)
	if err != nil {
		s.logger.Error("uploading document", zap.String("practitionerId", practitioner.ID), zap.Error(err))
		return "", err
	}

	id, err := s.repo.Create(ctx, domain.Document{
		PractitionerID: practitioner.ID,
		DocumentType:   docType,
		FileName:       filename,
		FilePath:       objectKey,
		FileSize:       int64(len(data)),
		MimeType:       contentType,
	})
	if err != nil {
		s.logger.Error("saving document record", zap.String("practitionerId", practitioner.ID), zap.Error(err))
		return "", err
	}

	s.logger.Info("document uploaded",
		zap.String("id", id),
		zap.String("practitionerId", practitioner.ID),
		zap.String("type", string(docType)),
	)

	return id, nil
}

func (s *DocumentServiceImpl) ListByPractitioner(ctx context.Context, actor domain.Actor, practitionerID string) ([]domain.Document, error) {
	if actor.Role != domain.UserRoleAdmin {
		practitioner, err := s.practitionerRepo.GetByID(ctx, practitionerID)
		if err != nil {
			return nil, err
		}
		if practitioner.UserID != actor.ID {
			return nil, fmt.Errorf("listing documents for practitioner %s: %w", practitionerID, domain.ErrForbidden)
		}
	}

	return s.repo.ListByPractitioner(ctx, practitionerID)
}

func (s *DocumentServiceImpl) Review(ctx context.Context, actor domain.Actor, id string, dto domain.ReviewDocumentDTO) error {
	if actor.Role != domain.UserRoleAdmin {
		return fmt.Errorf("reviewing documents: %w", domain.ErrForbidden)
	}
	if dto.IsVerified == nil {
		return fmt.Errorf("is_verified: %w", domain.ErrValidation)
	}

	if err := s.repo.Review(ctx, id, *dto.IsVerified, dto.AdminNotes); err != nil {
		s.logger.Error("reviewing document", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *DocumentServiceImpl) Delete(ctx context.Context, actor domain.Actor, id string) error {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor.Role != domain.UserRoleAdmin {
		practitioner, err := s.practitionerRepo.GetByID(ctx, doc.PractitionerID)
		if err != nil {
			return err
		}
		if practitioner.UserID != actor.ID {
			return fmt.Errorf("deleting document %s: %w", id, domain.ErrForbidden)
		}
	}

	if s.fileStorage != nil {
		if err := s.fileStorage.Delete(ctx, doc.FilePath); err != nil {
			s.logger.Warn("deleting document object", zap.String("objectKey", doc.FilePath), zap.Error(err))
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("deleting document record", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *DocumentServiceImpl) DownloadURL(ctx context.Context, actor domain.Actor, id string) (string, error) {
	if s.fileStorage == nil {
		return "", fmt.Errorf("signing document url: %w", domain.ErrStorageUnavailable)
	}

	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if actor.Role != domain.UserRoleAdmin {
		practitioner, err := s.practitionerRepo.GetByID(ctx, doc.PractitionerID)
		if err != nil {
			return "", err
		}
		if practitioner.UserID != actor.ID {
			return "", fmt.Errorf("downloading document %s: %w", id, domain.ErrForbidden)
		}
	}

	url, err := s.fileStorage.PresignedURL(ctx, doc.FilePath, documentURLExpiry)
	if err != nil {
		s.logger.Error("signing document url", zap.String("id", id), zap.Error(err))
		return "", err
	}

	return url, nil
}

func detectImageType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty file: %w", domain.ErrValidation)
	}
	if len(data) > domain.MaxDocumentSize {
		return "", fmt.Errorf("file exceeds %d bytes: %w", domain.MaxDocumentSize, domain.ErrValidation)
	}

	contentType := http.DetectContentType(data)
	if contentType != "image/jpeg" && contentType != "image/png" {
		return "", fmt.Errorf("content type %s: %w", contentType, domain.ErrValidation)
	}

	return contentType, nil
}
