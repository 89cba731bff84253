package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"heala/internal/domain"
)

type fakeFileStorage struct {
	objects map[string][]byte
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{objects: make(map[string][]byte)}
}

func (s *fakeFileStorage) Upload(ctx context.Context, prefix string, data []byte, filename, contentType string) (string, error) {
	key := prefix + "/" + filename
	s.objects[key] = data
	return key, nil
}

func (s *fakeFileStorage) Delete(ctx context.Context, objectKey string) error {
	delete(s.objects, objectKey)
	return nil
}

func (s *fakeFileStorage) Get(ctx context.Context, objectKey string) ([]byte, error) {
	data, ok := s.objects[objectKey]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

func (s *fakeFileStorage) PresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	return "https://files.test/" + objectKey, nil
}

func pdfBytes() []byte {
	return []byte("%PDF-1.4 minimal test document body")
}

func newTestDocumentService(docs *fakeDocumentRepo, practitioners *fakePractitionerRepo, files *fakeFileStorage) *DocumentServiceImpl {
	return NewDocumentService(docs, practitioners, files, zap.NewNop())
}

func TestUploadAcceptsPDF(t *testing.T) {
	docs := newFakeDocumentRepo()
	files := newFakeFileStorage()
	svc := newTestDocumentService(docs, newFakePractitionerRepo(pendingPractitioner()), files)

	owner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	id, err := svc.Upload(context.Background(), owner, domain.DocumentTypeQualification, pdfBytes(), "diploma.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := docs.documents[id]
	if doc.MimeType != "application/pdf" {
		t.Errorf("mime type = %s, want application/pdf", doc.MimeType)
	}
	if doc.DocumentType != domain.DocumentTypeQualification {
		t.Errorf("document type = %s", doc.DocumentType)
	}
	if len(files.objects) != 1 {
		t.Errorf("expected 1 stored object, got %d", len(files.objects))
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := newTestDocumentService(newFakeDocumentRepo(), newFakePractitionerRepo(pendingPractitioner()), newFakeFileStorage())

	data := append(pdfBytes(), bytes.Repeat([]byte{0}, domain.MaxDocumentSize)...)
	owner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	_, err := svc.Upload(context.Background(), owner, domain.DocumentTypeQualification, data, "huge.pdf")

	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestUploadRejectsDisallowedContentType(t *testing.T) {
	svc := newTestDocumentService(newFakeDocumentRepo(), newFakePractitionerRepo(pendingPractitioner()), newFakeFileStorage())

	owner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	_, err := svc.Upload(context.Background(), owner, domain.DocumentTypeQualification, []byte("plain text resume"), "resume.txt")

	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestUploadRejectsUnknownDocumentType(t *testing.T) {
	svc := newTestDocumentService(newFakeDocumentRepo(), newFakePractitionerRepo(pendingPractitioner()), newFakeFileStorage())

	owner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	_, err := svc.Upload(context.Background(), owner, "passport", pdfBytes(), "passport.pdf")

	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestUploadFailsWhenStorageNotConfigured(t *testing.T) {
	svc := NewDocumentService(newFakeDocumentRepo(), newFakePractitionerRepo(pendingPractitioner()), nil, zap.NewNop())

	owner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	_, err := svc.Upload(context.Background(), owner, domain.DocumentTypeQualification, pdfBytes(), "diploma.pdf")

	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestReviewRequiresAdmin(t *testing.T) {
	docs := newFakeDocumentRepo(&domain.Document{ID: "doc-1", PractitionerID: "prac-1"})
	svc := newTestDocumentService(docs, newFakePractitionerRepo(pendingPractitioner()), newFakeFileStorage())

	verified := true
	owner := domain.Actor{ID: "prac-user-1", Role: domain.UserRolePractitioner}
	err := svc.Review(context.Background(), owner, "doc-1", domain.ReviewDocumentDTO{IsVerified: &verified})

	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestListForbiddenForOtherPractitioner(t *testing.T) {
	svc := newTestDocumentService(newFakeDocumentRepo(), newFakePractitionerRepo(pendingPractitioner()), newFakeFileStorage())

	stranger := domain.Actor{ID: "other-user", Role: domain.UserRolePractitioner}
	_, err := svc.ListByPractitioner(context.Background(), stranger, "prac-1")

	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}
