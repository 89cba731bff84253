package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"heala/internal/cache"
	"heala/internal/domain"
	"heala/internal/repository"
	"heala/internal/storage"
	"heala/pkg/validator"
)

type PractitionerServiceImpl struct {
	repo        repository.PractitionerRepository
	mediaRepo   repository.MediaRepository
	fileStorage storage.FileStorage
	cache       *cache.PractitionerCache
	logger      *zap.Logger
}

func NewPractitionerService(
	repo repository.PractitionerRepository,
	mediaRepo repository.MediaRepository,
	fileStorage storage.FileStorage,
	practitionerCache *cache.PractitionerCache,
	logger *zap.Logger,
) *PractitionerServiceImpl {
	return &PractitionerServiceImpl{
		repo:        repo,
		mediaRepo:   mediaRepo,
		fileStorage: fileStorage,
		cache:       practitionerCache,
		logger:      logger,
	}
}

func (s *PractitionerServiceImpl) GetByID(ctx context.Context, id string) (*domain.Practitioner, error) {
	if practitioner, ok := s.cache.Get(ctx, id); ok {
		return practitioner, nil
	}

	practitioner, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, practitioner)

	return practitioner, nil
}

func (s *PractitionerServiceImpl) GetByUserID(ctx context.Context, userID string) (*domain.Practitioner, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *PractitionerServiceImpl) Update(ctx context.Context, actor domain.Actor, id string, dto domain.UpdatePractitionerDTO) error {
	practitioner, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if practitioner.UserID != actor.ID && actor.Role != domain.UserRoleAdmin {
		return fmt.Errorf("updating practitioner %s: %w", id, domain.ErrForbidden)
	}

	if dto.HourlyRate != nil && *dto.HourlyRate < 0 {
		return fmt.Errorf("hourly_rate: %w", domain.ErrValidation)
	}
	if dto.YearsOfExperience != nil && *dto.YearsOfExperience < 0 {
		return fmt.Errorf("years_of_experience: %w", domain.ErrValidation)
	}
	if dto.Bio != nil {
		sanitized := validator.SanitizeString(*dto.Bio)
		dto.Bio = &sanitized
	}

	// Completeness is recomputed from the profile as it will look after this
	// update and stored alongside it, so reads never have to derive it.
	projected := *practitioner
	applyUpdate(&projected, dto)
	report := domain.ComputeCompleteness(&projected)

	if err := s.repo.Update(ctx, id, dto, report.Completeness); err != nil {
		s.logger.Error("updating practitioner", zap.String("id", id), zap.Error(err))
		return err
	}

	s.cache.Invalidate(ctx, id)

	return nil
}

func applyUpdate(p *domain.Practitioner, dto domain.UpdatePractitionerDTO) {
	if dto.Bio != nil {
		p.Bio = *dto.Bio
	}
	if dto.HourlyRate != nil {
		p.HourlyRate = *dto.HourlyRate
	}
	if dto.YearsOfExperience != nil {
		p.YearsOfExperience = *dto.YearsOfExperience
	}
	if dto.Specializations != nil {
		p.Specializations = *dto.Specializations
	}
	if dto.Services != nil {
		p.Services = *dto.Services
	}
	if dto.Qualifications != nil {
		p.Qualifications = *dto.Qualifications
	}
	if dto.Languages != nil {
		p.Languages = *dto.Languages
	}
	if dto.Tags != nil {
		p.Tags = *dto.Tags
	}
	if dto.LocationName != nil {
		p.LocationName = *dto.LocationName
	}
	if dto.Address != nil {
		p.Address = *dto.Address
	}
	if dto.IsAvailable != nil {
		p.IsAvailable = *dto.IsAvailable
	}
}

func (s *PractitionerServiceImpl) List(ctx context.Context, filter domain.PractitionerFilter) ([]domain.Practitioner, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	practitioners, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("listing practitioners", zap.Error(err))
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("counting practitioners", zap.Error(err))
		return nil, 0, err
	}

	return practitioners, total, nil
}

func (s *PractitionerServiceImpl) Completeness(ctx context.Context, id string) (*domain.CompletenessReport, error) {
	practitioner, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	report := domain.ComputeCompleteness(practitioner)
	return &report, nil
}

func (s *PractitionerServiceImpl) UploadCoverPhoto(ctx context.Context, actor domain.Actor, id string, data []byte, filename string) error {
	if s.fileStorage == nil {
		return fmt.Errorf("uploading cover photo: %w", domain.ErrStorageUnavailable)
	}

	practitioner, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if practitioner.UserID != actor.ID {
		return fmt.Errorf("uploading cover photo for practitioner %s: %w", id, domain.ErrForbidden)
	}

	contentType, err := detectImageType(data)
	if err != nil {
		return err
	}

	objectKey, err := s.fileStorage.Upload(ctx, "covers", data, filename, contentType)
	if err != nil {
		s.logger.Error("uploading cover photo", zap.String("practitionerId", id), zap.Error(err))
		return err
	}

	if err := s.repo.UpdateCoverPhoto(ctx, id, objectKey); err != nil {
		s.logger.Error("saving cover photo key", zap.String("practitionerId", id), zap.Error(err))
		return err
	}

	s.cache.Invalidate(ctx, id)

	return nil
}

func (s *PractitionerServiceImpl) UploadMedia(ctx context.Context, actor domain.Actor, id string, mediaType domain.MediaType, data []byte, filename string) (string, error) {
	if s.fileStorage == nil {
		return "", fmt.Errorf("uploading media: %w", domain.ErrStorageUnavailable)
	}

	practitioner, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if practitioner.UserID != actor.ID {
		return "", fmt.Errorf("uploading media for practitioner %s: %w", id, domain.ErrForbidden)
	}

	if !mediaType.IsValid() {
		return "", fmt.Errorf("media type %q: %w", mediaType, domain.ErrValidation)
	}

	contentType, err := detectImageType(data)
	if err != nil {
		return "", err
	}

	objectKey, err := s.fileStorage.Upload(ctx, "media", data, filename, contentType)
	if err != nil {
		s.logger.Error("uploading media", zap.String("practitionerId", id), zap.Error(err))
		return "", err
	}

	existing, err := s.mediaRepo.ListByPractitioner(ctx, id)
	if err != nil {
		return "", err
	}

	mediaID, err := s.mediaRepo.Create(ctx, domain.Media{
		PractitionerID: id,
		MediaType:      mediaType,
		FileName:       filename,
		FilePath:       objectKey,
		DisplayOrder:   len(existing),
	})
	if err != nil {
		s.logger.Error("saving media record", zap.String("practitionerId", id), zap.Error(err))
		return "", err
	}

	return mediaID, nil
}

func (s *PractitionerServiceImpl) ListMedia(ctx context.Context, practitionerID string) ([]domain.Media, error) {
	return s.mediaRepo.ListByPractitioner(ctx, practitionerID)
}

func (s *PractitionerServiceImpl) DeleteMedia(ctx context.Context, actor domain.Actor, mediaID string) error {
	media, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return err
	}

	practitioner, err := s.repo.GetByID(ctx, media.PractitionerID)
	if err != nil {
		return err
	}
	if practitioner.UserID != actor.ID && actor.Role != domain.UserRoleAdmin {
		return fmt.Errorf("deleting media %s: %w", mediaID, domain.ErrForbidden)
	}

	if s.fileStorage != nil {
		if err := s.fileStorage.Delete(ctx, media.FilePath); err != nil {
			s.logger.Warn("deleting media object", zap.String("objectKey", media.FilePath), zap.Error(err))
		}
	}

	if err := s.mediaRepo.Delete(ctx, mediaID); err != nil {
		s.logger.Error("deleting media record", zap.String("id", mediaID), zap.Error(err))
		return err
	}

	return nil
}
