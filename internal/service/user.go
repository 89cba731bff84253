package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"heala/internal/domain"
	"heala/internal/repository"
	"heala/pkg/auth"
	"heala/pkg/validator"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserServiceImpl) Update(ctx context.Context, actor domain.Actor, id string, dto domain.UpdateUserDTO) error {
	if actor.ID != id && actor.Role != domain.UserRoleAdmin {
		return fmt.Errorf("updating user %s: %w", id, domain.ErrForbidden)
	}

	// Only admins may flip the active flag.
	if dto.IsActive != nil && actor.Role != domain.UserRoleAdmin {
		return fmt.Errorf("changing active flag: %w", domain.ErrForbidden)
	}

	if dto.Email != nil && !validator.ValidateEmail(*dto.Email) {
		return fmt.Errorf("email: %w", domain.ErrValidation)
	}
	if dto.Phone != nil && *dto.Phone != "" && !validator.ValidatePhone(*dto.Phone) {
		return fmt.Errorf("phone: %w", domain.ErrValidation)
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("updating user", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, actor domain.Actor, id string, dto domain.PasswordUpdateDTO) error {
	if actor.ID != id {
		return fmt.Errorf("updating password for user %s: %w", id, domain.ErrForbidden)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := auth.VerifyPassword(dto.OldPassword, user.PasswordHash)
	if err != nil {
		s.logger.Error("verifying old password", zap.Error(err))
		return fmt.Errorf("verifying old password: %w", err)
	}
	if !ok {
		return fmt.Errorf("old password does not match: %w", domain.ErrForbidden)
	}

	if !validator.ValidatePassword(dto.NewPassword) {
		return fmt.Errorf("new password too short: %w", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(dto.NewPassword)
	if err != nil {
		s.logger.Error("hashing new password", zap.Error(err))
		return fmt.Errorf("hashing new password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		s.logger.Error("saving new password", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *UserServiceImpl) Deactivate(ctx context.Context, actor domain.Actor, id string) error {
	if actor.ID != id && actor.Role != domain.UserRoleAdmin {
		return fmt.Errorf("deactivating user %s: %w", id, domain.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("deactivating user", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *UserServiceImpl) List(ctx context.Context, actor domain.Actor, role *domain.UserRole, limit, offset int) ([]domain.User, int, error) {
	if actor.Role != domain.UserRoleAdmin {
		return nil, 0, fmt.Errorf("listing users: %w", domain.ErrForbidden)
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.repo.List(ctx, role, limit, offset)
	if err != nil {
		s.logger.Error("listing users", zap.Error(err))
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, role)
	if err != nil {
		s.logger.Error("counting users", zap.Error(err))
		return nil, 0, err
	}

	return users, total, nil
}
