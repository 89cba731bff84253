package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"heala/config"
	"heala/internal/domain"
	"heala/internal/repository"
	"heala/pkg/auth"
	"heala/pkg/validator"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string          `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

type AuthServiceImpl struct {
	authRepo         repository.AuthRepository
	userRepo         repository.UserRepository
	practitionerRepo repository.PractitionerRepository
	jwtConfig        config.JWTConfig
	logger           *zap.Logger
}

func NewAuthService(
	authRepo repository.AuthRepository,
	userRepo repository.UserRepository,
	practitionerRepo repository.PractitionerRepository,
	jwtConfig config.JWTConfig,
	logger *zap.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		authRepo:         authRepo,
		userRepo:         userRepo,
		practitionerRepo: practitionerRepo,
		jwtConfig:        jwtConfig,
		logger:           logger,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, dto domain.RegisterRequest) (string, error) {
	if !validator.ValidateEmail(dto.Email) {
		return "", fmt.Errorf("email: %w", domain.ErrValidation)
	}
	if dto.Phone != "" && !validator.ValidatePhone(dto.Phone) {
		return "", fmt.Errorf("phone: %w", domain.ErrValidation)
	}
	if !validator.ValidatePassword(dto.Password) {
		return "", fmt.Errorf("password too short: %w", domain.ErrValidation)
	}

	existing, err := s.userRepo.GetByEmail(ctx, dto.Email)
	if err == nil && existing != nil {
		return "", fmt.Errorf("email %s: %w", dto.Email, domain.ErrAlreadyExists)
	}

	passwordHash, err := auth.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("hashing password", zap.Error(err))
		return "", fmt.Errorf("hashing password: %w", err)
	}

	userID, err := s.userRepo.Create(ctx, domain.CreateUserDTO{
		FirstName: validator.SanitizeString(dto.FirstName),
		LastName:  validator.SanitizeString(dto.LastName),
		Email:     dto.Email,
		Phone:     dto.Phone,
		Password:  passwordHash,
		Role:      dto.Role,
	})
	if err != nil {
		s.logger.Error("creating user", zap.Error(err))
		return "", err
	}

	// Practitioners get an empty profile immediately; it starts unverified
	// and incomplete until they fill it in and submit documents.
	if dto.Role == domain.UserRolePractitioner {
		if _, err := s.practitionerRepo.Create(ctx, userID); err != nil {
			s.logger.Error("creating practitioner profile", zap.String("userId", userID), zap.Error(err))
			return "", err
		}
	}

	return userID, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error) {
	user, err := s.userRepo.GetByEmail(ctx, dto.Email)
	if err != nil {
		s.logger.Info("login with unknown email", zap.String("email", dto.Email))
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrForbidden)
	}

	ok, err := auth.VerifyPassword(dto.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error("verifying password", zap.Error(err))
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrForbidden)
	}
	if !ok {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrForbidden)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("account is deactivated: %w", domain.ErrForbidden)
	}

	return s.issueSession(ctx, user, userAgent, ip)
}

func (s *AuthServiceImpl) RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error) {
	session, err := s.authRepo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrForbidden)
	}

	if session.ExpiresAt.Before(time.Now()) {
		if err := s.authRepo.DeleteSession(ctx, session.ID); err != nil {
			s.logger.Warn("deleting expired session", zap.Error(err))
		}
		return nil, fmt.Errorf("refresh token expired: %w", domain.ErrForbidden)
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		s.logger.Error("loading session user", zap.String("userId", session.UserID), zap.Error(err))
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is deactivated: %w", domain.ErrForbidden)
	}

	if err := s.authRepo.DeleteSession(ctx, session.ID); err != nil {
		s.logger.Warn("deleting rotated session", zap.Error(err))
	}

	return s.issueSession(ctx, user, userAgent, ip)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.authRepo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.authRepo.DeleteSession(ctx, session.ID); err != nil {
		s.logger.Error("deleting session", zap.Error(err))
		return err
	}

	return nil
}

func (s *AuthServiceImpl) ParseToken(ctx context.Context, tokenString string) (string, domain.UserRole, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SigningKey), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	return claims.UserID, claims.Role, nil
}

func (s *AuthServiceImpl) issueSession(ctx context.Context, user *domain.User, userAgent, ip string) (*domain.Tokens, error) {
	tokens, err := s.generateTokens(user.ID, user.Role)
	if err != nil {
		s.logger.Error("generating tokens", zap.Error(err))
		return nil, err
	}

	session := domain.Session{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		RefreshToken: tokens.RefreshToken,
		UserAgent:    userAgent,
		IP:           ip,
		ExpiresAt:    time.Now().Add(s.jwtConfig.RefreshTokenTTL),
		CreatedAt:    time.Now(),
	}

	if err := s.authRepo.CreateSession(ctx, session); err != nil {
		s.logger.Error("saving session", zap.Error(err))
		return nil, err
	}

	return tokens, nil
}

func (s *AuthServiceImpl) generateTokens(userID string, role domain.UserRole) (*domain.Tokens, error) {
	now := time.Now()

	accessClaims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Role:   role,
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.jwtConfig.SigningKey))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	refreshToken, err := auth.GenerateRandomToken(32)
	if err != nil {
		return nil, fmt.Errorf("generating refresh token: %w", err)
	}

	return &domain.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
