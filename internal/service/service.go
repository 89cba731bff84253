package service

import (
	"context"

	"go.uber.org/zap"

	"heala/config"
	"heala/internal/cache"
	"heala/internal/domain"
	"heala/internal/repository"
	"heala/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Cache       *cache.PractitionerCache
}

type Services struct {
	User         UserService
	Auth         AuthService
	Practitioner PractitionerService
	Booking      BookingService
	Verification VerificationService
	Document     DocumentService
	Availability AvailabilityService
	Event        EventService
	Admin        AdminService
}

func NewServices(deps Deps) *Services {
	return &Services{
		User:         NewUserService(deps.Repos.User, deps.Logger),
		Auth:         NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Repos.Practitioner, deps.Config.JWT, deps.Logger),
		Practitioner: NewPractitionerService(deps.Repos.Practitioner, deps.Repos.Media, deps.FileStorage, deps.Cache, deps.Logger),
		Booking:      NewBookingService(deps.Repos.Booking, deps.Repos.Practitioner, deps.Logger),
		Verification: NewVerificationService(deps.Repos.Practitioner, deps.Repos.Document, deps.Repos.VerificationNote, deps.Cache, deps.Logger),
		Document:     NewDocumentService(deps.Repos.Document, deps.Repos.Practitioner, deps.FileStorage, deps.Logger),
		Availability: NewAvailabilityService(deps.Repos.Availability, deps.Repos.Practitioner, deps.Logger),
		Event:        NewEventService(deps.Repos.Event, deps.Repos.Practitioner, deps.Logger),
		Admin:        NewAdminService(deps.Repos.User, deps.Repos.Practitioner, deps.Repos.Booking, deps.Logger),
	}
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, actor domain.Actor, id string, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, actor domain.Actor, id string, dto domain.PasswordUpdateDTO) error
	Deactivate(ctx context.Context, actor domain.Actor, id string) error
	List(ctx context.Context, actor domain.Actor, role *domain.UserRole, limit, offset int) ([]domain.User, int, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (string, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (string, domain.UserRole, error)
}

type PractitionerService interface {
	GetByID(ctx context.Context, id string) (*domain.Practitioner, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Practitioner, error)
	Update(ctx context.Context, actor domain.Actor, id string, dto domain.UpdatePractitionerDTO) error
	List(ctx context.Context, filter domain.PractitionerFilter) ([]domain.Practitioner, int, error)
	Completeness(ctx context.Context, id string) (*domain.CompletenessReport, error)

	UploadCoverPhoto(ctx context.Context, actor domain.Actor, id string, data []byte, filename string) error
	UploadMedia(ctx context.Context, actor domain.Actor, id string, mediaType domain.MediaType, data []byte, filename string) (string, error)
	ListMedia(ctx context.Context, practitionerID string) ([]domain.Media, error)
	DeleteMedia(ctx context.Context, actor domain.Actor, mediaID string) error
}

type BookingService interface {
	Create(ctx context.Context, actor domain.Actor, dto domain.CreateBookingDTO) (string, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error)
	List(ctx context.Context, actor domain.Actor, filter domain.BookingFilter) ([]domain.Booking, int, error)

	// Transition moves a booking along the state machine on behalf of the
	// actor. It refuses transitions the actor's role does not permit and
	// completions dated before the session day.
	Transition(ctx context.Context, actor domain.Actor, id string, next domain.BookingStatus) error

	PractitionerStats(ctx context.Context, actor domain.Actor, practitionerID string) (*domain.PractitionerStats, error)
	ClientStats(ctx context.Context, actor domain.Actor) (*domain.ClientStats, error)
}

type VerificationService interface {
	// SubmitForReview puts a rejected profile back into the review queue.
	// All required document types must be on file.
	SubmitForReview(ctx context.Context, actor domain.Actor, practitionerID string) error

	// Decide resolves a pending verification to verified or rejected and
	// appends an audit note. Admin only.
	Decide(ctx context.Context, actor domain.Actor, practitionerID string, dto domain.DecideVerificationDTO) error

	ListNotes(ctx context.Context, actor domain.Actor, practitionerID string) ([]domain.VerificationNote, error)
}

type DocumentService interface {
	Upload(ctx context.Context, actor domain.Actor, docType domain.DocumentType, data []byte, filename string) (string, error)
	ListByPractitioner(ctx context.Context, actor domain.Actor, practitionerID string) ([]domain.Document, error)
	Review(ctx context.Context, actor domain.Actor, id string, dto domain.ReviewDocumentDTO) error
	Delete(ctx context.Context, actor domain.Actor, id string) error
	DownloadURL(ctx context.Context, actor domain.Actor, id string) (string, error)
}

type AvailabilityService interface {
	Add(ctx context.Context, actor domain.Actor, dto domain.CreateAvailabilityDTO) (string, error)
	ListByPractitioner(ctx context.Context, practitionerID string) ([]domain.Availability, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type AdminService interface {
	Overview(ctx context.Context, actor domain.Actor) (*domain.AdminOverview, error)
}

type EventService interface {
	Create(ctx context.Context, actor domain.Actor, dto domain.CreateEventDTO) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	Update(ctx context.Context, actor domain.Actor, id string, dto domain.UpdateEventDTO) error
	Delete(ctx context.Context, actor domain.Actor, id string) error
	List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, int, error)

	Register(ctx context.Context, actor domain.Actor, eventID string) (string, error)
	ListRegistrations(ctx context.Context, actor domain.Actor, eventID string) ([]domain.EventRegistration, error)
}
