package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"heala/internal/domain"
)

type Repositories struct {
	User             UserRepository
	Auth             AuthRepository
	Practitioner     PractitionerRepository
	Booking          BookingRepository
	Document         DocumentRepository
	Media            MediaRepository
	VerificationNote VerificationNoteRepository
	Availability     AvailabilityRepository
	Event            EventRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:             NewUserRepository(db),
		Auth:             NewAuthRepository(db),
		Practitioner:     NewPractitionerRepository(db),
		Booking:          NewBookingRepository(db),
		Document:         NewDocumentRepository(db),
		Media:            NewMediaRepository(db),
		VerificationNote: NewVerificationNoteRepository(db),
		Availability:     NewAvailabilityRepository(db),
		Event:            NewEventRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, role *domain.UserRole, limit, offset int) ([]domain.User, error)
	Count(ctx context.Context, role *domain.UserRole) (int, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID string) error
}

type PractitionerRepository interface {
	Create(ctx context.Context, userID string) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Practitioner, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Practitioner, error)
	Update(ctx context.Context, id string, dto domain.UpdatePractitionerDTO, completeness int) error
	List(ctx context.Context, filter domain.PractitionerFilter) ([]domain.Practitioner, error)
	CountByFilter(ctx context.Context, filter domain.PractitionerFilter) (int, error)
	UpdateCoverPhoto(ctx context.Context, id string, photoURL string) error

	// UpdateVerificationStatus writes next only if the row still holds
	// expected (compare-and-swap). A lost race yields
	// domain.ErrConcurrentModification.
	UpdateVerificationStatus(ctx context.Context, id string, next, expected domain.VerificationStatus) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking domain.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	CountByFilter(ctx context.Context, filter domain.BookingFilter) (int, error)
	SumCompletedAmount(ctx context.Context, practitionerID string) (float64, error)

	// UpdateStatus is the compare-and-swap write backing every booking
	// transition; see PractitionerRepository.UpdateVerificationStatus.
	UpdateStatus(ctx context.Context, id string, next, expected domain.BookingStatus) error
}

type DocumentRepository interface {
	Create(ctx context.Context, doc domain.Document) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByPractitioner(ctx context.Context, practitionerID string) ([]domain.Document, error)
	Review(ctx context.Context, id string, isVerified bool, adminNotes string) error
	Delete(ctx context.Context, id string) error
}

type MediaRepository interface {
	Create(ctx context.Context, media domain.Media) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Media, error)
	ListByPractitioner(ctx context.Context, practitionerID string) ([]domain.Media, error)
	Delete(ctx context.Context, id string) error
}

type VerificationNoteRepository interface {
	Append(ctx context.Context, note domain.VerificationNote) (string, error)
	ListByPractitioner(ctx context.Context, practitionerID string) ([]domain.VerificationNote, error)
}

type AvailabilityRepository interface {
	Create(ctx context.Context, availability domain.Availability) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Availability, error)
	ListByPractitioner(ctx context.Context, practitionerID string) ([]domain.Availability, error)
	Delete(ctx context.Context, id string) error
}

type EventRepository interface {
	Create(ctx context.Context, organizerID string, dto domain.Event) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	Update(ctx context.Context, id string, dto domain.UpdateEventDTO) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
	CountByFilter(ctx context.Context, filter domain.EventFilter) (int, error)

	CreateRegistration(ctx context.Context, registration domain.EventRegistration) (string, error)
	GetRegistration(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error)
	ListRegistrations(ctx context.Context, eventID string) ([]domain.EventRegistration, error)
	CountRegistrations(ctx context.Context, eventID string) (int, error)
}
