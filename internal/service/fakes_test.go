package service

import (
	"context"
	"fmt"
	"strconv"

	"heala/internal/domain"
)

type fakePractitionerRepo struct {
	practitioners map[string]*domain.Practitioner
}

func newFakePractitionerRepo(practitioners ...*domain.Practitioner) *fakePractitionerRepo {
	repo := &fakePractitionerRepo{practitioners: make(map[string]*domain.Practitioner)}
	for _, p := range practitioners {
		repo.practitioners[p.ID] = p
	}
	return repo
}

func (r *fakePractitionerRepo) Create(ctx context.Context, userID string) (string, error) {
	id := strconv.Itoa(len(r.practitioners) + 1)
	r.practitioners[id] = &domain.Practitioner{
		ID:                 id,
		UserID:             userID,
		VerificationStatus: domain.VerificationStatusPending,
	}
	return id, nil
}

func (r *fakePractitionerRepo) GetByID(ctx context.Context, id string) (*domain.Practitioner, error) {
	p, ok := r.practitioners[id]
	if !ok {
		return nil, fmt.Errorf("practitioner %s: %w", id, domain.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (r *fakePractitionerRepo) GetByUserID(ctx context.Context, userID string) (*domain.Practitioner, error) {
	for _, p := range r.practitioners {
		if p.UserID == userID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("practitioner for user %s: %w", userID, domain.ErrNotFound)
}

func (r *fakePractitionerRepo) Update(ctx context.Context, id string, dto domain.UpdatePractitionerDTO, completeness int) error {
	p, ok := r.practitioners[id]
	if !ok {
		return fmt.Errorf("practitioner %s: %w", id, domain.ErrNotFound)
	}
	applyUpdate(p, dto)
	p.ProfileCompleteness = completeness
	return nil
}

func (r *fakePractitionerRepo) List(ctx context.Context, filter domain.PractitionerFilter) ([]domain.Practitioner, error) {
	var result []domain.Practitioner
	for _, p := range r.practitioners {
		if filter.VerificationStatus != nil && p.VerificationStatus != *filter.VerificationStatus {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (r *fakePractitionerRepo) CountByFilter(ctx context.Context, filter domain.PractitionerFilter) (int, error) {
	list, _ := r.List(ctx, filter)
	return len(list), nil
}

func (r *fakePractitionerRepo) UpdateCoverPhoto(ctx context.Context, id string, photoURL string) error {
	p, ok := r.practitioners[id]
	if !ok {
		return fmt.Errorf("practitioner %s: %w", id, domain.ErrNotFound)
	}
	p.CoverPhotoURL = photoURL
	return nil
}

func (r *fakePractitionerRepo) UpdateVerificationStatus(ctx context.Context, id string, next, expected domain.VerificationStatus) error {
	p, ok := r.practitioners[id]
	if !ok {
		return fmt.Errorf("practitioner %s: %w", id, domain.ErrNotFound)
	}
	if p.VerificationStatus != expected {
		return fmt.Errorf("practitioner %s: %w", id, domain.ErrConcurrentModification)
	}
	p.VerificationStatus = next
	return nil
}

type fakeBookingRepo struct {
	bookings map[string]*domain.Booking
	nextID   int
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[string]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking domain.Booking) (string, error) {
	r.nextID++
	id := "booking-" + strconv.Itoa(r.nextID)
	booking.ID = id
	booking.Status = domain.BookingStatusPending
	r.bookings[id] = &booking
	return id, nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	var result []domain.Booking
	for _, b := range r.bookings {
		if matchesBookingFilter(b, filter) {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) CountByFilter(ctx context.Context, filter domain.BookingFilter) (int, error) {
	list, _ := r.List(ctx, filter)
	return len(list), nil
}

func matchesBookingFilter(b *domain.Booking, filter domain.BookingFilter) bool {
	if filter.ClientID != nil && b.ClientID != *filter.ClientID {
		return false
	}
	if filter.PractitionerID != nil && b.PractitionerID != *filter.PractitionerID {
		return false
	}
	if filter.Status != nil && b.Status != *filter.Status {
		return false
	}
	if filter.FromDate != nil && b.BookingDate.Before(*filter.FromDate) {
		return false
	}
	if filter.ToDate != nil && b.BookingDate.After(*filter.ToDate) {
		return false
	}
	return true
}

func (r *fakeBookingRepo) SumCompletedAmount(ctx context.Context, practitionerID string) (float64, error) {
	var total float64
	for _, b := range r.bookings {
		if b.PractitionerID == practitionerID && b.Status == domain.BookingStatusCompleted && b.Amount != nil {
			total += *b.Amount
		}
	}
	return total, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id string, next, expected domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	if b.Status != expected {
		return fmt.Errorf("booking %s: %w", id, domain.ErrConcurrentModification)
	}
	b.Status = next
	return nil
}

type fakeDocumentRepo struct {
	documents map[string]*domain.Document
}

func newFakeDocumentRepo(docs ...*domain.Document) *fakeDocumentRepo {
	repo := &fakeDocumentRepo{documents: make(map[string]*domain.Document)}
	for i, doc := range docs {
		if doc.ID == "" {
			doc.ID = "doc-" + strconv.Itoa(i+1)
		}
		repo.documents[doc.ID] = doc
	}
	return repo
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc domain.Document) (string, error) {
	id := "doc-" + strconv.Itoa(len(r.documents)+1)
	doc.ID = id
	r.documents[id] = &doc
	return id, nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	doc, ok := r.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeDocumentRepo) ListByPractitioner(ctx context.Context, practitionerID string) ([]domain.Document, error) {
	var result []domain.Document
	for _, doc := range r.documents {
		if doc.PractitionerID == practitionerID {
			result = append(result, *doc)
		}
	}
	return result, nil
}

func (r *fakeDocumentRepo) Review(ctx context.Context, id string, isVerified bool, adminNotes string) error {
	doc, ok := r.documents[id]
	if !ok {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	doc.IsVerified = isVerified
	doc.AdminNotes = adminNotes
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.documents[id]; !ok {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	delete(r.documents, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, dto domain.CreateUserDTO) (string, error) {
	id := "user-" + strconv.Itoa(len(r.users)+1)
	r.users[id] = &domain.User{
		ID:        id,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Role:      dto.Role,
		IsActive:  true,
	}
	return id, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

func (r *fakeUserRepo) Update(ctx context.Context, id string, dto domain.UpdateUserDTO) error {
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	if dto.FirstName != nil {
		u.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		u.LastName = *dto.LastName
	}
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, role *domain.UserRole, limit, offset int) ([]domain.User, error) {
	var result []domain.User
	for _, u := range r.users {
		if role != nil && u.Role != *role {
			continue
		}
		result = append(result, *u)
	}
	return result, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, role *domain.UserRole) (int, error) {
	list, _ := r.List(ctx, role, 0, 0)
	return len(list), nil
}

type fakeNoteRepo struct {
	notes []domain.VerificationNote
}

func (r *fakeNoteRepo) Append(ctx context.Context, note domain.VerificationNote) (string, error) {
	note.ID = "note-" + strconv.Itoa(len(r.notes)+1)
	r.notes = append(r.notes, note)
	return note.ID, nil
}

func (r *fakeNoteRepo) ListByPractitioner(ctx context.Context, practitionerID string) ([]domain.VerificationNote, error) {
	var result []domain.VerificationNote
	for _, n := range r.notes {
		if n.PractitionerID == practitionerID {
			result = append(result, n)
		}
	}
	return result, nil
}
