package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"heala/internal/domain"
)

type PractitionerRepo struct {
	db *pgxpool.Pool
}

func NewPractitionerRepository(db *pgxpool.Pool) *PractitionerRepo {
	return &PractitionerRepo{
		db: db,
	}
}

const practitionerSelect = `
	SELECT p.id, p.user_id, p.bio, p.hourly_rate, p.years_of_experience,
	       p.specializations, p.services, p.qualifications, p.languages, p.tags,
	       p.location_name, p.address, p.is_available, p.verification_status,
	       p.profile_completeness, p.cover_photo_url, p.created_at, p.updated_at,
	       u.id, u.first_name, u.last_name, u.email, u.phone, u.avatar_url,
	       u.role, u.is_active, u.created_at, u.updated_at
	FROM practitioners p
	JOIN users u ON p.user_id = u.id
`

func scanPractitioner(row pgx.Row) (*domain.Practitioner, error) {
	var p domain.Practitioner
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Bio,
		&p.HourlyRate,
		&p.YearsOfExperience,
		&p.Specializations,
		&p.Services,
		&p.Qualifications,
		&p.Languages,
		&p.Tags,
		&p.LocationName,
		&p.Address,
		&p.IsAvailable,
		&p.VerificationStatus,
		&p.ProfileCompleteness,
		&p.CoverPhotoURL,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.User.ID,
		&p.User.FirstName,
		&p.User.LastName,
		&p.User.Email,
		&p.User.Phone,
		&p.User.AvatarURL,
		&p.User.Role,
		&p.User.IsActive,
		&p.User.CreatedAt,
		&p.User.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("practitioner: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning practitioner row: %w", err)
	}
	return &p, nil
}

// Create inserts an empty profile: verification always starts at pending and
// only the verification state machine may change it afterwards.
func (r *PractitionerRepo) Create(ctx context.Context, userID string) (string, error) {
	query := `
		INSERT INTO practitioners (id, user_id, bio, hourly_rate, years_of_experience,
			specializations, services, qualifications, languages, tags,
			location_name, address, is_available, verification_status,
			profile_completeness, cover_photo_url, created_at, updated_at)
		VALUES ($1, $2, '', 0, 0, '{}', '{}', '{}', '{}', '{}', '', '', false, $3, 0, '', $4, $4)
		RETURNING id
	`

	id := uuid.New().String()
	now := time.Now()

	err := r.db.QueryRow(ctx, query, id, userID, domain.VerificationStatusPending, now).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating practitioner: %w", err)
	}

	return id, nil
}

func (r *PractitionerRepo) GetByID(ctx context.Context, id string) (*domain.Practitioner, error) {
	return scanPractitioner(r.db.QueryRow(ctx, practitionerSelect+` WHERE p.id = $1`, id))
}

func (r *PractitionerRepo) GetByUserID(ctx context.Context, userID string) (*domain.Practitioner, error) {
	return scanPractitioner(r.db.QueryRow(ctx, practitionerSelect+` WHERE p.user_id = $1`, userID))
}

func (r *PractitionerRepo) Update(ctx context.Context, id string, dto domain.UpdatePractitionerDTO, completeness int) error {
	var updateFields []string
	var args []interface{}
	argCount := 1

	if dto.Bio != nil {
		updateFields = append(updateFields, fmt.Sprintf("bio = $%d", argCount))
		args = append(args, *dto.Bio)
		argCount++
	}
	if dto.HourlyRate != nil {
		updateFields = append(updateFields, fmt.Sprintf("hourly_rate = $%d", argCount))
		args = append(args, *dto.HourlyRate)
		argCount++
	}
	if dto.YearsOfExperience != nil {
		updateFields = append(updateFields, fmt.Sprintf("years_of_experience = $%d", argCount))
		args = append(args, *dto.YearsOfExperience)
		argCount++
	}
	if dto.Specializations != nil {
		updateFields = append(updateFields, fmt.Sprintf("specializations = $%d", argCount))
		args = append(args, *dto.Specializations)
		argCount++
	}
	if dto.Services != nil {
		updateFields = append(updateFields, fmt.Sprintf("services = $%d", argCount))
		args = append(args, *dto.Services)
		argCount++
	}
	if dto.Qualifications != nil {
		updateFields = append(updateFields, fmt.Sprintf("qualifications = $%d", argCount))
		args = append(args, *dto.Qualifications)
		argCount++
	}
	if dto.Languages != nil {
		updateFields = append(updateFields, fmt.Sprintf("languages = $%d", argCount))
		args = append(args, *dto.Languages)
		argCount++
	}
	if dto.Tags != nil {
		updateFields = append(updateFields, fmt.Sprintf("tags = $%d", argCount))
		args = append(args, *dto.Tags)
		argCount++
	}
	if dto.LocationName != nil {
		updateFields = append(updateFields, fmt.Sprintf("location_name = $%d", argCount))
		args = append(args, *dto.LocationName)
		argCount++
	}
	if dto.Address != nil {
		updateFields = append(updateFields, fmt.Sprintf("address = $%d", argCount))
		args = append(args, *dto.Address)
		argCount++
	}
	if dto.IsAvailable != nil {
		updateFields = append(updateFields, fmt.Sprintf("is_available = $%d", argCount))
		args = append(args, *dto.IsAvailable)
		argCount++
	}

	if len(updateFields) == 0 {
		return nil
	}

	updateFields = append(updateFields, fmt.Sprintf("profile_completeness = $%d", argCount))
	args = append(args, completeness)
	argCount++

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE practitioners SET %s WHERE id = $%d`, strings.Join(updateFields, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating practitioner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("practitioner %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PractitionerRepo) List(ctx context.Context, filter domain.PractitionerFilter) ([]domain.Practitioner, error) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.VerificationStatus != nil {
		conditions = append(conditions, fmt.Sprintf("p.verification_status = $%d", argCount))
		args = append(args, *filter.VerificationStatus)
		argCount++
	}
	if filter.IsAvailable != nil {
		conditions = append(conditions, fmt.Sprintf("p.is_available = $%d", argCount))
		args = append(args, *filter.IsAvailable)
		argCount++
	}
	if filter.Specialization != nil {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(p.specializations)", argCount))
		args = append(args, *filter.Specialization)
		argCount++
	}

	query := practitionerSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
		argCount++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, filter.Offset)
		argCount++
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing practitioners: %w", err)
	}
	defer rows.Close()

	practitioners := make([]domain.Practitioner, 0)
	for rows.Next() {
		p, err := scanPractitioner(rows)
		if err != nil {
			return nil, err
		}
		practitioners = append(practitioners, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating practitioner rows: %w", err)
	}

	return practitioners, nil
}

func (r *PractitionerRepo) CountByFilter(ctx context.Context, filter domain.PractitionerFilter) (int, error) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.VerificationStatus != nil {
		conditions = append(conditions, fmt.Sprintf("verification_status = $%d", argCount))
		args = append(args, *filter.VerificationStatus)
		argCount++
	}
	if filter.IsAvailable != nil {
		conditions = append(conditions, fmt.Sprintf("is_available = $%d", argCount))
		args = append(args, *filter.IsAvailable)
		argCount++
	}
	if filter.Specialization != nil {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(specializations)", argCount))
		args = append(args, *filter.Specialization)
		argCount++
	}

	query := `SELECT COUNT(*) FROM practitioners`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting practitioners: %w", err)
	}

	return count, nil
}

func (r *PractitionerRepo) UpdateCoverPhoto(ctx context.Context, id string, photoURL string) error {
	query := `UPDATE practitioners SET cover_photo_url = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, photoURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("updating cover photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("practitioner %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PractitionerRepo) UpdateVerificationStatus(ctx context.Context, id string, next, expected domain.VerificationStatus) error {
	query := `
		UPDATE practitioners
		SET verification_status = $1, updated_at = $2
		WHERE id = $3 AND verification_status = $4
	`

	tag, err := r.db.Exec(ctx, query, next, time.Now(), id, expected)
	if err != nil {
		return fmt.Errorf("updating verification status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Zero rows means either the id is unknown or another writer moved
		// the status first; tell them apart for the caller.
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM practitioners WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("checking practitioner existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("practitioner %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("practitioner %s: %w", id, domain.ErrConcurrentModification)
	}

	return nil
}
