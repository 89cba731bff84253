package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"heala/internal/domain"
)

type AvailabilityRepo struct {
	db *pgxpool.Pool
}

func NewAvailabilityRepository(db *pgxpool.Pool) *AvailabilityRepo {
	return &AvailabilityRepo{
		db: db,
	}
}

func (r *AvailabilityRepo) Create(ctx context.Context, availability domain.Availability) (string, error) {
	query := `
		INSERT INTO availability (id, practitioner_id, day_of_week, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	id := uuid.New().String()

	err := r.db.QueryRow(ctx, query,
		id,
		availability.PractitionerID,
		availability.DayOfWeek,
		availability.StartTime,
		availability.EndTime,
		time.Now(),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating availability: %w", err)
	}

	return id, nil
}

func (r *AvailabilityRepo) GetByID(ctx context.Context, id string) (*domain.Availability, error) {
	query := `
		SELECT id, practitioner_id, day_of_week, start_time, end_time, created_at
		FROM availability
		WHERE id = $1
	`

	var a domain.Availability
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.PractitionerID,
		&a.DayOfWeek,
		&a.StartTime,
		&a.EndTime,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("availability: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("fetching availability: %w", err)
	}

	return &a, nil
}

func (r *AvailabilityRepo) ListByPractitioner(ctx context.Context, practitionerID string) ([]domain.Availability, error) {
	query := `
		SELECT id, practitioner_id, day_of_week, start_time, end_time, created_at
		FROM availability
		WHERE practitioner_id = $1
		ORDER BY day_of_week ASC, start_time ASC
	`

	rows, err := r.db.Query(ctx, query, practitionerID)
	if err != nil {
		return nil, fmt.Errorf("listing availability: %w", err)
	}
	defer rows.Close()

	windows := make([]domain.Availability, 0)
	for rows.Next() {
		var a domain.Availability
		err := rows.Scan(&a.ID, &a.PractitionerID, &a.DayOfWeek, &a.StartTime, &a.EndTime, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning availability row: %w", err)
		}
		windows = append(windows, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating availability rows: %w", err)
	}

	return windows, nil
}

func (r *AvailabilityRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM availability WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("availability %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
