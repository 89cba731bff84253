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

type EventRepo struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepo {
	return &EventRepo{
		db: db,
	}
}

const eventColumns = `id, organizer_id, title, description, event_date, start_time, end_time, location_name, image_url, price, max_attendees, created_at, updated_at`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID,
		&e.OrganizerID,
		&e.Title,
		&e.Description,
		&e.EventDate,
		&e.StartTime,
		&e.EndTime,
		&e.LocationName,
		&e.ImageURL,
		&e.Price,
		&e.MaxAttendees,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("event: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning event row: %w", err)
	}
	return &e, nil
}

func (r *EventRepo) Create(ctx context.Context, organizerID string, event domain.Event) (string, error) {
	query := `
		INSERT INTO events (id, organizer_id, title, description, event_date, start_time, end_time,
			location_name, image_url, price, max_attendees, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING id
	`

	id := uuid.New().String()
	now := time.Now()

	err := r.db.QueryRow(ctx, query,
		id,
		organizerID,
		event.Title,
		event.Description,
		event.EventDate,
		event.StartTime,
		event.EndTime,
		event.LocationName,
		event.ImageURL,
		event.Price,
		event.MaxAttendees,
		now,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating event: %w", err)
	}

	return id, nil
}

func (r *EventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	return scanEvent(r.db.QueryRow(ctx, query, id))
}

func (r *EventRepo) Update(ctx context.Context, id string, dto domain.UpdateEventDTO) error {
	var updateFields []string
	var args []interface{}
	argCount := 1

	if dto.Title != nil {
		updateFields = append(updateFields, fmt.Sprintf("title = $%d", argCount))
		args = append(args, *dto.Title)
		argCount++
	}
	if dto.Description != nil {
		updateFields = append(updateFields, fmt.Sprintf("description = $%d", argCount))
		args = append(args, *dto.Description)
		argCount++
	}
	if dto.EventDate != nil {
		updateFields = append(updateFields, fmt.Sprintf("event_date = $%d", argCount))
		args = append(args, *dto.EventDate)
		argCount++
	}
	if dto.StartTime != nil {
		updateFields = append(updateFields, fmt.Sprintf("start_time = $%d", argCount))
		args = append(args, *dto.StartTime)
		argCount++
	}
	if dto.EndTime != nil {
		updateFields = append(updateFields, fmt.Sprintf("end_time = $%d", argCount))
		args = append(args, *dto.EndTime)
		argCount++
	}
	if dto.LocationName != nil {
		updateFields = append(updateFields, fmt.Sprintf("location_name = $%d", argCount))
		args = append(args, *dto.LocationName)
		argCount++
	}
	if dto.ImageURL != nil {
		updateFields = append(updateFields, fmt.Sprintf("image_url = $%d", argCount))
		args = append(args, *dto.ImageURL)
		argCount++
	}
	if dto.Price != nil {
		updateFields = append(updateFields, fmt.Sprintf("price = $%d", argCount))
		args = append(args, *dto.Price)
		argCount++
	}
	if dto.MaxAttendees != nil {
		updateFields = append(updateFields, fmt.Sprintf("max_attendees = $%d", argCount))
		args = append(args, *dto.MaxAttendees)
		argCount++
	}

	if len(updateFields) == 0 {
		return nil
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE events SET %s WHERE id = $%d`, strings.Join(updateFields, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *EventRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func eventConditions(filter domain.EventFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.OrganizerID != nil {
		conditions = append(conditions, fmt.Sprintf("organizer_id = $%d", argCount))
		args = append(args, *filter.OrganizerID)
		argCount++
	}
	if filter.FromDate != nil {
		conditions = append(conditions, fmt.Sprintf("event_date >= $%d", argCount))
		args = append(args, *filter.FromDate)
		argCount++
	}

	return conditions, args
}

func (r *EventRepo) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	conditions, args := eventConditions(filter)

	query := fmt.Sprintf(`SELECT %s FROM events`, eventColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY event_date ASC, start_time ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event rows: %w", err)
	}

	return events, nil
}

func (r *EventRepo) CountByFilter(ctx context.Context, filter domain.EventFilter) (int, error) {
	conditions, args := eventConditions(filter)

	query := `SELECT COUNT(*) FROM events`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}

	return count, nil
}

func (r *EventRepo) CreateRegistration(ctx context.Context, registration domain.EventRegistration) (string, error) {
	query := `
		INSERT INTO event_registrations (id, event_id, user_id, payment_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	id := uuid.New().String()

	err := r.db.QueryRow(ctx, query,
		id,
		registration.EventID,
		registration.UserID,
		registration.PaymentID,
		time.Now(),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating event registration: %w", err)
	}

	return id, nil
}

func (r *EventRepo) GetRegistration(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	query := `
		SELECT id, event_id, user_id, payment_id, created_at
		FROM event_registrations
		WHERE event_id = $1 AND user_id = $2
	`

	var reg domain.EventRegistration
	err := r.db.QueryRow(ctx, query, eventID, userID).Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.PaymentID,
		&reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("event registration: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("fetching event registration: %w", err)
	}

	return &reg, nil
}

func (r *EventRepo) ListRegistrations(ctx context.Context, eventID string) ([]domain.EventRegistration, error) {
	query := `
		SELECT id, event_id, user_id, payment_id, created_at
		FROM event_registrations
		WHERE event_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("listing event registrations: %w", err)
	}
	defer rows.Close()

	regs := make([]domain.EventRegistration, 0)
	for rows.Next() {
		var reg domain.EventRegistration
		err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.PaymentID, &reg.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning event registration row: %w", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event registration rows: %w", err)
	}

	return regs, nil
}

func (r *EventRepo) CountRegistrations(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM event_registrations WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting event registrations: %w", err)
	}

	return count, nil
}
