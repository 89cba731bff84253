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

type BookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{
		db: db,
	}
}

const bookingSelect = `
	SELECT b.id, b.client_id, b.practitioner_id, b.booking_date, b.start_time, b.end_time,
	       b.status, b.amount, b.notes, b.payment_id, b.created_at, b.updated_at,
	       cu.first_name || ' ' || cu.last_name,
	       pu.first_name || ' ' || pu.last_name
	FROM bookings b
	JOIN users cu ON b.client_id = cu.id
	JOIN practitioners p ON b.practitioner_id = p.id
	JOIN users pu ON p.user_id = pu.id
`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.ClientID,
		&b.PractitionerID,
		&b.BookingDate,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.Amount,
		&b.Notes,
		&b.PaymentID,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.ClientName,
		&b.PractitionerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("booking: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning booking row: %w", err)
	}
	return &b, nil
}

func (r *BookingRepo) Create(ctx context.Context, booking domain.Booking) (string, error) {
	query := `
		INSERT INTO bookings (id, client_id, practitioner_id, booking_date, start_time, end_time,
			status, amount, notes, payment_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING id
	`

	id := uuid.New().String()
	now := time.Now()

	err := r.db.QueryRow(ctx, query,
		id,
		booking.ClientID,
		booking.PractitionerID,
		booking.BookingDate,
		booking.StartTime,
		booking.EndTime,
		domain.BookingStatusPending,
		booking.Amount,
		booking.Notes,
		booking.PaymentID,
		now,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating booking: %w", err)
	}

	return id, nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, id))
}

func bookingConditions(filter domain.BookingFilter, prefix string) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("%sclient_id = $%d", prefix, argCount))
		args = append(args, *filter.ClientID)
		argCount++
	}
	if filter.PractitionerID != nil {
		conditions = append(conditions, fmt.Sprintf("%spractitioner_id = $%d", prefix, argCount))
		args = append(args, *filter.PractitionerID)
		argCount++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("%sstatus = $%d", prefix, argCount))
		args = append(args, *filter.Status)
		argCount++
	}
	if filter.FromDate != nil {
		conditions = append(conditions, fmt.Sprintf("%sbooking_date >= $%d", prefix, argCount))
		args = append(args, *filter.FromDate)
		argCount++
	}
	if filter.ToDate != nil {
		conditions = append(conditions, fmt.Sprintf("%sbooking_date <= $%d", prefix, argCount))
		args = append(args, *filter.ToDate)
		argCount++
	}

	return conditions, args
}

func (r *BookingRepo) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	conditions, args := bookingConditions(filter, "b.")

	query := bookingSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// Canonical ordering: date and start time, created_at as the tiebreak.
	if filter.OrderDesc {
		query += " ORDER BY b.booking_date DESC, b.start_time DESC, b.created_at ASC"
	} else {
		query += " ORDER BY b.booking_date ASC, b.start_time ASC, b.created_at ASC"
	}

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating booking rows: %w", err)
	}

	return bookings, nil
}

func (r *BookingRepo) CountByFilter(ctx context.Context, filter domain.BookingFilter) (int, error) {
	conditions, args := bookingConditions(filter, "")

	query := `SELECT COUNT(*) FROM bookings`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting bookings: %w", err)
	}

	return count, nil
}

func (r *BookingRepo) SumCompletedAmount(ctx context.Context, practitionerID string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM bookings
		WHERE practitioner_id = $1 AND status = $2
	`

	var total float64
	err := r.db.QueryRow(ctx, query, practitionerID, domain.BookingStatusCompleted).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing completed bookings: %w", err)
	}

	return total, nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, next, expected domain.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`

	tag, err := r.db.Exec(ctx, query, next, time.Now(), id, expected)
	if err != nil {
		return fmt.Errorf("updating booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("checking booking existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("booking %s: %w", id, domain.ErrConcurrentModification)
	}

	return nil
}
