package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"heala/internal/domain"
)

type VerificationNoteRepo struct {
	db *pgxpool.Pool
}

func NewVerificationNoteRepository(db *pgxpool.Pool) *VerificationNoteRepo {
	return &VerificationNoteRepo{
		db: db,
	}
}

func (r *VerificationNoteRepo) Append(ctx context.Context, note domain.VerificationNote) (string, error) {
	query := `
		INSERT INTO verification_notes (id, practitioner_id, admin_id, note, action, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	id := uuid.New().String()

	err := r.db.QueryRow(ctx, query,
		id,
		note.PractitionerID,
		note.AdminID,
		note.Note,
		note.Action,
		time.Now(),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("appending verification note: %w", err)
	}

	return id, nil
}

func (r *VerificationNoteRepo) ListByPractitioner(ctx context.Context, practitionerID string) ([]domain.VerificationNote, error) {
	query := `
		SELECT id, practitioner_id, admin_id, note, action, created_at
		FROM verification_notes
		WHERE practitioner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, practitionerID)
	if err != nil {
		return nil, fmt.Errorf("listing verification notes: %w", err)
	}
	defer rows.Close()

	notes := make([]domain.VerificationNote, 0)
	for rows.Next() {
		var n domain.VerificationNote
		err := rows.Scan(&n.ID, &n.PractitionerID, &n.AdminID, &n.Note, &n.Action, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning verification note row: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating verification note rows: %w", err)
	}

	return notes, nil
}
