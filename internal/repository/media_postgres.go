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

type MediaRepo struct {
	db *pgxpool.Pool
}

func NewMediaRepository(db *pgxpool.Pool) *MediaRepo {
	return &MediaRepo{
		db: db,
	}
}

const mediaColumns = `id, practitioner_id, media_type, file_name, file_path, display_order, created_at, updated_at`

func scanMedia(row pgx.Row) (*domain.Media, error) {
	var m domain.Media
	err := row.Scan(
		&m.ID,
		&m.PractitionerID,
		&m.MediaType,
		&m.FileName,
		&m.FilePath,
		&m.DisplayOrder,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("media: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning media row: %w", err)
	}
	return &m, nil
}

func (r *MediaRepo) Create(ctx context.Context, media domain.Media) (string, error) {
	query := `
		INSERT INTO practitioner_media (id, practitioner_id, media_type, file_name, file_path, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id
	`

	id := uuid.New().String()
	now := time.Now()

	err := r.db.QueryRow(ctx, query,
		id,
		media.PractitionerID,
		media.MediaType,
		media.FileName,
		media.FilePath,
		media.DisplayOrder,
		now,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating media: %w", err)
	}

	return id, nil
}

func (r *MediaRepo) GetByID(ctx context.Context, id string) (*domain.Media, error) {
	query := fmt.Sprintf(`SELECT %s FROM practitioner_media WHERE id = $1`, mediaColumns)
	return scanMedia(r.db.QueryRow(ctx, query, id))
}

func (r *MediaRepo) ListByPractitioner(ctx context.Context, practitionerID string) ([]domain.Media, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM practitioner_media
		WHERE practitioner_id = $1
		ORDER BY display_order ASC, created_at ASC
	`, mediaColumns)

	rows, err := r.db.Query(ctx, query, practitionerID)
	if err != nil {
		return nil, fmt.Errorf("listing media: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Media, 0)
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating media rows: %w", err)
	}

	return items, nil
}

func (r *MediaRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM practitioner_media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting media: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("media %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
