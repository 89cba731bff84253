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

type DocumentRepo struct {
	db *pgxpool.Pool
}

func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{
		db: db,
	}
}

const documentColumns = `id, practitioner_id, document_type, file_name, file_path, file_size, mime_type, is_verified, admin_notes, upload_date, created_at, updated_at`

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var doc domain.Document
	err := row.Scan(
		&doc.ID,
		&doc.PractitionerID,
		&doc.DocumentType,
		&doc.FileName,
		&doc.FilePath,
		&doc.FileSize,
		&doc.MimeType,
		&doc.IsVerified,
		&doc.AdminNotes,
		&doc.UploadDate,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("document: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning document row: %w", err)
	}
	return &doc, nil
}

func (r *DocumentRepo) Create(ctx context.Context, doc domain.Document) (string, error) {
	query := `
		INSERT INTO practitioner_documents (id, practitioner_id, document_type, file_name, file_path,
			file_size, mime_type, is_verified, admin_notes, upload_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, '', $8, $8, $8)
		RETURNING id
	`

	id := uuid.New().String()
	now := time.Now()

	err := r.db.QueryRow(ctx, query,
		id,
		doc.PractitionerID,
		doc.DocumentType,
		doc.FileName,
		doc.FilePath,
		doc.FileSize,
		doc.MimeType,
		now,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating document: %w", err)
	}

	return id, nil
}

func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM practitioner_documents WHERE id = $1`, documentColumns)
	return scanDocument(r.db.QueryRow(ctx, query, id))
}

func (r *DocumentRepo) ListByPractitioner(ctx context.Context, practitionerID string) ([]domain.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM practitioner_documents
		WHERE practitioner_id = $1
		ORDER BY upload_date DESC
	`, documentColumns)

	rows, err := r.db.Query(ctx, query, practitionerID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document rows: %w", err)
	}

	return docs, nil
}

func (r *DocumentRepo) Review(ctx context.Context, id string, isVerified bool, adminNotes string) error {
	query := `
		UPDATE practitioner_documents
		SET is_verified = $1, admin_notes = $2, updated_at = $3
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query, isVerified, adminNotes, time.Now(), id)
	if err != nil {
		return fmt.Errorf("reviewing document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM practitioner_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
