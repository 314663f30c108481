package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mpetrov/geovault/internal/model"
)

var _ model.FileStore = (*FileRepository)(nil)

type FileRepository struct {
	db *Connection
}

func NewFileRepository(db *Connection) *FileRepository {
	return &FileRepository{
		db: db,
	}
}

func (r *FileRepository) Create(ctx context.Context, file model.EncryptedFile) (model.EncryptedFile, error) {
	query := `
		INSERT INTO files (id, original_name, size_bytes, mime_type, object_key, zone_id, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, original_name, size_bytes, mime_type, object_key, zone_id, owner_id, created_at`

	var saved model.EncryptedFile
	err := r.db.QueryRow(ctx, query,
		file.ID, file.OriginalName, file.SizeBytes, file.MimeType,
		file.ObjectKey, file.ZoneID, file.OwnerID, file.CreatedAt,
	).Scan(
		&saved.ID, &saved.OriginalName, &saved.SizeBytes, &saved.MimeType,
		&saved.ObjectKey, &saved.ZoneID, &saved.OwnerID, &saved.CreatedAt,
	)
	if err != nil {
		return model.EncryptedFile{}, err
	}

	return saved, nil
}

func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (model.EncryptedFile, error) {
	query := `
		SELECT id, original_name, size_bytes, mime_type, object_key, zone_id, owner_id, created_at
		FROM files
		WHERE id = $1`

	var file model.EncryptedFile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&file.ID, &file.OriginalName, &file.SizeBytes, &file.MimeType,
		&file.ObjectKey, &file.ZoneID, &file.OwnerID, &file.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.EncryptedFile{}, model.ErrNotFound
		}
		return model.EncryptedFile{}, err
	}

	return file, nil
}

func (r *FileRepository) List(ctx context.Context) ([]model.EncryptedFile, error) {
	query := `
		SELECT id, original_name, size_bytes, mime_type, object_key, zone_id, owner_id, created_at
		FROM files
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []model.EncryptedFile
	for rows.Next() {
		var file model.EncryptedFile
		err := rows.Scan(
			&file.ID, &file.OriginalName, &file.SizeBytes, &file.MimeType,
			&file.ObjectKey, &file.ZoneID, &file.OwnerID, &file.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return files, nil
}

func (r *FileRepository) CountByZone(ctx context.Context, zoneID uuid.UUID) (int64, error) {
	const query = `SELECT COUNT(*) FROM files WHERE zone_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, zoneID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// DeleteWithAttempts removes the audit rows and the file row in one
// transaction, so a concurrent retrieve either sees the full record or
// nothing.
func (r *FileRepository) DeleteWithAttempts(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM access_attempts WHERE file_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete access attempts: %w", err)
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
