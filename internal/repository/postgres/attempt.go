package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/mpetrov/geovault/internal/model"
)

var _ model.AttemptStore = (*AttemptRepository)(nil)

type AttemptRepository struct {
	db *Connection
}

func NewAttemptRepository(db *Connection) *AttemptRepository {
	return &AttemptRepository{
		db: db,
	}
}

// Create inserts a write-once audit row. Attempts are never updated and are
// deleted only as a cascade of their parent file.
func (r *AttemptRepository) Create(ctx context.Context, attempt model.AccessAttempt) (model.AccessAttempt, error) {
	query := `
		INSERT INTO access_attempts (id, file_id, actor_id, latitude, longitude, allowed, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, file_id, actor_id, latitude, longitude, allowed, reason, created_at`

	var saved model.AccessAttempt
	err := r.db.QueryRow(ctx, query,
		attempt.ID, attempt.FileID, attempt.ActorID,
		attempt.Coordinate.Lat, attempt.Coordinate.Lng,
		attempt.Allowed, string(attempt.Reason), attempt.CreatedAt,
	).Scan(
		&saved.ID, &saved.FileID, &saved.ActorID,
		&saved.Coordinate.Lat, &saved.Coordinate.Lng,
		&saved.Allowed, &saved.Reason, &saved.CreatedAt,
	)
	if err != nil {
		return model.AccessAttempt{}, err
	}

	return saved, nil
}

func (r *AttemptRepository) ListByFileID(ctx context.Context, fileID uuid.UUID) ([]model.AccessAttempt, error) {
	query := `
		SELECT id, file_id, actor_id, latitude, longitude, allowed, reason, created_at
		FROM access_attempts
		WHERE file_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, fileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.AccessAttempt
	for rows.Next() {
		var attempt model.AccessAttempt
		err := rows.Scan(
			&attempt.ID, &attempt.FileID, &attempt.ActorID,
			&attempt.Coordinate.Lat, &attempt.Coordinate.Lng,
			&attempt.Allowed, &attempt.Reason, &attempt.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, attempt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return attempts, nil
}
