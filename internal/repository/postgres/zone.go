package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mpetrov/geovault/internal/model"
)

var _ model.ZoneStore = (*ZoneRepository)(nil)

type ZoneRepository struct {
	db *Connection
}

func NewZoneRepository(db *Connection) *ZoneRepository {
	return &ZoneRepository{
		db: db,
	}
}

func (r *ZoneRepository) Create(ctx context.Context, zone model.SafeZone) (model.SafeZone, error) {
	query := `
		INSERT INTO safe_zones (id, name, latitude, longitude, radius_meters, description, creator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, latitude, longitude, radius_meters, description, creator_id, created_at`

	var saved model.SafeZone
	err := r.db.QueryRow(ctx, query,
		zone.ID, zone.Name, zone.Center.Lat, zone.Center.Lng,
		zone.RadiusMeters, zone.Description, zone.CreatorID, zone.CreatedAt,
	).Scan(
		&saved.ID, &saved.Name, &saved.Center.Lat, &saved.Center.Lng,
		&saved.RadiusMeters, &saved.Description, &saved.CreatorID, &saved.CreatedAt,
	)
	if err != nil {
		return model.SafeZone{}, err
	}

	return saved, nil
}

func (r *ZoneRepository) GetByID(ctx context.Context, id uuid.UUID) (model.SafeZone, error) {
	query := `
		SELECT id, name, latitude, longitude, radius_meters, description, creator_id, created_at
		FROM safe_zones
		WHERE id = $1`

	var zone model.SafeZone
	err := r.db.QueryRow(ctx, query, id).Scan(
		&zone.ID, &zone.Name, &zone.Center.Lat, &zone.Center.Lng,
		&zone.RadiusMeters, &zone.Description, &zone.CreatorID, &zone.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SafeZone{}, model.ErrNotFound
		}
		return model.SafeZone{}, err
	}

	return zone, nil
}

// List returns zones most recent first, each annotated with the number of
// files still referencing it.
func (r *ZoneRepository) List(ctx context.Context) ([]model.SafeZone, error) {
	query := `
		SELECT z.id, z.name, z.latitude, z.longitude, z.radius_meters, z.description, z.creator_id, z.created_at,
		       COUNT(f.id) AS file_count
		FROM safe_zones z
		LEFT JOIN files f ON f.zone_id = z.id
		GROUP BY z.id
		ORDER BY z.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []model.SafeZone
	for rows.Next() {
		var zone model.SafeZone
		err := rows.Scan(
			&zone.ID, &zone.Name, &zone.Center.Lat, &zone.Center.Lng,
			&zone.RadiusMeters, &zone.Description, &zone.CreatorID, &zone.CreatedAt,
			&zone.FileCount,
		)
		if err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return zones, nil
}

func (r *ZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM safe_zones WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
