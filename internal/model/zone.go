package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ZoneStore defines persistence operations for safe zones.
type ZoneStore interface {
	Create(ctx context.Context, zone SafeZone) (SafeZone, error)
	GetByID(ctx context.Context, id uuid.UUID) (SafeZone, error)
	List(ctx context.Context) ([]SafeZone, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SafeZone is an admin-defined circular geographic region gating file access.
type SafeZone struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Center       Coordinate `json:"center"`
	RadiusMeters float64    `json:"radius_meters"`
	Description  string     `json:"description,omitempty"`
	CreatorID    uuid.UUID  `json:"creator_id"`
	CreatedAt    time.Time  `json:"created_at"`
	// FileCount is the number of files referencing the zone.
	// Populated by the store on listings, zero elsewhere.
	FileCount int64 `json:"file_count,omitempty"`
}

// CreateZoneParams contains parameters to create a safe zone.
type CreateZoneParams struct {
	Name         string
	Center       Coordinate
	RadiusMeters float64
	Description  string
	CreatorID    uuid.UUID
}
