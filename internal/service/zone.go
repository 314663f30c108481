package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mpetrov/geovault/internal/logger"
	"github.com/mpetrov/geovault/internal/model"
)

// ZoneCache caches zones by id with expiry. Misses are not errors.
type ZoneCache interface {
	Get(ctx context.Context, id uuid.UUID) (model.SafeZone, bool, error)
	Set(ctx context.Context, zone model.SafeZone) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// Zone is the safe zone registry. It owns zone lifetime, including the
// referential-integrity check that keeps a zone alive while files point at
// it.
type Zone struct {
	zones     model.ZoneStore
	files     model.FileStore
	cache     ZoneCache
	maxRadius float64
	logger    *logger.Logger
}

func NewZone(
	zones model.ZoneStore,
	files model.FileStore,
	cache ZoneCache,
	maxRadius float64,
	logger *logger.Logger,
) *Zone {
	return &Zone{
		zones:     zones,
		files:     files,
		cache:     cache,
		maxRadius: maxRadius,
		logger:    logger,
	}
}

// Create validates the spec and persists a new zone. Validation failures
// reject the request before any state mutation.
func (s *Zone) Create(ctx context.Context, params model.CreateZoneParams) (model.SafeZone, error) {
	if err := s.validateParams(params); err != nil {
		return model.SafeZone{}, err
	}

	zone := model.SafeZone{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(params.Name),
		Center:       params.Center,
		RadiusMeters: params.RadiusMeters,
		Description:  params.Description,
		CreatorID:    params.CreatorID,
		CreatedAt:    time.Now().UTC(),
	}

	saved, err := s.zones.Create(ctx, zone)
	if err != nil {
		return model.SafeZone{}, fmt.Errorf("failed to create zone: %w", err)
	}

	if err := s.cache.Set(ctx, saved); err != nil {
		s.logger.Warn("failed to cache zone", "zone_id", saved.ID, "error", err)
	}

	return saved, nil
}

// Get resolves a zone by id, consulting the cache first.
func (s *Zone) Get(ctx context.Context, id uuid.UUID) (model.SafeZone, error) {
	zone, found, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Warn("zone cache read failed", "zone_id", id, "error", err)
	}
	if found {
		return zone, nil
	}

	zone, err = s.zones.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.SafeZone{}, model.ErrNotFound
		}
		return model.SafeZone{}, fmt.Errorf("failed to get zone by id: %w", err)
	}

	if err := s.cache.Set(ctx, zone); err != nil {
		s.logger.Warn("failed to cache zone", "zone_id", zone.ID, "error", err)
	}

	return zone, nil
}

// List returns all zones, most recent first, annotated with referencing
// file counts.
func (s *Zone) List(ctx context.Context) ([]model.SafeZone, error) {
	zones, err := s.zones.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}

	return zones, nil
}

// Delete removes a zone. A zone still referenced by files cannot be
// deleted; the check happens here, not in the store.
func (s *Zone) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.files.CountByZone(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count zone files: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("zone %s is referenced by %d files: %w", id, count, model.ErrConflict)
	}

	if err := s.zones.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete zone: %w", err)
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("failed to invalidate zone cache", "zone_id", id, "error", err)
	}

	return nil
}

func (s *Zone) validateParams(params model.CreateZoneParams) error {
	if strings.TrimSpace(params.Name) == "" {
		return fmt.Errorf("zone name is required: %w", model.ErrInvalidZoneSpec)
	}
	if params.RadiusMeters <= 0 {
		return fmt.Errorf("radius must be positive, got %f: %w", params.RadiusMeters, model.ErrInvalidZoneSpec)
	}
	if params.RadiusMeters > s.maxRadius {
		return fmt.Errorf("radius %f exceeds maximum %f: %w", params.RadiusMeters, s.maxRadius, model.ErrInvalidZoneSpec)
	}
	if err := params.Center.Validate(); err != nil {
		return fmt.Errorf("invalid center: %w", model.ErrInvalidZoneSpec)
	}
	return nil
}
