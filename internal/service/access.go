package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mpetrov/geovault/internal/geo"
	"github.com/mpetrov/geovault/internal/logger"
	"github.com/mpetrov/geovault/internal/model"
)

// zoneResolver resolves a zone by id. Satisfied by *Zone so decisions go
// through the cached registry path.
type zoneResolver interface {
	Get(ctx context.Context, id uuid.UUID) (model.SafeZone, error)
}

// Access is the decision engine. All role and geofence policy lives here,
// in one place, so it is tested once instead of per endpoint. The claimed
// coordinate is exactly that, a claim; its authenticity is not verified.
type Access struct {
	zones    zoneResolver
	attempts model.AttemptStore
	logger   *logger.Logger
}

func NewAccess(
	zones zoneResolver,
	attempts model.AttemptStore,
	logger *logger.Logger,
) *Access {
	return &Access{
		zones:    zones,
		attempts: attempts,
		logger:   logger,
	}
}

// Decide evaluates whether the actor may access the file from the claimed
// coordinate. Checks run in order, short-circuiting on the first that
// settles the outcome:
//
//  1. admins are allowed unconditionally,
//  2. an unresolvable zone denies,
//  3. a coordinate outside the zone denies,
//  4. otherwise allow.
//
// Every decision is recorded as an access attempt before it is returned;
// a failed audit write fails the decision.
func (s *Access) Decide(ctx context.Context, actor model.Actor, file model.EncryptedFile, claimed model.Coordinate) (model.Decision, error) {
	if err := claimed.Validate(); err != nil {
		return model.Decision{}, err
	}

	decision, err := s.evaluate(ctx, actor, file, claimed)
	if err != nil {
		return model.Decision{}, err
	}

	if err := s.record(ctx, actor, file, claimed, decision); err != nil {
		return model.Decision{}, fmt.Errorf("failed to record access attempt: %w", err)
	}

	s.logger.Info("access decision",
		"file_id", file.ID,
		"actor_id", actor.ID,
		"allowed", decision.Allowed,
		"reason", decision.Reason,
	)

	return decision, nil
}

func (s *Access) evaluate(ctx context.Context, actor model.Actor, file model.EncryptedFile, claimed model.Coordinate) (model.Decision, error) {
	if actor.IsAdmin() {
		return model.Decision{Allowed: true, Reason: model.ReasonAdminOverride}, nil
	}

	zone, err := s.zones.Get(ctx, file.ZoneID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Decision{Allowed: false, Reason: model.ReasonZoneNotFound}, nil
		}
		return model.Decision{}, fmt.Errorf("failed to resolve zone: %w", err)
	}

	if !geo.Contains(zone, claimed) {
		return model.Decision{Allowed: false, Reason: model.ReasonOutsideZone}, nil
	}

	return model.Decision{Allowed: true, Reason: model.ReasonInZone}, nil
}

func (s *Access) record(ctx context.Context, actor model.Actor, file model.EncryptedFile, claimed model.Coordinate, decision model.Decision) error {
	attempt := model.AccessAttempt{
		ID:         uuid.New(),
		FileID:     file.ID,
		ActorID:    actor.ID,
		Coordinate: claimed,
		Allowed:    decision.Allowed,
		Reason:     decision.Reason,
		CreatedAt:  time.Now().UTC(),
	}

	_, err := s.attempts.Create(ctx, attempt)
	return err
}
