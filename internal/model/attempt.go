package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AttemptStore defines persistence operations for the audit trail.
// Attempts are write-once; they are removed only as a cascade of their
// parent file's deletion.
type AttemptStore interface {
	Create(ctx context.Context, attempt AccessAttempt) (AccessAttempt, error)
	ListByFileID(ctx context.Context, fileID uuid.UUID) ([]AccessAttempt, error)
}

// AccessAttempt records a single access decision against a file.
type AccessAttempt struct {
	ID         uuid.UUID      `json:"id"`
	FileID     uuid.UUID      `json:"file_id"`
	ActorID    uuid.UUID      `json:"actor_id"`
	Coordinate Coordinate     `json:"coordinate"`
	Allowed    bool           `json:"allowed"`
	Reason     DecisionReason `json:"reason"`
	CreatedAt  time.Time      `json:"created_at"`
}
