package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FileStore defines persistence operations for encrypted file metadata.
type FileStore interface {
	Create(ctx context.Context, file EncryptedFile) (EncryptedFile, error)
	GetByID(ctx context.Context, id uuid.UUID) (EncryptedFile, error)
	List(ctx context.Context) ([]EncryptedFile, error)
	CountByZone(ctx context.Context, zoneID uuid.UUID) (int64, error)
	// DeleteWithAttempts removes the file row and all its access attempt
	// rows in a single transaction.
	DeleteWithAttempts(ctx context.Context, id uuid.UUID) error
}

// EncryptedFile is the metadata of a stored file. The ciphertext envelope
// itself lives in object storage under ObjectKey; plaintext is never stored.
type EncryptedFile struct {
	ID           uuid.UUID `json:"id"`
	OriginalName string    `json:"original_name"`
	// SizeBytes is the plaintext size, recorded for display. Must equal the
	// decrypted payload length after a round trip.
	SizeBytes int64     `json:"size_bytes"`
	MimeType  string    `json:"mime_type"`
	ObjectKey string    `json:"-"`
	ZoneID    uuid.UUID `json:"zone_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// StoreFileParams contains parameters to store a new file.
type StoreFileParams struct {
	OriginalName string
	MimeType     string
	Plaintext    []byte
	ZoneID       uuid.UUID
	OwnerID      uuid.UUID
}
