package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mpetrov/geovault/internal/crypto"
	"github.com/mpetrov/geovault/internal/logger"
	"github.com/mpetrov/geovault/internal/model"
)

// decider evaluates access to a file. Satisfied by *Access.
type decider interface {
	Decide(ctx context.Context, actor model.Actor, file model.EncryptedFile, claimed model.Coordinate) (model.Decision, error)
}

// Vault owns encrypted file lifetime: encrypt on write, decrypt on read if
// allowed, cascade audit rows on delete.
type Vault struct {
	files    model.FileStore
	attempts model.AttemptStore
	zones    zoneResolver
	blobs    model.BlobStorage
	codec    *crypto.Codec
	access   decider
	maxBytes int64
	logger   *logger.Logger
}

func NewVault(
	files model.FileStore,
	attempts model.AttemptStore,
	zones zoneResolver,
	blobs model.BlobStorage,
	codec *crypto.Codec,
	access decider,
	maxBytes int64,
	logger *logger.Logger,
) *Vault {
	return &Vault{
		files:    files,
		attempts: attempts,
		zones:    zones,
		blobs:    blobs,
		codec:    codec,
		access:   access,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Store encrypts the plaintext and persists the envelope plus metadata.
// The plaintext is not retained after the envelope is produced. Not
// idempotent: each call mints a new file identity.
func (s *Vault) Store(ctx context.Context, params model.StoreFileParams) (model.EncryptedFile, error) {
	if err := s.validateParams(params); err != nil {
		return model.EncryptedFile{}, err
	}

	if _, err := s.zones.Get(ctx, params.ZoneID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.EncryptedFile{}, fmt.Errorf("zone %s: %w", params.ZoneID, model.ErrNotFound)
		}
		return model.EncryptedFile{}, fmt.Errorf("failed to resolve zone: %w", err)
	}

	envelope, err := s.codec.Encrypt(params.Plaintext)
	if err != nil {
		return model.EncryptedFile{}, fmt.Errorf("failed to encrypt payload: %w", err)
	}

	file := model.EncryptedFile{
		ID:           uuid.New(),
		OriginalName: params.OriginalName,
		SizeBytes:    int64(len(params.Plaintext)),
		MimeType:     params.MimeType,
		ZoneID:       params.ZoneID,
		OwnerID:      params.OwnerID,
		CreatedAt:    time.Now().UTC(),
	}
	file.ObjectKey = objectKey(file.ZoneID, file.ID)

	if err := s.blobs.Put(ctx, file.ObjectKey, []byte(envelope)); err != nil {
		return model.EncryptedFile{}, fmt.Errorf("failed to upload envelope: %w", err)
	}

	saved, err := s.files.Create(ctx, file)
	if err != nil {
		if delErr := s.blobs.Delete(ctx, file.ObjectKey); delErr != nil {
			s.logger.Error("failed to clean up envelope after insert failure", "object_key", file.ObjectKey, "error", delErr)
		}
		return model.EncryptedFile{}, fmt.Errorf("failed to create file record: %w", err)
	}

	return saved, nil
}

// Retrieve loads the file, asks the decision engine, and decrypts only on
// allow. A denial is returned as data in the decision, with no plaintext.
func (s *Vault) Retrieve(ctx context.Context, id uuid.UUID, actor model.Actor, claimed model.Coordinate) (model.EncryptedFile, []byte, model.Decision, error) {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.EncryptedFile{}, nil, model.Decision{}, model.ErrNotFound
		}
		return model.EncryptedFile{}, nil, model.Decision{}, fmt.Errorf("failed to get file by id: %w", err)
	}

	decision, err := s.access.Decide(ctx, actor, file, claimed)
	if err != nil {
		return model.EncryptedFile{}, nil, model.Decision{}, err
	}
	if !decision.Allowed {
		return file, nil, decision, nil
	}

	envelope, err := s.blobs.Get(ctx, file.ObjectKey)
	if err != nil {
		return model.EncryptedFile{}, nil, model.Decision{}, fmt.Errorf("failed to download envelope: %w", err)
	}

	plaintext, err := s.codec.Decrypt(string(envelope))
	if err != nil {
		// Data-integrity fault; log the file id, never key material.
		s.logger.Error("envelope decryption failed", "file_id", file.ID)
		return model.EncryptedFile{}, nil, model.Decision{}, err
	}

	if int64(len(plaintext)) != file.SizeBytes {
		s.logger.Error("decrypted size mismatch", "file_id", file.ID, "expected", file.SizeBytes, "got", len(plaintext))
		return model.EncryptedFile{}, nil, model.Decision{}, fmt.Errorf("decrypted payload size mismatch: %w", model.ErrDecryptionFailed)
	}

	return file, plaintext, decision, nil
}

// Check runs the decision engine without touching the ciphertext. Used by
// audit tooling that wants a decision but no content.
func (s *Vault) Check(ctx context.Context, id uuid.UUID, actor model.Actor, claimed model.Coordinate) (model.Decision, error) {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Decision{}, model.ErrNotFound
		}
		return model.Decision{}, fmt.Errorf("failed to get file by id: %w", err)
	}

	return s.access.Decide(ctx, actor, file, claimed)
}

// Remove deletes a file and cascades its audit rows. Elevated role only.
func (s *Vault) Remove(ctx context.Context, id uuid.UUID, actor model.Actor) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("actor %s: %w", actor.ID, model.ErrUnauthorized)
	}

	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get file by id: %w", err)
	}

	if err := s.files.DeleteWithAttempts(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	if err := s.blobs.Delete(ctx, file.ObjectKey); err != nil {
		s.logger.Error("failed to delete envelope object", "object_key", file.ObjectKey, "error", err)
	}

	return nil
}

// List returns metadata of all stored files, most recent first.
func (s *Vault) List(ctx context.Context) ([]model.EncryptedFile, error) {
	files, err := s.files.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return files, nil
}

// Attempts returns the audit trail for a file. Elevated role only.
func (s *Vault) Attempts(ctx context.Context, id uuid.UUID, actor model.Actor) ([]model.AccessAttempt, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("actor %s: %w", actor.ID, model.ErrUnauthorized)
	}

	if _, err := s.files.GetByID(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get file by id: %w", err)
	}

	attempts, err := s.attempts.ListByFileID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list access attempts: %w", err)
	}

	return attempts, nil
}

func (s *Vault) validateParams(params model.StoreFileParams) error {
	if strings.TrimSpace(params.OriginalName) == "" {
		return fmt.Errorf("file name is required: %w", model.ErrInvalidFile)
	}
	if len(params.Plaintext) == 0 {
		return fmt.Errorf("file payload is empty: %w", model.ErrInvalidFile)
	}
	if int64(len(params.Plaintext)) > s.maxBytes {
		return fmt.Errorf("file payload exceeds %d bytes: %w", s.maxBytes, model.ErrInvalidFile)
	}
	return nil
}

func objectKey(zoneID, fileID uuid.UUID) string {
	return fmt.Sprintf("zone-%s/file-%s", zoneID, fileID)
}
