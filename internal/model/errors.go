package model

import "errors"

var (
	// ErrNotFound is returned when a zone or file lookup misses.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when deleting a zone still referenced by files.
	ErrConflict = errors.New("conflict")
	// ErrInvalidCoordinate is returned for latitude/longitude out of range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidZoneSpec is returned when zone creation parameters fail validation.
	ErrInvalidZoneSpec = errors.New("invalid zone spec")
	// ErrDecryptionFailed is returned when an envelope cannot be decrypted.
	// Treated as a data-integrity fault: surfaced, never retried.
	ErrDecryptionFailed = errors.New("decryption failed")
	// ErrUnauthorized is returned when the actor role does not permit the operation.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidFile is returned when file upload parameters fail validation.
	ErrInvalidFile = errors.New("invalid file")
)
