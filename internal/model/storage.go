package model

import "context"

// BlobStorage stores ciphertext envelopes in object storage. Envelopes are
// bounded by the configured maximum file size, so the API works on whole
// byte slices rather than streams.
type BlobStorage interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
