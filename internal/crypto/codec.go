package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mpetrov/geovault/internal/model"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// envelopePrefix versions the envelope format so the cipher mode can change
// without breaking stored ciphertext detection.
const envelopePrefix = "v1:"

// Key is the process-wide symmetric encryption key. Loaded once at startup,
// never mutated; rotating it invalidates all previously produced envelopes.
type Key []byte

// KeyFromHex decodes a hex-encoded 32-byte key.
func KeyFromHex(s string) (Key, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode key hex: %w", err)
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", KeySize, len(raw))
	}
	return Key(raw), nil
}

// GenerateKey produces a cryptographically random key. Provisioning and
// rotation tooling only; never invoked per request.
func GenerateKey() (Key, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return key, nil
}

// Hex returns the hex encoding of the key.
func (k Key) Hex() string {
	return hex.EncodeToString(k)
}

// Codec encrypts and decrypts file payloads with AES-256-GCM. Envelopes are
// text-safe: "v1:" followed by base64(nonce || ciphertext).
type Codec struct {
	aead cipher.AEAD
}

// NewCodec creates a codec bound to the given key.
func NewCodec(key Key) (*Codec, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// Encrypt seals the plaintext with a fresh random nonce and returns the
// transportable envelope.
func (c *Codec) Encrypt(plaintext []byte) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, plaintext, nil)
	return envelopePrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt is the inverse of Encrypt. A wrong key, truncated or corrupted
// envelope yields ErrDecryptionFailed, never garbage bytes.
func (c *Codec) Decrypt(envelope string) ([]byte, error) {
	encoded, ok := strings.CutPrefix(envelope, envelopePrefix)
	if !ok {
		return nil, fmt.Errorf("unknown envelope format: %w", model.ErrDecryptionFailed)
	}

	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", model.ErrDecryptionFailed)
	}

	nonceSize := c.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, fmt.Errorf("envelope too short: %w", model.ErrDecryptionFailed)
	}

	plaintext, err := c.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open envelope: %w", model.ErrDecryptionFailed)
	}

	return plaintext, nil
}
