package service

import (
	"context"
	crand "crypto/rand"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mpetrov/geovault/internal/crypto"
	"github.com/mpetrov/geovault/internal/model"
	"github.com/mpetrov/geovault/internal/testutil"
)

type vaultMocks struct {
	files    *MockFileStore
	attempts *MockAttemptStore
	zones    *MockZoneResolver
	blobs    *MockBlobStorage
	access   *MockDecider
}

func newTestVault(t *testing.T, maxBytes int64) (*Vault, *crypto.Codec, vaultMocks) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	codec, err := crypto.NewCodec(key)
	require.NoError(t, err)

	m := vaultMocks{
		files:    &MockFileStore{},
		attempts: &MockAttemptStore{},
		zones:    &MockZoneResolver{},
		blobs:    &MockBlobStorage{},
		access:   &MockDecider{},
	}
	vault := NewVault(m.files, m.attempts, m.zones, m.blobs, codec, m.access, maxBytes, testutil.MakeNoopLogger())
	return vault, codec, m
}

func TestVaultService_Store(t *testing.T) {
	vault, codec, m := newTestVault(t, 1024)

	zoneID := uuid.New()
	ownerID := uuid.New()
	plaintext := []byte("confidential payload")

	m.zones.On("Get", mock.Anything, zoneID).Return(model.SafeZone{ID: zoneID}, nil)

	var uploaded []byte
	m.blobs.On("Put", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { uploaded = args.Get(2).([]byte) }).
		Return(nil)
	m.files.On("Create", mock.Anything, mock.MatchedBy(func(f model.EncryptedFile) bool {
		return f.OriginalName == "report.pdf" &&
			f.SizeBytes == int64(len(plaintext)) &&
			f.MimeType == "application/pdf" &&
			f.ZoneID == zoneID &&
			f.OwnerID == ownerID &&
			f.ObjectKey != ""
	})).Return(model.EncryptedFile{ID: uuid.New()}, nil)

	_, err := vault.Store(context.Background(), model.StoreFileParams{
		OriginalName: "report.pdf",
		MimeType:     "application/pdf",
		ZoneID:       zoneID,
		OwnerID:      ownerID,
		Plaintext:    plaintext,
	})

	require.NoError(t, err)
	m.files.AssertExpectations(t)

	// The blob must hold a decryptable envelope, never the plaintext.
	assert.NotContains(t, string(uploaded), string(plaintext))
	decrypted, err := codec.Decrypt(string(uploaded))
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestVaultService_Store_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params model.StoreFileParams
	}{
		{
			name:   "empty name",
			params: model.StoreFileParams{OriginalName: " ", ZoneID: uuid.New(), Plaintext: []byte("x")},
		},
		{
			name:   "empty payload",
			params: model.StoreFileParams{OriginalName: "a.txt", ZoneID: uuid.New()},
		},
		{
			name:   "payload over limit",
			params: model.StoreFileParams{OriginalName: "a.txt", ZoneID: uuid.New(), Plaintext: make([]byte, 1025)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vault, _, m := newTestVault(t, 1024)

			_, err := vault.Store(context.Background(), tt.params)

			assert.ErrorIs(t, err, model.ErrInvalidFile)
			m.blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestVaultService_Store_ZoneNotFound(t *testing.T) {
	vault, _, m := newTestVault(t, 1024)

	zoneID := uuid.New()
	m.zones.On("Get", mock.Anything, zoneID).Return(model.SafeZone{}, model.ErrNotFound)

	_, err := vault.Store(context.Background(), model.StoreFileParams{
		OriginalName: "a.txt",
		ZoneID:       zoneID,
		Plaintext:    []byte("x"),
	})

	assert.ErrorIs(t, err, model.ErrNotFound)
	m.blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func TestVaultService_Store_CleansUpBlobOnInsertFailure(t *testing.T) {
	vault, _, m := newTestVault(t, 1024)

	zoneID := uuid.New()
	m.zones.On("Get", mock.Anything, zoneID).Return(model.SafeZone{ID: zoneID}, nil)
	m.blobs.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.files.On("Create", mock.Anything, mock.Anything).Return(model.EncryptedFile{}, errors.New("insert failed"))
	m.blobs.On("Delete", mock.Anything, mock.Anything).Return(nil)

	_, err := vault.Store(context.Background(), model.StoreFileParams{
		OriginalName: "a.txt",
		ZoneID:       zoneID,
		Plaintext:    []byte("x"),
	})

	require.Error(t, err)
	m.blobs.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestVaultService_Retrieve_RoundTrip(t *testing.T) {
	vault, codec, m := newTestVault(t, 1<<20)

	plaintext := make([]byte, 10*1024)
	_, err := crand.Read(plaintext)
	require.NoError(t, err)

	envelope, err := codec.Encrypt(plaintext)
	require.NoError(t, err)

	fileID := uuid.New()
	file := model.EncryptedFile{
		ID:        fileID,
		SizeBytes: int64(len(plaintext)),
		ObjectKey: "zone-x/file-y",
		ZoneID:    uuid.New(),
	}
	actor := model.Actor{ID: uuid.New(), Role: model.RoleUser}
	claimed := model.Coordinate{Lat: 37.7749, Lng: -122.4194}

	m.files.On("GetByID", mock.Anything, fileID).Return(file, nil)
	m.access.On("Decide", mock.Anything, actor, file, claimed).
		Return(model.Decision{Allowed: true, Reason: model.ReasonInZone}, nil)
	m.blobs.On("Get", mock.Anything, file.ObjectKey).Return([]byte(envelope), nil)

	gotFile, gotPlaintext, decision, err := vault.Retrieve(context.Background(), fileID, actor, claimed)

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, file, gotFile)
	assert.Equal(t, plaintext, gotPlaintext)
}

func TestVaultService_Retrieve_DenyReturnsNoPlaintext(t *testing.T) {
	vault, _, m := newTestVault(t, 1<<20)

	fileID := uuid.New()
	file := model.EncryptedFile{ID: fileID, ObjectKey: "zone-x/file-y", ZoneID: uuid.New()}
	actor := model.Actor{ID: uuid.New(), Role: model.RoleUser}
	claimed := model.Coordinate{Lat: 0, Lng: 0}
	denied := model.Decision{Allowed: false, Reason: model.ReasonOutsideZone}

	m.files.On("GetByID", mock.Anything, fileID).Return(file, nil)
	m.access.On("Decide", mock.Anything, actor, file, claimed).Return(denied, nil)

	gotFile, gotPlaintext, decision, err := vault.Retrieve(context.Background(), fileID, actor, claimed)

	require.NoError(t, err)
	assert.Equal(t, denied, decision)
	assert.Equal(t, file, gotFile)
	assert.Nil(t, gotPlaintext)
	m.blobs.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestVaultService_Retrieve_CorruptedEnvelope(t *testing.T) {
	vault, _, m := newTestVault(t, 1<<20)

	fileID := uuid.New()
	file := model.EncryptedFile{ID: fileID, SizeBytes: 4, ObjectKey: "zone-x/file-y", ZoneID: uuid.New()}
	actor := model.Actor{ID: uuid.New(), Role: model.RoleUser}
	claimed := model.Coordinate{Lat: 0, Lng: 0}

	m.files.On("GetByID", mock.Anything, fileID).Return(file, nil)
	m.access.On("Decide", mock.Anything, actor, file, claimed).
		Return(model.Decision{Allowed: true, Reason: model.ReasonInZone}, nil)
	m.blobs.On("Get", mock.Anything, file.ObjectKey).Return([]byte("v1:not-base64!!"), nil)

	_, _, _, err := vault.Retrieve(context.Background(), fileID, actor, claimed)

	assert.ErrorIs(t, err, model.ErrDecryptionFailed)
}

func TestVaultService_Retrieve_NotFound(t *testing.T) {
	vault, _, m := newTestVault(t, 1<<20)

	fileID := uuid.New()
	m.files.On("GetByID", mock.Anything, fileID).Return(model.EncryptedFile{}, model.ErrNotFound)

	_, _, _, err := vault.Retrieve(context.Background(), fileID, model.Actor{}, model.Coordinate{})

	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestVaultService_Check(t *testing.T) {
	vault, _, m := newTestVault(t, 1<<20)

	fileID := uuid.New()
	file := model.EncryptedFile{ID: fileID, ObjectKey: "zone-x/file-y", ZoneID: uuid.New()}
	actor := model.Actor{ID: uuid.New(), Role: model.RoleUser}
	claimed := model.Coordinate{Lat: 1, Lng: 1}
	expected := model.Decision{Allowed: false, Reason: model.ReasonOutsideZone}

	m.files.On("GetByID", mock.Anything, fileID).Return(file, nil)
	m.access.On("Decide", mock.Anything, actor, file, claimed).Return(expected, nil)

	decision, err := vault.Check(context.Background(), fileID, actor, claimed)

	require.NoError(t, err)
	assert.Equal(t, expected, decision)
	m.blobs.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestVaultService_Remove(t *testing.T) {
	t.Run("non-admin is rejected", func(t *testing.T) {
		vault, _, m := newTestVault(t, 1<<20)

		err := vault.Remove(context.Background(), uuid.New(), model.Actor{ID: uuid.New(), Role: model.RoleUser})

		assert.ErrorIs(t, err, model.ErrUnauthorized)
		m.files.AssertNotCalled(t, "DeleteWithAttempts", mock.Anything, mock.Anything)
	})

	t.Run("admin cascades file and attempts", func(t *testing.T) {
		vault, _, m := newTestVault(t, 1<<20)

		fileID := uuid.New()
		file := model.EncryptedFile{ID: fileID, ObjectKey: "zone-x/file-y"}
		m.files.On("GetByID", mock.Anything, fileID).Return(file, nil)
		m.files.On("DeleteWithAttempts", mock.Anything, fileID).Return(nil)
		m.blobs.On("Delete", mock.Anything, file.ObjectKey).Return(nil)

		err := vault.Remove(context.Background(), fileID, model.Actor{ID: uuid.New(), Role: model.RoleAdmin})

		require.NoError(t, err)
		m.files.AssertExpectations(t)
		m.blobs.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		vault, _, m := newTestVault(t, 1<<20)

		fileID := uuid.New()
		m.files.On("GetByID", mock.Anything, fileID).Return(model.EncryptedFile{}, model.ErrNotFound)

		err := vault.Remove(context.Background(), fileID, model.Actor{ID: uuid.New(), Role: model.RoleAdmin})

		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestVaultService_Attempts(t *testing.T) {
	t.Run("non-admin is rejected", func(t *testing.T) {
		vault, _, m := newTestVault(t, 1<<20)

		_, err := vault.Attempts(context.Background(), uuid.New(), model.Actor{ID: uuid.New(), Role: model.RoleUser})

		assert.ErrorIs(t, err, model.ErrUnauthorized)
		m.attempts.AssertNotCalled(t, "ListByFileID", mock.Anything, mock.Anything)
	})

	t.Run("admin gets trail", func(t *testing.T) {
		vault, _, m := newTestVault(t, 1<<20)

		fileID := uuid.New()
		trail := []model.AccessAttempt{
			{ID: uuid.New(), FileID: fileID, Allowed: false, Reason: model.ReasonOutsideZone},
			{ID: uuid.New(), FileID: fileID, Allowed: true, Reason: model.ReasonInZone},
		}
		m.files.On("GetByID", mock.Anything, fileID).Return(model.EncryptedFile{ID: fileID}, nil)
		m.attempts.On("ListByFileID", mock.Anything, fileID).Return(trail, nil)

		got, err := vault.Attempts(context.Background(), fileID, model.Actor{ID: uuid.New(), Role: model.RoleAdmin})

		require.NoError(t, err)
		assert.Equal(t, trail, got)
	})
}
