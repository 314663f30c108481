package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mpetrov/geovault/internal/model"
)

// MockZoneStore mocks the ZoneStore interface
type MockZoneStore struct {
	mock.Mock
}

func (m *MockZoneStore) Create(ctx context.Context, zone model.SafeZone) (model.SafeZone, error) {
	args := m.Called(ctx, zone)
	return args.Get(0).(model.SafeZone), args.Error(1)
}

func (m *MockZoneStore) GetByID(ctx context.Context, id uuid.UUID) (model.SafeZone, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.SafeZone), args.Error(1)
}

func (m *MockZoneStore) List(ctx context.Context) ([]model.SafeZone, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.SafeZone), args.Error(1)
}

func (m *MockZoneStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFileStore mocks the FileStore interface
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Create(ctx context.Context, file model.EncryptedFile) (model.EncryptedFile, error) {
	args := m.Called(ctx, file)
	return args.Get(0).(model.EncryptedFile), args.Error(1)
}

func (m *MockFileStore) GetByID(ctx context.Context, id uuid.UUID) (model.EncryptedFile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.EncryptedFile), args.Error(1)
}

func (m *MockFileStore) List(ctx context.Context) ([]model.EncryptedFile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.EncryptedFile), args.Error(1)
}

func (m *MockFileStore) CountByZone(ctx context.Context, zoneID uuid.UUID) (int64, error) {
	args := m.Called(ctx, zoneID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFileStore) DeleteWithAttempts(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAttemptStore mocks the AttemptStore interface
type MockAttemptStore struct {
	mock.Mock
}

func (m *MockAttemptStore) Create(ctx context.Context, attempt model.AccessAttempt) (model.AccessAttempt, error) {
	args := m.Called(ctx, attempt)
	return args.Get(0).(model.AccessAttempt), args.Error(1)
}

func (m *MockAttemptStore) ListByFileID(ctx context.Context, fileID uuid.UUID) ([]model.AccessAttempt, error) {
	args := m.Called(ctx, fileID)
	return args.Get(0).([]model.AccessAttempt), args.Error(1)
}

// MockBlobStorage mocks the BlobStorage interface
type MockBlobStorage struct {
	mock.Mock
}

func (m *MockBlobStorage) Put(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}

func (m *MockBlobStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBlobStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockBlobStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockZoneCache mocks the ZoneCache interface
type MockZoneCache struct {
	mock.Mock
}

func (m *MockZoneCache) Get(ctx context.Context, id uuid.UUID) (model.SafeZone, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.SafeZone), args.Bool(1), args.Error(2)
}

func (m *MockZoneCache) Set(ctx context.Context, zone model.SafeZone) error {
	args := m.Called(ctx, zone)
	return args.Error(0)
}

func (m *MockZoneCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockZoneResolver mocks the zoneResolver interface
type MockZoneResolver struct {
	mock.Mock
}

func (m *MockZoneResolver) Get(ctx context.Context, id uuid.UUID) (model.SafeZone, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.SafeZone), args.Error(1)
}

// MockDecider mocks the decider interface
type MockDecider struct {
	mock.Mock
}

func (m *MockDecider) Decide(ctx context.Context, actor model.Actor, file model.EncryptedFile, claimed model.Coordinate) (model.Decision, error) {
	args := m.Called(ctx, actor, file, claimed)
	return args.Get(0).(model.Decision), args.Error(1)
}
