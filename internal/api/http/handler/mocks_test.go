package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mpetrov/geovault/internal/model"
)

// MockZoneRegistry mocks the ZoneRegistry interface
type MockZoneRegistry struct {
	mock.Mock
}

func (m *MockZoneRegistry) Create(ctx context.Context, params model.CreateZoneParams) (model.SafeZone, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.SafeZone), args.Error(1)
}

func (m *MockZoneRegistry) Get(ctx context.Context, id uuid.UUID) (model.SafeZone, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.SafeZone), args.Error(1)
}

func (m *MockZoneRegistry) List(ctx context.Context) ([]model.SafeZone, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.SafeZone), args.Error(1)
}

func (m *MockZoneRegistry) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFileVault mocks the FileVault interface
type MockFileVault struct {
	mock.Mock
}

func (m *MockFileVault) Store(ctx context.Context, params model.StoreFileParams) (model.EncryptedFile, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.EncryptedFile), args.Error(1)
}

func (m *MockFileVault) Retrieve(ctx context.Context, id uuid.UUID, actor model.Actor, claimed model.Coordinate) (model.EncryptedFile, []byte, model.Decision, error) {
	args := m.Called(ctx, id, actor, claimed)
	var plaintext []byte
	if args.Get(1) != nil {
		plaintext = args.Get(1).([]byte)
	}
	return args.Get(0).(model.EncryptedFile), plaintext, args.Get(2).(model.Decision), args.Error(3)
}

func (m *MockFileVault) Check(ctx context.Context, id uuid.UUID, actor model.Actor, claimed model.Coordinate) (model.Decision, error) {
	args := m.Called(ctx, id, actor, claimed)
	return args.Get(0).(model.Decision), args.Error(1)
}

func (m *MockFileVault) Remove(ctx context.Context, id uuid.UUID, actor model.Actor) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

func (m *MockFileVault) List(ctx context.Context) ([]model.EncryptedFile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.EncryptedFile), args.Error(1)
}

func (m *MockFileVault) Attempts(ctx context.Context, id uuid.UUID, actor model.Actor) ([]model.AccessAttempt, error) {
	args := m.Called(ctx, id, actor)
	return args.Get(0).([]model.AccessAttempt), args.Error(1)
}
