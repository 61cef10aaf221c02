package services

import (
	"context"
	"io"
	"time"

	"roomledger/internal/models"
	"roomledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *models.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) CreateIfMissing(ctx context.Context, room *models.Room) (bool, error) {
	args := m.Called(ctx, room)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context) ([]*models.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, id uuid.UUID, patch models.RoomPatch) (*models.Room, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomRepository) LockByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomRepository) ListExpiring(ctx context.Context, from, to time.Time) ([]*models.Room, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) List(ctx context.Context, roomID *uuid.UUID) ([]*models.Tenant, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Tenant, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) DeleteByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

// fakeTx runs fn against the mock repositories and records the outcome.
type fakeTx struct {
	repos      repositories.Repos
	committed  bool
	rolledBack bool
}

func (f *fakeTx) InTx(ctx context.Context, fn func(repos repositories.Repos) error) error {
	if err := fn(f.repos); err != nil {
		f.rolledBack = true
		return err
	}
	f.committed = true
	return nil
}

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) Upload(ctx context.Context, bucketName, objectName, contentType string, reader io.Reader, objectSize int64) error {
	args := m.Called(ctx, bucketName, objectName, contentType, reader, objectSize)
	return args.Error(0)
}

func (m *MockStorageService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func (m *MockStorageService) Ping(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetLeaseSummary(ctx context.Context) (*models.LeaseExpirySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeaseExpirySummary), args.Error(1)
}

func (m *MockCacheService) SetLeaseSummary(ctx context.Context, summary *models.LeaseExpirySummary, ttl time.Duration) error {
	args := m.Called(ctx, summary, ttl)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) Close() error {
	args := m.Called()
	return args.Error(0)
}
