package handlers

import (
	"context"

	"roomledger/internal/models"
	"roomledger/internal/presentation"
	"roomledger/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) List(ctx context.Context) ([]*models.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}

func (m *MockRoomService) ListForDisplay(ctx context.Context) ([]*models.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}

func (m *MockRoomService) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) Create(ctx context.Context, req *services.CreateRoomRequest) (*models.Room, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) Seed(ctx context.Context, names []string) (int, error) {
	args := m.Called(ctx, names)
	return args.Int(0), args.Error(1)
}

func (m *MockRoomService) Update(ctx context.Context, id uuid.UUID, req *services.UpdateRoomRequest) (*models.Room, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomService) ExpiringLeases(ctx context.Context, withinDays int) ([]*models.Room, error) {
	args := m.Called(ctx, withinDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}

type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) List(ctx context.Context, roomID *uuid.UUID) ([]*models.Tenant, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

func (m *MockTenantService) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Tenant, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

func (m *MockTenantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantService) Create(ctx context.Context, req *services.TenantRequest) (*models.Tenant, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantService) Update(ctx context.Context, id uuid.UUID, req *services.TenantRequest) (*models.Tenant, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantService) EmptyRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) Register(ctx context.Context, roomID uuid.UUID, req *services.RegistrationRequest) (*models.Room, error) {
	args := m.Called(ctx, roomID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) OccupancyTable(ctx context.Context, opts presentation.TableOptions) (*presentation.Table, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*presentation.Table), args.Error(1)
}

func (m *MockReportService) OccupancyPDF(ctx context.Context, opts presentation.TableOptions) ([]byte, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportService) PublishOccupancyPDF(ctx context.Context, opts presentation.TableOptions) (*services.PublishedReport, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PublishedReport), args.Error(1)
}

func (m *MockReportService) ExpiringLeases(ctx context.Context) (*models.LeaseExpirySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeaseExpirySummary), args.Error(1)
}

func (m *MockReportService) RefreshExpiringLeases(ctx context.Context) (*models.LeaseExpirySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeaseExpirySummary), args.Error(1)
}
