package handler

import (
	"context"
	"io"

	"cardaloom/internal/billing"
	"cardaloom/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTenantService is a mock implementation of service.TenantService.
type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) Signup(ctx context.Context, req *model.SignupRequest) (*model.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokenResponse), args.Error(1)
}

func (m *MockTenantService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokenResponse), args.Error(1)
}

func (m *MockTenantService) GetProfile(ctx context.Context, accountID uuid.UUID) (*model.Tenant, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *MockTenantService) UpdateProfile(ctx context.Context, accountID uuid.UUID, req *model.TenantUpdateRequest) (*model.Tenant, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

// MockBillingService is a mock implementation of service.BillingService.
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) StartSession(ctx context.Context, accountID uuid.UUID, priceID string) (*billing.Session, error) {
	args := m.Called(ctx, accountID, priceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Session), args.Error(1)
}

func (m *MockBillingService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	args := m.Called(ctx, payload, signatureHeader)
	return args.Error(0)
}

func (m *MockBillingService) Resync(ctx context.Context, accountID uuid.UUID) (*model.Tenant, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *MockBillingService) SetCancelAtPeriodEnd(ctx context.Context, accountID uuid.UUID, cancel bool) (*model.Tenant, error) {
	args := m.Called(ctx, accountID, cancel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *MockBillingService) ListInvoices(ctx context.Context, accountID uuid.UUID) ([]billing.Invoice, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

// MockMenuService is a mock implementation of service.MenuService.
type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) GetPublicMenu(ctx context.Context, rawTaxID string) (*model.PublicMenu, error) {
	args := m.Called(ctx, rawTaxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublicMenu), args.Error(1)
}

func (m *MockMenuService) ComposeOrder(ctx context.Context, req *model.OrderMessageRequest) (*model.OrderMessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderMessageResponse), args.Error(1)
}

// MockUploadService is a mock implementation of service.UploadService.
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, taxID, originalName, mimeType string, size int64, content io.Reader) (*model.UploadResponse, error) {
	args := m.Called(ctx, taxID, originalName, mimeType, size, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadResponse), args.Error(1)
}

func (m *MockUploadService) List(ctx context.Context, taxID string) ([]model.Image, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Image), args.Error(1)
}

func (m *MockUploadService) Delete(ctx context.Context, taxID string, id uuid.UUID) error {
	args := m.Called(ctx, taxID, id)
	return args.Error(0)
}
