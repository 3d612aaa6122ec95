package service

import (
	"context"
	"io"

	"cardaloom/internal/billing"
	"cardaloom/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, tx pgx.Tx, account *model.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

// MockTenantRepository is a mock implementation of TenantRepository.
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tx pgx.Tx, tenant *model.Tenant) error {
	args := m.Called(ctx, tx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByTaxID(ctx context.Context, taxID string) (*model.Tenant, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Tenant, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetByBillingCustomerID(ctx context.Context, customerID string) (*model.Tenant, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *model.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) SetBillingCustomer(ctx context.Context, taxID, customerID string) error {
	args := m.Called(ctx, taxID, customerID)
	return args.Error(0)
}

func (m *MockTenantRepository) UpdateSubscription(ctx context.Context, taxID string, sub *model.Subscription) error {
	args := m.Called(ctx, taxID, sub)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, taxID string, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, taxID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListByTenant(ctx context.Context, taxID string) ([]model.Category, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, taxID string, id uuid.UUID) error {
	args := m.Called(ctx, taxID, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) CountProducts(ctx context.Context, taxID string, id uuid.UUID) (int, error) {
	args := m.Called(ctx, taxID, id)
	return args.Int(0), args.Error(1)
}

// MockAddonRepository is a mock implementation of AddonRepository.
type MockAddonRepository struct {
	mock.Mock
}

func (m *MockAddonRepository) Create(ctx context.Context, addon *model.Addon) error {
	args := m.Called(ctx, addon)
	return args.Error(0)
}

func (m *MockAddonRepository) GetByID(ctx context.Context, taxID string, id uuid.UUID) (*model.Addon, error) {
	args := m.Called(ctx, taxID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Addon), args.Error(1)
}

func (m *MockAddonRepository) ListByTenant(ctx context.Context, taxID string) ([]model.Addon, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Addon), args.Error(1)
}

func (m *MockAddonRepository) Update(ctx context.Context, addon *model.Addon) error {
	args := m.Called(ctx, addon)
	return args.Error(0)
}

func (m *MockAddonRepository) Delete(ctx context.Context, taxID string, id uuid.UUID) error {
	args := m.Called(ctx, taxID, id)
	return args.Error(0)
}

func (m *MockAddonRepository) ValidateAddonsExist(ctx context.Context, taxID string, ids []uuid.UUID) error {
	args := m.Called(ctx, taxID, ids)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, taxID string, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, taxID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) ListByTenant(ctx context.Context, taxID string) ([]model.Product, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, taxID string, id uuid.UUID) error {
	args := m.Called(ctx, taxID, id)
	return args.Error(0)
}

func (m *MockProductRepository) RemoveAddonRef(ctx context.Context, taxID string, addonID uuid.UUID) error {
	args := m.Called(ctx, taxID, addonID)
	return args.Error(0)
}

func (m *MockProductRepository) ClearImageRef(ctx context.Context, taxID string, imageID uuid.UUID) error {
	args := m.Called(ctx, taxID, imageID)
	return args.Error(0)
}

// MockImageRepository is a mock implementation of ImageRepository.
type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Create(ctx context.Context, image *model.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockImageRepository) GetByID(ctx context.Context, taxID string, id uuid.UUID) (*model.Image, error) {
	args := m.Called(ctx, taxID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockImageRepository) ListByTenant(ctx context.Context, taxID string) ([]model.Image, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Image), args.Error(1)
}

func (m *MockImageRepository) Delete(ctx context.Context, taxID string, id uuid.UUID) error {
	args := m.Called(ctx, taxID, id)
	return args.Error(0)
}

// MockGateway is a mock implementation of billing.Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) VerifyEvent(payload []byte, signatureHeader string) (*billing.Event, error) {
	args := m.Called(payload, signatureHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Event), args.Error(1)
}

func (m *MockGateway) CreateCustomer(ctx context.Context, email, name, taxID string) (string, error) {
	args := m.Called(ctx, email, name, taxID)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, customerID, priceID, taxID string) (*billing.Session, error) {
	args := m.Called(ctx, customerID, priceID, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Session), args.Error(1)
}

func (m *MockGateway) CreatePortalSession(ctx context.Context, customerID string) (*billing.Session, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Session), args.Error(1)
}

func (m *MockGateway) GetSubscription(ctx context.Context, id string) (*billing.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Subscription), args.Error(1)
}

func (m *MockGateway) ListSubscriptions(ctx context.Context, customerID string) ([]billing.Subscription, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Subscription), args.Error(1)
}

func (m *MockGateway) SetCancelAtPeriodEnd(ctx context.Context, subscriptionID string, cancel bool) (*billing.Subscription, error) {
	args := m.Called(ctx, subscriptionID, cancel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Subscription), args.Error(1)
}

func (m *MockGateway) ListInvoices(ctx context.Context, customerID string) ([]billing.Invoice, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

// MockStore is a mock implementation of storage.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(taxID, originalName string, content io.Reader) (string, error) {
	args := m.Called(taxID, originalName, content)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Remove(relativePath string) error {
	args := m.Called(relativePath)
	return args.Error(0)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }
