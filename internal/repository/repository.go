package repository

import (
	"context"

	"cardaloom/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepository defines the interface for owner account data access.
type AccountRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new account within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, account *model.Account) error

	// GetByEmail retrieves an account by email. Returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
}

// TenantRepository defines the interface for tenant data access operations.
type TenantRepository interface {
	// Create inserts a new tenant within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, tenant *model.Tenant) error

	// GetByTaxID retrieves a tenant by its normalized tax identifier.
	GetByTaxID(ctx context.Context, taxID string) (*model.Tenant, error)

	// GetByAccountID retrieves the tenant owned by the given account.
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Tenant, error)

	// GetByBillingCustomerID retrieves the tenant bound to a billing
	// provider customer.
	GetByBillingCustomerID(ctx context.Context, customerID string) (*model.Tenant, error)

	// Update persists the tenant's profile fields and operating hours.
	Update(ctx context.Context, tenant *model.Tenant) error

	// SetBillingCustomer records the billing provider customer reference.
	SetBillingCustomer(ctx context.Context, taxID, customerID string) error

	// UpdateSubscription overwrites the tenant's subscription snapshot.
	// A nil subscription clears it.
	UpdateSubscription(ctx context.Context, taxID string, sub *model.Subscription) error
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, taxID string, id uuid.UUID) (*model.Category, error)
	ListByTenant(ctx context.Context, taxID string) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, taxID string, id uuid.UUID) error

	// CountProducts reports how many products still reference the category.
	CountProducts(ctx context.Context, taxID string, id uuid.UUID) (int, error)
}

// AddonRepository defines the interface for add-on data access.
type AddonRepository interface {
	Create(ctx context.Context, addon *model.Addon) error
	GetByID(ctx context.Context, taxID string, id uuid.UUID) (*model.Addon, error)
	ListByTenant(ctx context.Context, taxID string) ([]model.Addon, error)
	Update(ctx context.Context, addon *model.Addon) error
	Delete(ctx context.Context, taxID string, id uuid.UUID) error

	// ValidateAddonsExist checks that every ID belongs to the tenant.
	// Returns model.ErrAddonNotFound if any does not.
	ValidateAddonsExist(ctx context.Context, taxID string, ids []uuid.UUID) error
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, taxID string, id uuid.UUID) (*model.Product, error)
	ListByTenant(ctx context.Context, taxID string) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, taxID string, id uuid.UUID) error

	// RemoveAddonRef drops the add-on from every product that selects it.
	RemoveAddonRef(ctx context.Context, taxID string, addonID uuid.UUID) error

	// ClearImageRef detaches the image from every product that uses it.
	ClearImageRef(ctx context.Context, taxID string, imageID uuid.UUID) error
}

// ImageRepository defines the interface for uploaded image metadata.
type ImageRepository interface {
	Create(ctx context.Context, image *model.Image) error
	GetByID(ctx context.Context, taxID string, id uuid.UUID) (*model.Image, error)
	ListByTenant(ctx context.Context, taxID string) ([]model.Image, error)
	Delete(ctx context.Context, taxID string, id uuid.UUID) error
}
