package service

import (
	"context"
	"io"

	"cardaloom/internal/billing"
	"cardaloom/internal/model"

	"github.com/google/uuid"
)

// TenantService defines the business logic for accounts and tenant profiles.
type TenantService interface {
	// Signup registers a new restaurant: account plus tenant, atomically.
	// The tax id is normalized before any uniqueness check.
	Signup(ctx context.Context, req *model.SignupRequest) (*model.TokenResponse, error)

	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)

	// GetProfile returns the tenant owned by the account.
	GetProfile(ctx context.Context, accountID uuid.UUID) (*model.Tenant, error)

	// UpdateProfile applies the non-nil fields of the request.
	UpdateProfile(ctx context.Context, accountID uuid.UUID, req *model.TenantUpdateRequest) (*model.Tenant, error)
}

// CatalogService defines the business logic for tenant-scoped catalog CRUD.
// References (category, add-ons, image) are validated at write time.
type CatalogService interface {
	CreateCategory(ctx context.Context, taxID string, req *model.CategoryRequest) (*model.Category, error)
	ListCategories(ctx context.Context, taxID string) ([]model.Category, error)
	UpdateCategory(ctx context.Context, taxID string, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, taxID string, id uuid.UUID) error

	CreateAddon(ctx context.Context, taxID string, req *model.AddonRequest) (*model.Addon, error)
	ListAddons(ctx context.Context, taxID string) ([]model.Addon, error)
	UpdateAddon(ctx context.Context, taxID string, id uuid.UUID, req *model.AddonRequest) (*model.Addon, error)
	DeleteAddon(ctx context.Context, taxID string, id uuid.UUID) error

	CreateProduct(ctx context.Context, taxID string, req *model.ProductRequest) (*model.Product, error)
	ListProducts(ctx context.Context, taxID string) ([]model.Product, error)
	UpdateProduct(ctx context.Context, taxID string, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, taxID string, id uuid.UUID) error
}

// BillingService defines subscription lifecycle logic against the billing
// provider.
type BillingService interface {
	// StartSession ensures a provider customer exists (persisting the
	// reference before any session is created), then opens a portal session
	// for active subscribers or a checkout session otherwise.
	StartSession(ctx context.Context, accountID uuid.UUID, priceID string) (*billing.Session, error)

	// HandleWebhook verifies and applies one webhook delivery. Deliveries
	// that cannot be matched to a tenant are dropped without error so the
	// provider does not retry them.
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error

	// Resync pulls the provider's current subscription state and overwrites
	// the local snapshot; with no subscription at all it writes the local
	// inactive sentinel.
	Resync(ctx context.Context, accountID uuid.UUID) (*model.Tenant, error)

	// SetCancelAtPeriodEnd toggles end-of-period cancellation.
	SetCancelAtPeriodEnd(ctx context.Context, accountID uuid.UUID, cancel bool) (*model.Tenant, error)

	// ListInvoices lists the tenant's provider invoices.
	ListInvoices(ctx context.Context, accountID uuid.UUID) ([]billing.Invoice, error)
}

// MenuService defines the public, unauthenticated surface.
type MenuService interface {
	// GetPublicMenu loads the tenant and its catalog in one fan-out read.
	GetPublicMenu(ctx context.Context, rawTaxID string) (*model.PublicMenu, error)

	// ComposeOrder prices the cart and renders the WhatsApp order message.
	// Returns model.ErrShopClosed outside operating hours.
	ComposeOrder(ctx context.Context, req *model.OrderMessageRequest) (*model.OrderMessageResponse, error)
}

// UploadService defines image upload handling.
type UploadService interface {
	Upload(ctx context.Context, taxID, originalName, mimeType string, size int64, content io.Reader) (*model.UploadResponse, error)
	List(ctx context.Context, taxID string) ([]model.Image, error)
	Delete(ctx context.Context, taxID string, id uuid.UUID) error
}
