package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products on the public menu. Scoped to one tenant.
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TaxID     string    `json:"-" db:"tax_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Addon is an optional product extra with its own price.
type Addon struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TaxID      string    `json:"-" db:"tax_id"`
	Name       string    `json:"name" db:"name"`
	PriceCents int64     `json:"priceCents" db:"price_cents"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Product is a sellable menu item. AddonIDs is a membership set, not an
// ordered list. Prices are integer cents.
type Product struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	TaxID       string      `json:"-" db:"tax_id"`
	CategoryID  uuid.UUID   `json:"categoryId" db:"category_id"`
	Name        string      `json:"name" db:"name"`
	Description string      `json:"description" db:"description"`
	PriceCents  int64       `json:"priceCents" db:"price_cents"`
	AddonIDs    []uuid.UUID `json:"addonIds" db:"addon_ids"`
	ImageID     *uuid.UUID  `json:"imageId,omitempty" db:"image_id"`
	Visible     bool        `json:"visible" db:"visible"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}

// Image is the metadata record for an uploaded file. The file itself lives
// under a tenant-scoped directory on disk.
type Image struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TaxID        string    `json:"-" db:"tax_id"`
	Path         string    `json:"path" db:"path"`
	OriginalName string    `json:"originalName" db:"original_name"`
	MimeType     string    `json:"mimeType" db:"mime_type"`
	SizeBytes    int64     `json:"sizeBytes" db:"size_bytes"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// CategoryRequest is the payload for creating or updating a category.
type CategoryRequest struct {
	Name string `json:"name"`
}

// AddonRequest is the payload for creating or updating an add-on.
type AddonRequest struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
}

// ProductRequest is the payload for creating or updating a product.
type ProductRequest struct {
	CategoryID  uuid.UUID   `json:"categoryId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	PriceCents  int64       `json:"priceCents"`
	AddonIDs    []uuid.UUID `json:"addonIds"`
	ImageID     *uuid.UUID  `json:"imageId,omitempty"`
	Visible     bool        `json:"visible"`
}

// UploadResponse is returned after a successful image upload.
type UploadResponse struct {
	ImageID uuid.UUID `json:"imageId"`
	Path    string    `json:"path"`
}
