package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema is the full table layout. Statements are idempotent so the schema
// can be re-applied on every startup and in test setups.
const Schema = `
	CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY,
		email VARCHAR(140) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		display_name VARCHAR(140) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tenants (
		tax_id VARCHAR(30) PRIMARY KEY,
		name VARCHAR(180) NOT NULL,
		owner_name VARCHAR(140) NOT NULL,
		email VARCHAR(140) NOT NULL,
		address VARCHAR(255) NOT NULL DEFAULT '',
		whatsapp VARCHAR(30) NOT NULL DEFAULT '',
		account_id UUID NOT NULL REFERENCES accounts(id),
		billing_customer_id VARCHAR(140) NOT NULL DEFAULT '',
		hours JSONB NOT NULL DEFAULT '{}',
		subscription_id VARCHAR(140),
		price_id VARCHAR(140),
		current_period_end BIGINT,
		subscription_status VARCHAR(30),
		cancel_at_period_end BOOLEAN,
		event_created BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_tenants_account_id ON tenants(account_id);
	CREATE INDEX IF NOT EXISTS idx_tenants_billing_customer_id ON tenants(billing_customer_id);

	CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		tax_id VARCHAR(30) NOT NULL REFERENCES tenants(tax_id) ON DELETE CASCADE,
		name VARCHAR(140) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_categories_tax_id ON categories(tax_id);

	CREATE TABLE IF NOT EXISTS addons (
		id UUID PRIMARY KEY,
		tax_id VARCHAR(30) NOT NULL REFERENCES tenants(tax_id) ON DELETE CASCADE,
		name VARCHAR(140) NOT NULL,
		price_cents BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_addons_tax_id ON addons(tax_id);

	CREATE TABLE IF NOT EXISTS images (
		id UUID PRIMARY KEY,
		tax_id VARCHAR(30) NOT NULL REFERENCES tenants(tax_id) ON DELETE CASCADE,
		path VARCHAR(255) NOT NULL,
		original_name VARCHAR(255) NOT NULL,
		mime_type VARCHAR(100) NOT NULL,
		size_bytes BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_images_tax_id ON images(tax_id);

	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		tax_id VARCHAR(30) NOT NULL REFERENCES tenants(tax_id) ON DELETE CASCADE,
		category_id UUID NOT NULL REFERENCES categories(id),
		name VARCHAR(180) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price_cents BIGINT NOT NULL DEFAULT 0,
		addon_ids UUID[] NOT NULL DEFAULT '{}',
		image_id UUID REFERENCES images(id),
		visible BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_products_tax_id ON products(tax_id);
	CREATE INDEX IF NOT EXISTS idx_products_category_id ON products(category_id);
`

// Migrate applies the schema to the connected database.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Info().Msg("database schema applied")
	return nil
}
