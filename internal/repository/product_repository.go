package repository

import (
	"context"
	"fmt"

	"cardaloom/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, tax_id, category_id, name, description, price_cents, addon_ids, image_id, visible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID,
		product.TaxID,
		product.CategoryID,
		product.Name,
		product.Description,
		product.PriceCents,
		product.AddonIDs,
		product.ImageID,
		product.Visible,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("tax_id", product.TaxID).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

func (r *productRepository) GetByID(ctx context.Context, taxID string, id uuid.UUID) (*model.Product, error) {
	query := `
		SELECT id, tax_id, category_id, name, description, price_cents, addon_ids, image_id, visible, created_at, updated_at
		FROM products
		WHERE tax_id = $1 AND id = $2
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, taxID, id).Scan(
		&p.ID, &p.TaxID, &p.CategoryID, &p.Name, &p.Description, &p.PriceCents,
		&p.AddonIDs, &p.ImageID, &p.Visible, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

func (r *productRepository) ListByTenant(ctx context.Context, taxID string) ([]model.Product, error) {
	query := `
		SELECT id, tax_id, category_id, name, description, price_cents, addon_ids, image_id, visible, created_at, updated_at
		FROM products
		WHERE tax_id = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, taxID)
	if err != nil {
		r.logger.Error().Err(err).Str("tax_id", taxID).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(
			&p.ID, &p.TaxID, &p.CategoryID, &p.Name, &p.Description, &p.PriceCents,
			&p.AddonIDs, &p.ImageID, &p.Visible, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET category_id = $3, name = $4, description = $5, price_cents = $6,
		    addon_ids = $7, image_id = $8, visible = $9, updated_at = CURRENT_TIMESTAMP
		WHERE tax_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		product.TaxID,
		product.ID,
		product.CategoryID,
		product.Name,
		product.Description,
		product.PriceCents,
		product.AddonIDs,
		product.ImageID,
		product.Visible,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// RemoveAddonRef drops the add-on from every product that selects it.
func (r *productRepository) RemoveAddonRef(ctx context.Context, taxID string, addonID uuid.UUID) error {
	query := `
		UPDATE products
		SET addon_ids = array_remove(addon_ids, $2), updated_at = CURRENT_TIMESTAMP
		WHERE tax_id = $1 AND $2 = ANY(addon_ids)
	`

	if _, err := r.pool.Exec(ctx, query, taxID, addonID); err != nil {
		r.logger.Error().Err(err).Str("addon_id", addonID.String()).Msg("failed to remove addon references")
		return fmt.Errorf("failed to remove addon references: %w", err)
	}

	return nil
}

// ClearImageRef detaches the image from every product that uses it.
func (r *productRepository) ClearImageRef(ctx context.Context, taxID string, imageID uuid.UUID) error {
	query := `
		UPDATE products
		SET image_id = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE tax_id = $1 AND image_id = $2
	`

	if _, err := r.pool.Exec(ctx, query, taxID, imageID); err != nil {
		r.logger.Error().Err(err).Str("image_id", imageID.String()).Msg("failed to clear image references")
		return fmt.Errorf("failed to clear image references: %w", err)
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, taxID string, id uuid.UUID) error {
	query := `DELETE FROM products WHERE tax_id = $1 AND id = $2`

	tag, err := r.pool.Exec(ctx, query, taxID, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}
