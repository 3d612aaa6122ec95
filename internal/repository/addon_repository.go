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

// addonRepository implements the AddonRepository interface using PostgreSQL.
type addonRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAddonRepository creates a new PostgreSQL-backed add-on repository.
func NewAddonRepository(pool *pgxpool.Pool, logger zerolog.Logger) AddonRepository {
	return &addonRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "addon").Logger(),
	}
}

func (r *addonRepository) Create(ctx context.Context, addon *model.Addon) error {
	query := `
		INSERT INTO addons (id, tax_id, name, price_cents, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, addon.ID, addon.TaxID, addon.Name, addon.PriceCents, addon.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("tax_id", addon.TaxID).Msg("failed to insert addon")
		return fmt.Errorf("failed to insert addon: %w", err)
	}

	return nil
}

func (r *addonRepository) GetByID(ctx context.Context, taxID string, id uuid.UUID) (*model.Addon, error) {
	query := `
		SELECT id, tax_id, name, price_cents, created_at
		FROM addons
		WHERE tax_id = $1 AND id = $2
	`

	var a model.Addon
	err := r.pool.QueryRow(ctx, query, taxID, id).Scan(&a.ID, &a.TaxID, &a.Name, &a.PriceCents, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("addon_id", id.String()).Msg("addon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("addon_id", id.String()).Msg("failed to query addon")
		return nil, fmt.Errorf("failed to query addon: %w", err)
	}

	return &a, nil
}

func (r *addonRepository) ListByTenant(ctx context.Context, taxID string) ([]model.Addon, error) {
	query := `
		SELECT id, tax_id, name, price_cents, created_at
		FROM addons
		WHERE tax_id = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, taxID)
	if err != nil {
		r.logger.Error().Err(err).Str("tax_id", taxID).Msg("failed to query addons")
		return nil, fmt.Errorf("failed to query addons: %w", err)
	}
	defer rows.Close()

	var addons []model.Addon
	for rows.Next() {
		var a model.Addon
		if err := rows.Scan(&a.ID, &a.TaxID, &a.Name, &a.PriceCents, &a.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan addon row")
			return nil, fmt.Errorf("failed to scan addon: %w", err)
		}
		addons = append(addons, a)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating addon rows")
		return nil, fmt.Errorf("error iterating addons: %w", err)
	}

	return addons, nil
}

func (r *addonRepository) Update(ctx context.Context, addon *model.Addon) error {
	query := `
		UPDATE addons
		SET name = $3, price_cents = $4
		WHERE tax_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query, addon.TaxID, addon.ID, addon.Name, addon.PriceCents)
	if err != nil {
		r.logger.Error().Err(err).Str("addon_id", addon.ID.String()).Msg("failed to update addon")
		return fmt.Errorf("failed to update addon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAddonNotFound
	}

	return nil
}

func (r *addonRepository) Delete(ctx context.Context, taxID string, id uuid.UUID) error {
	query := `DELETE FROM addons WHERE tax_id = $1 AND id = $2`

	tag, err := r.pool.Exec(ctx, query, taxID, id)
	if err != nil {
		r.logger.Error().Err(err).Str("addon_id", id.String()).Msg("failed to delete addon")
		return fmt.Errorf("failed to delete addon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAddonNotFound
	}

	return nil
}

// ValidateAddonsExist checks that every ID belongs to the tenant.
func (r *addonRepository) ValidateAddonsExist(ctx context.Context, taxID string, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
		SELECT COUNT(DISTINCT id)
		FROM addons
		WHERE tax_id = $1 AND id = ANY($2)
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, taxID, ids).Scan(&count); err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to validate addons exist")
		return fmt.Errorf("failed to validate addons exist: %w", err)
	}

	if count != len(ids) {
		r.logger.Warn().
			Int("expected", len(ids)).
			Int("found", count).
			Msg("not all addon IDs exist")
		return model.ErrAddonNotFound
	}

	return nil
}
