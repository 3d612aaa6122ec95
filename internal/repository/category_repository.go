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

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (id, tax_id, name, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, category.ID, category.TaxID, category.Name, category.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("tax_id", category.TaxID).Msg("failed to insert category")
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, taxID string, id uuid.UUID) (*model.Category, error) {
	query := `
		SELECT id, tax_id, name, created_at
		FROM categories
		WHERE tax_id = $1 AND id = $2
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, taxID, id).Scan(&c.ID, &c.TaxID, &c.Name, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("category_id", id.String()).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

func (r *categoryRepository) ListByTenant(ctx context.Context, taxID string) ([]model.Category, error) {
	query := `
		SELECT id, tax_id, name, created_at
		FROM categories
		WHERE tax_id = $1
		ORDER BY created_at, name
	`

	rows, err := r.pool.Query(ctx, query, taxID)
	if err != nil {
		r.logger.Error().Err(err).Str("tax_id", taxID).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.TaxID, &c.Name, &c.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `
		UPDATE categories
		SET name = $3
		WHERE tax_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query, category.TaxID, category.ID, category.Name)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", category.ID.String()).Msg("failed to update category")
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}

	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, taxID string, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE tax_id = $1 AND id = $2`

	tag, err := r.pool.Exec(ctx, query, taxID, id)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to delete category")
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}

	return nil
}

// CountProducts reports how many products still reference the category.
func (r *categoryRepository) CountProducts(ctx context.Context, taxID string, id uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE tax_id = $1 AND category_id = $2`

	var count int
	if err := r.pool.QueryRow(ctx, query, taxID, id).Scan(&count); err != nil {
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to count category products")
		return 0, fmt.Errorf("failed to count category products: %w", err)
	}

	return count, nil
}
