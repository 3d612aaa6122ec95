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

// imageRepository implements the ImageRepository interface using PostgreSQL.
type imageRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewImageRepository creates a new PostgreSQL-backed image repository.
func NewImageRepository(pool *pgxpool.Pool, logger zerolog.Logger) ImageRepository {
	return &imageRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "image").Logger(),
	}
}

func (r *imageRepository) Create(ctx context.Context, image *model.Image) error {
	query := `
		INSERT INTO images (id, tax_id, path, original_name, mime_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		image.ID,
		image.TaxID,
		image.Path,
		image.OriginalName,
		image.MimeType,
		image.SizeBytes,
		image.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("tax_id", image.TaxID).Msg("failed to insert image")
		return fmt.Errorf("failed to insert image: %w", err)
	}

	return nil
}

func (r *imageRepository) GetByID(ctx context.Context, taxID string, id uuid.UUID) (*model.Image, error) {
	query := `
		SELECT id, tax_id, path, original_name, mime_type, size_bytes, created_at
		FROM images
		WHERE tax_id = $1 AND id = $2
	`

	var img model.Image
	err := r.pool.QueryRow(ctx, query, taxID, id).Scan(
		&img.ID, &img.TaxID, &img.Path, &img.OriginalName, &img.MimeType, &img.SizeBytes, &img.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("image_id", id.String()).Msg("image not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("image_id", id.String()).Msg("failed to query image")
		return nil, fmt.Errorf("failed to query image: %w", err)
	}

	return &img, nil
}

func (r *imageRepository) ListByTenant(ctx context.Context, taxID string) ([]model.Image, error) {
	query := `
		SELECT id, tax_id, path, original_name, mime_type, size_bytes, created_at
		FROM images
		WHERE tax_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, taxID)
	if err != nil {
		r.logger.Error().Err(err).Str("tax_id", taxID).Msg("failed to query images")
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var images []model.Image
	for rows.Next() {
		var img model.Image
		err := rows.Scan(&img.ID, &img.TaxID, &img.Path, &img.OriginalName, &img.MimeType, &img.SizeBytes, &img.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan image row")
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating image rows")
		return nil, fmt.Errorf("error iterating images: %w", err)
	}

	return images, nil
}

func (r *imageRepository) Delete(ctx context.Context, taxID string, id uuid.UUID) error {
	query := `DELETE FROM images WHERE tax_id = $1 AND id = $2`

	tag, err := r.pool.Exec(ctx, query, taxID, id)
	if err != nil {
		r.logger.Error().Err(err).Str("image_id", id.String()).Msg("failed to delete image")
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrImageNotFound
	}

	return nil
}
