package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"cardaloom/internal/model"
	"cardaloom/internal/repository"
	"cardaloom/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// allowedImageTypes are the MIME types accepted for menu images.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// uploadService implements UploadService.
type uploadService struct {
	imageRepo   repository.ImageRepository
	productRepo repository.ProductRepository
	store       storage.Store
	maxSize     int64
	logger      zerolog.Logger
}

// NewUploadService creates a new upload service.
func NewUploadService(
	imageRepo repository.ImageRepository,
	productRepo repository.ProductRepository,
	store storage.Store,
	maxSize int64,
	logger zerolog.Logger,
) UploadService {
	return &uploadService{
		imageRepo:   imageRepo,
		productRepo: productRepo,
		store:       store,
		maxSize:     maxSize,
		logger:      logger.With().Str("service", "upload").Logger(),
	}
}

// Upload stores the file and records its metadata.
func (s *uploadService) Upload(ctx context.Context, taxID, originalName, mimeType string, size int64, content io.Reader) (*model.UploadResponse, error) {
	if !allowedImageTypes[mimeType] {
		return nil, model.NewDomainError(model.ErrCodeMissingField,
			fmt.Sprintf("unsupported image type %q", mimeType))
	}
	if size > s.maxSize {
		return nil, model.NewDomainError(model.ErrCodeMissingField,
			fmt.Sprintf("file exceeds the %d byte limit", s.maxSize))
	}

	path, err := s.store.Save(taxID, originalName, io.LimitReader(content, s.maxSize))
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	image := &model.Image{
		ID:           uuid.New(),
		TaxID:        taxID,
		Path:         path,
		OriginalName: originalName,
		MimeType:     mimeType,
		SizeBytes:    size,
		CreatedAt:    time.Now(),
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		if rmErr := s.store.Remove(path); rmErr != nil {
			s.logger.Error().Err(rmErr).Str("path", path).Msg("failed to remove orphaned file")
		}
		return nil, fmt.Errorf("failed to record image: %w", err)
	}

	s.logger.Info().Str("tax_id", taxID).Str("image_id", image.ID.String()).Msg("image uploaded")
	return &model.UploadResponse{ImageID: image.ID, Path: path}, nil
}

// List returns the tenant's uploaded images, newest first.
func (s *uploadService) List(ctx context.Context, taxID string) ([]model.Image, error) {
	images, err := s.imageRepo.ListByTenant(ctx, taxID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	if images == nil {
		images = []model.Image{}
	}
	return images, nil
}

// Delete detaches the image from any product, removes the metadata row, and
// deletes the file.
func (s *uploadService) Delete(ctx context.Context, taxID string, id uuid.UUID) error {
	image, err := s.imageRepo.GetByID(ctx, taxID, id)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	if image == nil {
		return model.ErrImageNotFound
	}

	if err := s.productRepo.ClearImageRef(ctx, taxID, id); err != nil {
		return err
	}
	if err := s.imageRepo.Delete(ctx, taxID, id); err != nil {
		return err
	}
	if err := s.store.Remove(image.Path); err != nil {
		s.logger.Error().Err(err).Str("path", image.Path).Msg("failed to remove file from disk")
	}

	s.logger.Info().Str("tax_id", taxID).Str("image_id", id.String()).Msg("image deleted")
	return nil
}
