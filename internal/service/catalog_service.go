package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cardaloom/internal/model"
	"cardaloom/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	categoryRepo repository.CategoryRepository
	addonRepo    repository.AddonRepository
	productRepo  repository.ProductRepository
	imageRepo    repository.ImageRepository
	logger       zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	addonRepo repository.AddonRepository,
	productRepo repository.ProductRepository,
	imageRepo repository.ImageRepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		addonRepo:    addonRepo,
		productRepo:  productRepo,
		imageRepo:    imageRepo,
		logger:       logger.With().Str("service", "catalog").Logger(),
	}
}

func (s *catalogService) CreateCategory(ctx context.Context, taxID string, req *model.CategoryRequest) (*model.Category, error) {
	if err := validateName(req.Name, "category name"); err != nil {
		return nil, err
	}

	category := &model.Category{
		ID:        uuid.New(),
		TaxID:     taxID,
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: time.Now(),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().Str("tax_id", taxID).Str("category_id", category.ID.String()).Msg("category created")
	return category, nil
}

func (s *catalogService) ListCategories(ctx context.Context, taxID string) ([]model.Category, error) {
	categories, err := s.categoryRepo.ListByTenant(ctx, taxID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, taxID string, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error) {
	if err := validateName(req.Name, "category name"); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, taxID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	category.Name = strings.TrimSpace(req.Name)
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory refuses to delete a category that still has products.
func (s *catalogService) DeleteCategory(ctx context.Context, taxID string, id uuid.UUID) error {
	count, err := s.categoryRepo.CountProducts(ctx, taxID, id)
	if err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if count > 0 {
		s.logger.Warn().Str("category_id", id.String()).Int("products", count).Msg("category delete rejected")
		return model.ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(ctx, taxID, id); err != nil {
		return err
	}

	s.logger.Info().Str("tax_id", taxID).Str("category_id", id.String()).Msg("category deleted")
	return nil
}

func (s *catalogService) CreateAddon(ctx context.Context, taxID string, req *model.AddonRequest) (*model.Addon, error) {
	if err := validateAddonRequest(req); err != nil {
		return nil, err
	}

	addon := &model.Addon{
		ID:         uuid.New(),
		TaxID:      taxID,
		Name:       strings.TrimSpace(req.Name),
		PriceCents: req.PriceCents,
		CreatedAt:  time.Now(),
	}
	if err := s.addonRepo.Create(ctx, addon); err != nil {
		return nil, fmt.Errorf("failed to create addon: %w", err)
	}

	s.logger.Info().Str("tax_id", taxID).Str("addon_id", addon.ID.String()).Msg("addon created")
	return addon, nil
}

func (s *catalogService) ListAddons(ctx context.Context, taxID string) ([]model.Addon, error) {
	addons, err := s.addonRepo.ListByTenant(ctx, taxID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addons: %w", err)
	}
	if addons == nil {
		addons = []model.Addon{}
	}
	return addons, nil
}

func (s *catalogService) UpdateAddon(ctx context.Context, taxID string, id uuid.UUID, req *model.AddonRequest) (*model.Addon, error) {
	if err := validateAddonRequest(req); err != nil {
		return nil, err
	}

	addon, err := s.addonRepo.GetByID(ctx, taxID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load addon: %w", err)
	}
	if addon == nil {
		return nil, model.ErrAddonNotFound
	}

	addon.Name = strings.TrimSpace(req.Name)
	addon.PriceCents = req.PriceCents
	if err := s.addonRepo.Update(ctx, addon); err != nil {
		return nil, fmt.Errorf("failed to update addon: %w", err)
	}
	return addon, nil
}

// DeleteAddon removes the add-on and drops it from every product selecting it.
func (s *catalogService) DeleteAddon(ctx context.Context, taxID string, id uuid.UUID) error {
	if err := s.productRepo.RemoveAddonRef(ctx, taxID, id); err != nil {
		return err
	}
	if err := s.addonRepo.Delete(ctx, taxID, id); err != nil {
		return err
	}

	s.logger.Info().Str("tax_id", taxID).Str("addon_id", id.String()).Msg("addon deleted")
	return nil
}

func (s *catalogService) CreateProduct(ctx context.Context, taxID string, req *model.ProductRequest) (*model.Product, error) {
	if err := s.validateProductRequest(ctx, taxID, req); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &model.Product{
		ID:          uuid.New(),
		TaxID:       taxID,
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		PriceCents:  req.PriceCents,
		AddonIDs:    req.AddonIDs,
		ImageID:     req.ImageID,
		Visible:     req.Visible,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.AddonIDs == nil {
		product.AddonIDs = []uuid.UUID{}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("tax_id", taxID).Str("product_id", product.ID.String()).Msg("product created")
	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context, taxID string) ([]model.Product, error) {
	products, err := s.productRepo.ListByTenant(ctx, taxID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, taxID string, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	if err := s.validateProductRequest(ctx, taxID, req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, taxID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	product.CategoryID = req.CategoryID
	product.Name = strings.TrimSpace(req.Name)
	product.Description = req.Description
	product.PriceCents = req.PriceCents
	product.AddonIDs = req.AddonIDs
	product.ImageID = req.ImageID
	product.Visible = req.Visible
	if product.AddonIDs == nil {
		product.AddonIDs = []uuid.UUID{}
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, taxID string, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, taxID, id); err != nil {
		return err
	}

	s.logger.Info().Str("tax_id", taxID).Str("product_id", id.String()).Msg("product deleted")
	return nil
}

// validateProductRequest checks fields and resolves every reference the
// product carries. Unknown references fail the write.
func (s *catalogService) validateProductRequest(ctx context.Context, taxID string, req *model.ProductRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "request body is required")
	}
	if err := validateName(req.Name, "product name"); err != nil {
		return err
	}
	if req.PriceCents < 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "price cannot be negative")
	}
	if req.CategoryID == uuid.Nil {
		return model.NewDomainError(model.ErrCodeMissingField, "category id is required")
	}

	category, err := s.categoryRepo.GetByID(ctx, taxID, req.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to validate category: %w", err)
	}
	if category == nil {
		return model.ErrCategoryNotFound
	}

	if err := s.addonRepo.ValidateAddonsExist(ctx, taxID, req.AddonIDs); err != nil {
		return err
	}

	if req.ImageID != nil {
		image, err := s.imageRepo.GetByID(ctx, taxID, *req.ImageID)
		if err != nil {
			return fmt.Errorf("failed to validate image: %w", err)
		}
		if image == nil {
			return model.ErrImageNotFound
		}
	}

	return nil
}

func validateName(name, field string) error {
	if strings.TrimSpace(name) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, field+" is required")
	}
	return nil
}

func validateAddonRequest(req *model.AddonRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "request body is required")
	}
	if err := validateName(req.Name, "addon name"); err != nil {
		return err
	}
	if req.PriceCents < 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "price cannot be negative")
	}
	return nil
}
