package service

import (
	"context"
	"fmt"
	"time"

	"cardaloom/internal/menu"
	"cardaloom/internal/model"
	"cardaloom/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// menuService implements MenuService.
type menuService struct {
	tenantRepo   repository.TenantRepository
	categoryRepo repository.CategoryRepository
	addonRepo    repository.AddonRepository
	productRepo  repository.ProductRepository
	imageRepo    repository.ImageRepository
	now          func() time.Time
	logger       zerolog.Logger
}

// NewMenuService creates a new public menu service.
func NewMenuService(
	tenantRepo repository.TenantRepository,
	categoryRepo repository.CategoryRepository,
	addonRepo repository.AddonRepository,
	productRepo repository.ProductRepository,
	imageRepo repository.ImageRepository,
	logger zerolog.Logger,
) MenuService {
	return &menuService{
		tenantRepo:   tenantRepo,
		categoryRepo: categoryRepo,
		addonRepo:    addonRepo,
		productRepo:  productRepo,
		imageRepo:    imageRepo,
		now:          time.Now,
		logger:       logger.With().Str("service", "menu").Logger(),
	}
}

// menuData is the result of the fan-out read.
type menuData struct {
	tenant     *model.Tenant
	categories []model.Category
	addons     []model.Addon
	products   []model.Product
	images     []model.Image
}

// loadMenuData reads the tenant and its whole catalog concurrently. Any
// failing read fails the load; a partially assembled menu is never served.
func (s *menuService) loadMenuData(ctx context.Context, taxID string) (*menuData, error) {
	var data menuData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tenant, err := s.tenantRepo.GetByTaxID(gctx, taxID)
		if err != nil {
			return err
		}
		data.tenant = tenant
		return nil
	})
	g.Go(func() error {
		categories, err := s.categoryRepo.ListByTenant(gctx, taxID)
		if err != nil {
			return err
		}
		data.categories = categories
		return nil
	})
	g.Go(func() error {
		addons, err := s.addonRepo.ListByTenant(gctx, taxID)
		if err != nil {
			return err
		}
		data.addons = addons
		return nil
	})
	g.Go(func() error {
		products, err := s.productRepo.ListByTenant(gctx, taxID)
		if err != nil {
			return err
		}
		data.products = products
		return nil
	})
	g.Go(func() error {
		images, err := s.imageRepo.ListByTenant(gctx, taxID)
		if err != nil {
			return err
		}
		data.images = images
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	if data.tenant == nil {
		return nil, model.ErrTenantNotFound
	}
	return &data, nil
}

// GetPublicMenu loads the tenant and its catalog in one fan-out read and
// assembles the public view: visible products only, grouped by category,
// with add-ons and image paths resolved.
func (s *menuService) GetPublicMenu(ctx context.Context, rawTaxID string) (*model.PublicMenu, error) {
	taxID := model.NormalizeTaxID(rawTaxID)
	if taxID == "" {
		return nil, model.ErrTenantNotFound
	}

	data, err := s.loadMenuData(ctx, taxID)
	if err != nil {
		return nil, err
	}

	addonsByID := make(map[uuid.UUID]model.Addon, len(data.addons))
	for _, addon := range data.addons {
		addonsByID[addon.ID] = addon
	}
	imagesByID := make(map[uuid.UUID]model.Image, len(data.images))
	for _, image := range data.images {
		imagesByID[image.ID] = image
	}

	productsByCategory := make(map[uuid.UUID][]model.PublicProduct)
	for _, product := range data.products {
		if !product.Visible {
			continue
		}

		public := model.PublicProduct{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			PriceCents:  product.PriceCents,
			Addons:      []model.PublicAddon{},
		}
		for _, addonID := range product.AddonIDs {
			if addon, ok := addonsByID[addonID]; ok {
				public.Addons = append(public.Addons, model.PublicAddon{
					ID:         addon.ID,
					Name:       addon.Name,
					PriceCents: addon.PriceCents,
				})
			}
		}
		if product.ImageID != nil {
			if image, ok := imagesByID[*product.ImageID]; ok {
				public.ImagePath = image.Path
			}
		}

		productsByCategory[product.CategoryID] = append(productsByCategory[product.CategoryID], public)
	}

	categories := make([]model.PublicCategory, 0, len(data.categories))
	for _, category := range data.categories {
		products := productsByCategory[category.ID]
		if products == nil {
			products = []model.PublicProduct{}
		}
		categories = append(categories, model.PublicCategory{
			ID:       category.ID,
			Name:     category.Name,
			Products: products,
		})
	}

	tenant := data.tenant
	return &model.PublicMenu{
		Name:       tenant.Name,
		Address:    tenant.Address,
		WhatsApp:   tenant.WhatsApp,
		Hours:      tenant.Hours,
		Open:       menu.IsOpenAt(tenant.Hours, s.now()),
		Categories: categories,
	}, nil
}

// ComposeOrder prices the cart and renders the WhatsApp order message.
// Orders are only accepted while the shop is open.
func (s *menuService) ComposeOrder(ctx context.Context, req *model.OrderMessageRequest) (*model.OrderMessageResponse, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	taxID := model.NormalizeTaxID(req.TaxID)
	data, err := s.loadMenuData(ctx, taxID)
	if err != nil {
		return nil, err
	}

	if !menu.IsOpenAt(data.tenant.Hours, s.now()) {
		s.logger.Info().Str("tax_id", taxID).Msg("order rejected, shop closed")
		return nil, model.ErrShopClosed
	}

	productsByID := make(map[uuid.UUID]model.Product, len(data.products))
	for _, product := range data.products {
		productsByID[product.ID] = product
	}
	addonsByID := make(map[uuid.UUID]model.Addon, len(data.addons))
	for _, addon := range data.addons {
		addonsByID[addon.ID] = addon
	}

	lines := make([]menu.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		product, ok := productsByID[item.ProductID]
		if !ok || !product.Visible {
			return nil, model.ErrProductNotFound
		}

		allowed := make(map[uuid.UUID]bool, len(product.AddonIDs))
		for _, id := range product.AddonIDs {
			allowed[id] = true
		}

		line := menu.CartLine{
			ProductName:    product.Name,
			UnitPriceCents: product.PriceCents,
			Quantity:       item.Quantity,
		}
		for _, addonID := range item.AddonIDs {
			addon, ok := addonsByID[addonID]
			if !ok || !allowed[addonID] {
				return nil, model.ErrAddonNotFound
			}
			line.Addons = append(line.Addons, menu.CartAddon{
				Name:       addon.Name,
				PriceCents: addon.PriceCents,
			})
		}
		lines = append(lines, line)
	}

	message := menu.ComposeMessage(menu.Order{
		RestaurantName: data.tenant.Name,
		CustomerName:   req.CustomerName,
		Address:        req.Address,
		PaymentMethod:  req.PaymentMethod,
		ChangeForCents: req.ChangeForCents,
		Lines:          lines,
	})

	return &model.OrderMessageResponse{
		Message:     message,
		WhatsAppURL: menu.WhatsAppLink(data.tenant.WhatsApp, message),
		TotalCents:  menu.CartTotalCents(lines),
	}, nil
}

// validateOrderRequest checks the cart shape before any database work.
func validateOrderRequest(req *model.OrderMessageRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "request body is required")
	}
	if model.NormalizeTaxID(req.TaxID) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "tax id is required")
	}
	if req.CustomerName == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "customer name is required")
	}
	if len(req.Items) == 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "order must contain at least one item")
	}
	switch req.PaymentMethod {
	case menu.PaymentCash, menu.PaymentCard, menu.PaymentPix:
	default:
		return model.NewDomainError(model.ErrCodeMissingField, "payment method must be cash, card or pix")
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return model.NewDomainError(model.ErrCodeMissingField,
				fmt.Sprintf("item %d: quantity must be positive", i))
		}
	}
	return nil
}
