package service

import (
	"context"
	"testing"

	"cardaloom/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	categoryRepo *MockCategoryRepository
	addonRepo    *MockAddonRepository
	productRepo  *MockProductRepository
	imageRepo    *MockImageRepository
	svc          CatalogService
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		categoryRepo: new(MockCategoryRepository),
		addonRepo:    new(MockAddonRepository),
		productRepo:  new(MockProductRepository),
		imageRepo:    new(MockImageRepository),
	}
	f.svc = NewCatalogService(f.categoryRepo, f.addonRepo, f.productRepo, f.imageRepo, zerolog.Nop())
	return f
}

func TestCatalogService_CreateCategory(t *testing.T) {
	f := newCatalogFixture()

	f.categoryRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Category) bool {
		return c.TaxID == testTaxID && c.Name == "Burgers" && c.ID != uuid.Nil
	})).Return(nil)

	category, err := f.svc.CreateCategory(context.Background(), testTaxID, &model.CategoryRequest{Name: " Burgers "})

	require.NoError(t, err)
	assert.Equal(t, "Burgers", category.Name)
	f.categoryRepo.AssertExpectations(t)
}

func TestCatalogService_CreateCategory_EmptyName(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.svc.CreateCategory(context.Background(), testTaxID, &model.CategoryRequest{Name: "   "})

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	f.categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_DeleteCategory_InUse(t *testing.T) {
	f := newCatalogFixture()
	id := uuid.New()

	f.categoryRepo.On("CountProducts", mock.Anything, testTaxID, id).Return(3, nil)

	err := f.svc.DeleteCategory(context.Background(), testTaxID, id)

	assert.ErrorIs(t, err, model.ErrCategoryInUse)
	f.categoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogService_DeleteCategory_Empty(t *testing.T) {
	f := newCatalogFixture()
	id := uuid.New()

	f.categoryRepo.On("CountProducts", mock.Anything, testTaxID, id).Return(0, nil)
	f.categoryRepo.On("Delete", mock.Anything, testTaxID, id).Return(nil)

	err := f.svc.DeleteCategory(context.Background(), testTaxID, id)

	assert.NoError(t, err)
	f.categoryRepo.AssertExpectations(t)
}

func TestCatalogService_DeleteAddon_DropsProductReferences(t *testing.T) {
	f := newCatalogFixture()
	id := uuid.New()

	f.productRepo.On("RemoveAddonRef", mock.Anything, testTaxID, id).Return(nil)
	f.addonRepo.On("Delete", mock.Anything, testTaxID, id).Return(nil)

	err := f.svc.DeleteAddon(context.Background(), testTaxID, id)

	require.NoError(t, err)
	f.productRepo.AssertExpectations(t)
	f.addonRepo.AssertExpectations(t)
}

func TestCatalogService_CreateProduct(t *testing.T) {
	f := newCatalogFixture()
	categoryID := uuid.New()
	addonID := uuid.New()
	imageID := uuid.New()

	req := &model.ProductRequest{
		CategoryID: categoryID,
		Name:       "X-Burger",
		PriceCents: 2000,
		AddonIDs:   []uuid.UUID{addonID},
		ImageID:    &imageID,
		Visible:    true,
	}

	f.categoryRepo.On("GetByID", mock.Anything, testTaxID, categoryID).
		Return(&model.Category{ID: categoryID, TaxID: testTaxID, Name: "Burgers"}, nil)
	f.addonRepo.On("ValidateAddonsExist", mock.Anything, testTaxID, []uuid.UUID{addonID}).Return(nil)
	f.imageRepo.On("GetByID", mock.Anything, testTaxID, imageID).
		Return(&model.Image{ID: imageID, TaxID: testTaxID}, nil)
	f.productRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.Name == "X-Burger" && p.PriceCents == 2000 && p.Visible
	})).Return(nil)

	product, err := f.svc.CreateProduct(context.Background(), testTaxID, req)

	require.NoError(t, err)
	assert.Equal(t, categoryID, product.CategoryID)
	f.productRepo.AssertExpectations(t)
}

func TestCatalogService_CreateProduct_BadReferences(t *testing.T) {
	categoryID := uuid.New()
	addonID := uuid.New()
	imageID := uuid.New()

	base := model.ProductRequest{
		CategoryID: categoryID,
		Name:       "X-Burger",
		PriceCents: 2000,
		AddonIDs:   []uuid.UUID{addonID},
		ImageID:    &imageID,
		Visible:    true,
	}

	t.Run("Unknown category", func(t *testing.T) {
		f := newCatalogFixture()
		f.categoryRepo.On("GetByID", mock.Anything, testTaxID, categoryID).Return(nil, nil)

		req := base
		_, err := f.svc.CreateProduct(context.Background(), testTaxID, &req)
		assert.ErrorIs(t, err, model.ErrCategoryNotFound)
	})

	t.Run("Unknown addon", func(t *testing.T) {
		f := newCatalogFixture()
		f.categoryRepo.On("GetByID", mock.Anything, testTaxID, categoryID).
			Return(&model.Category{ID: categoryID}, nil)
		f.addonRepo.On("ValidateAddonsExist", mock.Anything, testTaxID, []uuid.UUID{addonID}).
			Return(model.ErrAddonNotFound)

		req := base
		_, err := f.svc.CreateProduct(context.Background(), testTaxID, &req)
		assert.ErrorIs(t, err, model.ErrAddonNotFound)
	})

	t.Run("Unknown image", func(t *testing.T) {
		f := newCatalogFixture()
		f.categoryRepo.On("GetByID", mock.Anything, testTaxID, categoryID).
			Return(&model.Category{ID: categoryID}, nil)
		f.addonRepo.On("ValidateAddonsExist", mock.Anything, testTaxID, []uuid.UUID{addonID}).Return(nil)
		f.imageRepo.On("GetByID", mock.Anything, testTaxID, imageID).Return(nil, nil)

		req := base
		_, err := f.svc.CreateProduct(context.Background(), testTaxID, &req)
		assert.ErrorIs(t, err, model.ErrImageNotFound)
	})

	t.Run("Negative price", func(t *testing.T) {
		f := newCatalogFixture()

		req := base
		req.PriceCents = -1
		_, err := f.svc.CreateProduct(context.Background(), testTaxID, &req)

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeMissingField, domainErr.Code)
	})
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	f := newCatalogFixture()
	categoryID := uuid.New()
	productID := uuid.New()

	f.categoryRepo.On("GetByID", mock.Anything, testTaxID, categoryID).
		Return(&model.Category{ID: categoryID}, nil)
	f.addonRepo.On("ValidateAddonsExist", mock.Anything, testTaxID, mock.Anything).Return(nil)
	f.productRepo.On("GetByID", mock.Anything, testTaxID, productID).Return(nil, nil)

	_, err := f.svc.UpdateProduct(context.Background(), testTaxID, productID, &model.ProductRequest{
		CategoryID: categoryID,
		Name:       "X-Burger",
		PriceCents: 2000,
	})

	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestCatalogService_ListCategories_EmptyIsNotNil(t *testing.T) {
	f := newCatalogFixture()

	f.categoryRepo.On("ListByTenant", mock.Anything, testTaxID).Return(nil, nil)

	categories, err := f.svc.ListCategories(context.Background(), testTaxID)

	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}
