package services

import (
	"context"
	"testing"

	"letlalo-shop/internal/domain"
	"letlalo-shop/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{name: "Leather Tote Bag", expected: "leather-tote-bag"},
		{name: "  Weekender  ", expected: "weekender"},
		{name: "Ankara & Leather Clutch", expected: "ankara-leather-clutch"},
		{name: "Tote #3 (Large)", expected: "tote-3-large"},
		{name: "UPPERCASE", expected: "uppercase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateSlug(tt.name))
		})
	}
}

func TestCatalogService_GetBySlug(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockProductRepository)
		expectedError error
	}{
		{
			name: "found",
			setupMocks: func(products *mocks.MockProductRepository) {
				products.On("FindBySlug", "leather-tote").Return(&domain.Product{ID: 1, Slug: "leather-tote"}, nil)
			},
		},
		{
			name: "not found",
			setupMocks: func(products *mocks.MockProductRepository) {
				products.On("FindBySlug", "leather-tote").Return(nil, nil)
			},
			expectedError: ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(mocks.MockProductRepository)
			categories := new(mocks.MockCategoryRepository)
			tt.setupMocks(products)

			service := NewCatalogService(products, categories)
			result, err := service.GetBySlug(context.Background(), "leather-tote")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "leather-tote", result.Slug)
			}
		})
	}
}

func TestCatalogService_CreateProduct_GeneratesSlug(t *testing.T) {
	products := new(mocks.MockProductRepository)
	categories := new(mocks.MockCategoryRepository)

	products.On("Save", mock.MatchedBy(func(p *domain.Product) bool {
		return p.Slug == "ankara-clutch" && p.Currency == "NGN"
	})).Return(nil)

	service := NewCatalogService(products, categories)
	product, err := service.CreateProduct(context.Background(), ProductInput{
		Name:           "Ankara Clutch",
		Price:          15000,
		InventoryCount: 5,
		IsVisible:      true,
	})

	assert.NoError(t, err)
	assert.Equal(t, "ankara-clutch", product.Slug)
	products.AssertExpectations(t)
}

func TestCatalogService_ToggleVisibility(t *testing.T) {
	products := new(mocks.MockProductRepository)
	categories := new(mocks.MockCategoryRepository)

	stored := &domain.Product{ID: 1, Slug: "leather-tote", IsVisible: true}
	products.On("FindByID", uint(1)).Return(stored, nil)
	products.On("Update", mock.MatchedBy(func(p *domain.Product) bool {
		return p.ID == 1 && !p.IsVisible
	})).Return(nil)

	service := NewCatalogService(products, categories)
	product, err := service.ToggleVisibility(context.Background(), 1)

	assert.NoError(t, err)
	assert.False(t, product.IsVisible)
}

func TestCatalogService_DeleteProduct_NotFound(t *testing.T) {
	products := new(mocks.MockProductRepository)
	categories := new(mocks.MockCategoryRepository)

	products.On("FindByID", uint(9)).Return(nil, nil)

	service := NewCatalogService(products, categories)
	err := service.DeleteProduct(context.Background(), 9)

	assert.ErrorIs(t, err, ErrProductNotFound)
	products.AssertNotCalled(t, "Delete", mock.Anything)
}
