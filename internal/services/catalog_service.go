package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"letlalo-shop/internal/domain"
	"letlalo-shop/internal/repository"

	"github.com/go-redis/redis/v8"
)

var ErrProductNotFound = errors.New("product not found")

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug derives a URL slug from a product name: lowercased,
// non-alphanumeric runs collapsed to a single dash.
func GenerateSlug(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// ProductInput carries admin-entered product fields. The slug is
// always regenerated from the name so the two never drift apart.
type ProductInput struct {
	Name           string
	Description    string
	Price          int64
	Currency       string
	Images         []string
	Category       string
	InventoryCount int
	IsVisible      bool
	IsSoldOut      bool
}

// CatalogService serves product reads for the storefront with a short
// read-through cache, and product writes for the admin console.
type CatalogService struct {
	products    repository.ProductRepository
	categories  repository.CategoryRepository
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository) *CatalogService {
	return &CatalogService{products: products, categories: categories}
}

func (s *CatalogService) SetRedisClient(client *redis.Client, ttl time.Duration) {
	s.redisClient = client
	s.cacheTTL = ttl
}

func (s *CatalogService) ListVisible(ctx context.Context, category string) ([]domain.Product, error) {
	return s.products.FindVisible(category)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.FindVisible()
}

// GetBySlug reads through the product cache. Cache misses and decode
// failures fall back to the repository.
func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	cacheKey := "product:" + slug

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.products.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(p); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, s.cacheTTL)
		}
	}

	return p, nil
}

// GetByID is used by the cart endpoints, which key lines by product id.
func (s *CatalogService) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	p, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.products.FindAll()
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	p := productFromInput(input)
	if err := s.products.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, input ProductInput) (*domain.Product, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := productFromInput(input)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.products.Update(updated); err != nil {
		return nil, err
	}
	s.invalidate(ctx, existing.Slug, updated.Slug)
	return updated, nil
}

func (s *CatalogService) ToggleVisibility(ctx context.Context, id uint) (*domain.Product, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.IsVisible = !p.IsVisible
	if err := s.products.Update(p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, p.Slug)
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, p.Slug)
	return nil
}

func productFromInput(input ProductInput) *domain.Product {
	currency := input.Currency
	if currency == "" {
		currency = "NGN"
	}
	return &domain.Product{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		Currency:       currency,
		Images:         domain.StringSlice(input.Images),
		Category:       input.Category,
		InventoryCount: input.InventoryCount,
		IsVisible:      input.IsVisible,
		IsSoldOut:      input.IsSoldOut,
		Slug:           GenerateSlug(input.Name),
	}
}

func (s *CatalogService) invalidate(ctx context.Context, slugs ...string) {
	if s.redisClient == nil {
		return
	}
	for _, slug := range slugs {
		if err := s.redisClient.Del(ctx, "product:"+slug).Err(); err != nil {
			log.Printf("failed to invalidate product cache for %s: %v", slug, err)
		}
	}
}
