package repository

import "letlalo-shop/internal/domain"

type ProductRepository interface {
	Save(product *domain.Product) error
	Update(product *domain.Product) error
	Delete(id uint) error
	FindByID(id uint) (*domain.Product, error)
	FindBySlug(slug string) (*domain.Product, error)
	// FindVisible lists shopper-facing products, optionally filtered
	// by category. Admin listings use FindAll.
	FindVisible(category string) ([]domain.Product, error)
	FindAll() ([]domain.Product, error)
}

type CategoryRepository interface {
	FindVisible() ([]domain.Category, error)
}
