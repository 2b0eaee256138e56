package service

import (
	"context"
	"fmt"
	"strings"

	"rfpflow/internal/domain"
	"rfpflow/internal/port"
)

// AddProductInput is the DTO for catalog additions.
type AddProductInput struct {
	SKU         string   `json:"sku" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	BaseCost    *float64 `json:"base_cost" binding:"required,gte=0"`
	Description string   `json:"description"`
}

// CatalogService manages the product catalog.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	AddProduct(ctx context.Context, input AddProductInput) (*domain.Product, error)
}

type catalogService struct {
	catalogRepo port.CatalogRepository
}

// NewCatalogService creates a new CatalogService implementation.
func NewCatalogService(catalogRepo port.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.List: %w", err)
	}
	return products, nil
}

func (s *catalogService) AddProduct(ctx context.Context, input AddProductInput) (*domain.Product, error) {
	sku := strings.TrimSpace(input.SKU)
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	if sku == "" || name == "" || category == "" || input.BaseCost == nil || *input.BaseCost < 0 {
		return nil, domain.ErrInvalidProduct
	}

	product := &domain.Product{
		SKU:         sku,
		Name:        name,
		Category:    category,
		BaseCost:    *input.BaseCost,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.catalogRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("catalog.AddProduct: %w", err)
	}
	return product, nil
}
