package port

import (
	"context"

	"github.com/google/uuid"

	"rfpflow/internal/domain"
)

// CatalogRepository defines the contract for product catalog persistence.
type CatalogRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	// Create inserts a product. Returns domain.ErrDuplicateSKU when the SKU
	// already exists; the existing row is left untouched.
	Create(ctx context.Context, product *domain.Product) error
	Count(ctx context.Context) (int, error)
}

// PricingRuleRepository defines the contract for pricing rule persistence.
type PricingRuleRepository interface {
	GetRules(ctx context.Context) (domain.PricingRules, error)
	Upsert(ctx context.Context, key string, value float64) error
	Count(ctx context.Context) (int, error)
}

// RunRepository defines the contract for pipeline run history.
type RunRepository interface {
	Create(ctx context.Context, run *domain.Run) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Run, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RunStatus) error
}
