package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"rfpflow/internal/domain"
	"rfpflow/internal/port"
)

type catalogRepo struct {
	db *sqlx.DB
}

// NewCatalogRepo creates a new SQL-backed CatalogRepository.
func NewCatalogRepo(db *sqlx.DB) port.CatalogRepository {
	return &catalogRepo{db: db}
}

const productColumns = `sku, name, category, base_cost, description, created_at`

func (r *catalogRepo) List(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	err := r.db.SelectContext(ctx, &products,
		`SELECT `+productColumns+` FROM inventory ORDER BY created_at, sku`)
	if err != nil {
		return nil, fmt.Errorf("catalogRepo.List: %w", err)
	}
	return products, nil
}

func (r *catalogRepo) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p,
		r.db.Rebind(`SELECT `+productColumns+` FROM inventory WHERE sku = ?`), sku)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("catalogRepo.GetBySKU: %w", err)
	}
	return &p, nil
}

// Create is a single INSERT; the primary key rejects duplicates atomically.
func (r *catalogRepo) Create(ctx context.Context, p *domain.Product) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	query := r.db.Rebind(`INSERT INTO inventory (` + productColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		p.SKU, p.Name, p.Category, p.BaseCost, p.Description, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("catalogRepo.Create: %w", err)
	}
	return nil
}

func (r *catalogRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM inventory`); err != nil {
		return 0, fmt.Errorf("catalogRepo.Count: %w", err)
	}
	return n, nil
}
