package sqldb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rfpflow/internal/domain"
	"rfpflow/internal/port"
)

type pricingRuleRepo struct {
	db *sqlx.DB
}

// NewPricingRuleRepo creates a new SQL-backed PricingRuleRepository.
func NewPricingRuleRepo(db *sqlx.DB) port.PricingRuleRepository {
	return &pricingRuleRepo{db: db}
}

func (r *pricingRuleRepo) GetRules(ctx context.Context) (domain.PricingRules, error) {
	var rows []domain.PricingRule
	if err := r.db.SelectContext(ctx, &rows, `SELECT key, value FROM pricing_rules`); err != nil {
		return nil, fmt.Errorf("pricingRuleRepo.GetRules: %w", err)
	}
	rules := make(domain.PricingRules, len(rows))
	for _, row := range rows {
		rules[row.Key] = row.Value
	}
	return rules, nil
}

func (r *pricingRuleRepo) Upsert(ctx context.Context, key string, value float64) error {
	query := r.db.Rebind(`INSERT INTO pricing_rules (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`)
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("pricingRuleRepo.Upsert: %w", err)
	}
	return nil
}

func (r *pricingRuleRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM pricing_rules`); err != nil {
		return 0, fmt.Errorf("pricingRuleRepo.Count: %w", err)
	}
	return n, nil
}
