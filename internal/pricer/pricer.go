// Package pricer turns matched SKUs into a priced quote.
package pricer

import (
	"fmt"
	"log"

	"rfpflow/internal/domain"
)

// DefaultCurrency is the quote currency code.
const DefaultCurrency = "INR"

// Pricer is the third pipeline stage.
type Pricer struct {
	currency string
}

// New creates a Pricer quoting in currency.
func New(currency string) *Pricer {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Pricer{currency: currency}
}

// Price builds one quote line per matched SKU. Unmatched items are skipped.
// A matched SKU absent from catalog or a missing pricing rule aborts with a
// wrapped domain.ErrCatalogInconsistent or domain.ErrPricingRuleMissing.
func (p *Pricer) Price(matches []domain.MatchResult, catalog []domain.Product, rules domain.PricingRules) (*domain.PricingData, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("pricer.Price: %w", err)
	}
	standard, _ := rules.Get(domain.RuleStandardMarginPercent)
	software, _ := rules.Get(domain.RuleSoftwareMarginPercent)
	taxRate, _ := rules.Get(domain.RuleTaxRatePercent)

	bySKU := make(map[string]*domain.Product, len(catalog))
	for i := range catalog {
		bySKU[catalog[i].SKU] = &catalog[i]
	}

	out := &domain.PricingData{
		Currency:  p.currency,
		Breakdown: []domain.PriceLine{},
	}

	for _, m := range matches {
		if !m.Matched() {
			continue
		}
		product, ok := bySKU[m.MatchedSKU]
		if !ok {
			return nil, fmt.Errorf("pricer.Price: %w: %s", domain.ErrCatalogInconsistent, m.MatchedSKU)
		}

		marginPct := standard
		if product.Category == domain.SoftwareCategory {
			marginPct = software
		}

		base := product.BaseCost
		margin := base * marginPct / 100
		preTax := base + margin
		tax := preTax * taxRate / 100
		final := preTax + tax
		line := domain.Amount(final * float64(m.Quantity))

		out.Breakdown = append(out.Breakdown, domain.PriceLine{
			SKU:            m.MatchedSKU,
			UnitCost:       domain.Amount(base),
			ProfitMargin:   domain.Amount(margin),
			Tax:            domain.Amount(tax),
			FinalUnitPrice: domain.Amount(final),
			Quantity:       m.Quantity,
			LineTotal:      line,
		})
		out.TotalCost += line.Rounded()
		out.PreciseTotal += line
	}
	out.TotalCost = out.TotalCost.Rounded()

	log.Printf("pricer: %d lines, total %s %s", len(out.Breakdown), out.TotalCost, p.currency)
	return out, nil
}
