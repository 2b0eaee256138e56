// Package seed fills an empty catalog and pricing rule store with the bundled
// defaults or with operator-supplied JSON files.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/afero"

	"rfpflow/internal/domain"
	"rfpflow/internal/port"
)

//go:embed data/catalog.json
var defaultCatalog []byte

//go:embed data/pricing_rules.json
var defaultRules []byte

// Data is the seed content.
type Data struct {
	Products []domain.Product
	Rules    domain.PricingRules
}

// Load returns the embedded seed, with each part replaced by the file at
// catalogFile or rulesFile when that path is non-empty.
func Load(fs afero.Fs, catalogFile, rulesFile string) (*Data, error) {
	catalogJSON, err := readOrDefault(fs, catalogFile, defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("seed.Load catalog: %w", err)
	}
	rulesJSON, err := readOrDefault(fs, rulesFile, defaultRules)
	if err != nil {
		return nil, fmt.Errorf("seed.Load rules: %w", err)
	}

	data := &Data{}
	if err := json.Unmarshal(catalogJSON, &data.Products); err != nil {
		return nil, fmt.Errorf("seed.Load: parsing catalog: %w", err)
	}
	if err := json.Unmarshal(rulesJSON, &data.Rules); err != nil {
		return nil, fmt.Errorf("seed.Load: parsing rules: %w", err)
	}
	if err := data.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("seed.Load: %w", err)
	}
	return data, nil
}

func readOrDefault(fs afero.Fs, path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	return afero.ReadFile(fs, path)
}

// Apply inserts data into each store that is currently empty. Stores that
// already hold rows are left untouched.
func Apply(ctx context.Context, catalog port.CatalogRepository, rules port.PricingRuleRepository, data *Data) error {
	n, err := catalog.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed.Apply: %w", err)
	}
	if n == 0 {
		log.Printf("seed: loading %d catalog entries", len(data.Products))
		for i := range data.Products {
			p := data.Products[i]
			if err := catalog.Create(ctx, &p); err != nil {
				return fmt.Errorf("seed.Apply product %s: %w", p.SKU, err)
			}
		}
	}

	n, err = rules.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed.Apply: %w", err)
	}
	if n == 0 {
		log.Printf("seed: loading %d pricing rules", len(data.Rules))
		for key, value := range data.Rules {
			if err := rules.Upsert(ctx, key, value); err != nil {
				return fmt.Errorf("seed.Apply rule %s: %w", key, err)
			}
		}
	}
	return nil
}
