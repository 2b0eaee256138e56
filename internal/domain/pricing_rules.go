package domain

import "fmt"

// Get returns the value for key or ErrPricingRuleMissing.
func (r PricingRules) Get(key string) (float64, error) {
	v, ok := r[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPricingRuleMissing, key)
	}
	return v, nil
}

// Validate checks that every required key is present.
func (r PricingRules) Validate() error {
	for _, key := range RequiredPricingRules {
		if _, err := r.Get(key); err != nil {
			return err
		}
	}
	return nil
}
