package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rfpflow/internal/domain"
)

// MockPricingRuleRepo is a mock implementation of port.PricingRuleRepository.
type MockPricingRuleRepo struct {
	mock.Mock
}

func (m *MockPricingRuleRepo) GetRules(ctx context.Context) (domain.PricingRules, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.PricingRules), args.Error(1)
}

func (m *MockPricingRuleRepo) Upsert(ctx context.Context, key string, value float64) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockPricingRuleRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
