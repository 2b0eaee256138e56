package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rfpflow/internal/domain"
	"rfpflow/internal/service"
)

// MockCatalogService is a mock implementation of service.CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalogService) AddProduct(ctx context.Context, input service.AddProductInput) (*domain.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
