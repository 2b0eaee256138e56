package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rfpflow/internal/domain"
)

// MockRunRepo is a mock implementation of port.RunRepository.
type MockRunRepo struct {
	mock.Mock
}

func (m *MockRunRepo) Create(ctx context.Context, run *domain.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Run), args.Error(1)
}

func (m *MockRunRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RunStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
