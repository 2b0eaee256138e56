package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rfpflow/internal/domain"
	"rfpflow/internal/service"
)

// MockRunService is a mock implementation of service.RunService.
type MockRunService struct {
	mock.Mock
}

func (m *MockRunService) GetRun(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Run), args.Error(1)
}

func (m *MockRunService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RunStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRunService) ExportQuote(ctx context.Context, id uuid.UUID, format domain.ExportFormat) (*service.QuoteFile, error) {
	args := m.Called(ctx, id, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuoteFile), args.Error(1)
}
