package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rfpflow/internal/domain"
)

// MockProposalNotifier is a mock implementation of port.ProposalNotifier.
type MockProposalNotifier struct {
	mock.Mock
}

func (m *MockProposalNotifier) NotifyProposalReady(ctx context.Context, result *domain.RunResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}
