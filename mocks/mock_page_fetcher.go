package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rfpflow/internal/port"
)

// MockPageFetcher is a mock implementation of port.PageFetcher.
type MockPageFetcher struct {
	mock.Mock
}

func (m *MockPageFetcher) Fetch(ctx context.Context, url string) (*port.FetchedPage, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.FetchedPage), args.Error(1)
}
