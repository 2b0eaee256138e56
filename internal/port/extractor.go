package port

import (
	"context"

	"rfpflow/internal/domain"
)

// SalesExtractor runs the extraction stage. It never fails; degraded results
// carry a diagnostic in SalesData.Error.
type SalesExtractor interface {
	Extract(ctx context.Context, input string) *domain.SalesData
}
