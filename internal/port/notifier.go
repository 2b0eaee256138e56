package port

import (
	"context"

	"rfpflow/internal/domain"
)

// ProposalNotifier announces a finished proposal to the sales desk.
type ProposalNotifier interface {
	NotifyProposalReady(ctx context.Context, result *domain.RunResult) error
}
