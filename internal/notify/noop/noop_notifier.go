package noop

import (
	"context"
	"log"

	"rfpflow/internal/domain"
	"rfpflow/internal/notify"
	"rfpflow/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a ProposalNotifier that only logs.
func NewNoopNotifier() port.ProposalNotifier {
	return &noopNotifier{}
}

func (n *noopNotifier) NotifyProposalReady(_ context.Context, result *domain.RunResult) error {
	msg := notify.ProposalReady(result)
	log.Printf("[NOOP NOTIFY] %s (run %s)", msg.Subject, result.ID)
	return nil
}
