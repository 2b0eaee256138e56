package notify_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"rfpflow/internal/domain"
	"rfpflow/internal/notify"
)

func TestProposalReady(t *testing.T) {
	sales := domain.NewSalesData()
	sales.RfpMetadata.Title = "Supply <of> Laptops"
	result := &domain.RunResult{
		ID:     uuid.MustParse("8f14e45f-ceea-467f-a0b6-2d2c1b1b6d1e"),
		Status: domain.PipelineStatusComplete,
		Workflow: domain.Workflow{
			Sales:     sales,
			Technical: &domain.TechnicalData{OverallMatchPercent: 50},
			Pricing:   &domain.PricingData{TotalCost: 2310, Currency: "INR"},
		},
		FinalDocument: "# RFP Response",
	}

	msg := notify.ProposalReady(result)

	assert.Equal(t, "Proposal ready: Supply <of> Laptops", msg.Subject)
	assert.Contains(t, msg.Text, "Technical match: 50%")
	assert.Contains(t, msg.Text, "Grand total: 2310.00 INR")
	assert.Contains(t, msg.Text, "8f14e45f-ceea-467f-a0b6-2d2c1b1b6d1e")
	assert.Contains(t, msg.HTML, "Supply &lt;of&gt; Laptops")
	assert.Contains(t, msg.HTML, "# RFP Response")
}

func TestProposalReady_MissingStages(t *testing.T) {
	msg := notify.ProposalReady(&domain.RunResult{})

	assert.Equal(t, "Proposal ready: Not available", msg.Subject)
	assert.Contains(t, msg.Text, "Technical match: 0%")
	assert.Contains(t, msg.Text, "Grand total: 0.00")
}
