// Package composer renders the final proposal document from the outputs of
// the earlier pipeline stages.
package composer

import (
	"fmt"
	"strings"
	"time"

	"rfpflow/internal/domain"
)

// DefaultCurrencySymbol prefixes every amount in the document.
const DefaultCurrencySymbol = "₹"

// Composer is the fourth pipeline stage.
type Composer struct {
	symbol string
	now    func() time.Time
}

// Option configures a Composer.
type Option func(*Composer)

// WithCurrencySymbol sets the symbol printed before amounts.
func WithCurrencySymbol(symbol string) Option {
	return func(c *Composer) { c.symbol = symbol }
}

// WithClock overrides the clock used for the document date.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) { c.now = now }
}

// New creates a Composer.
func New(opts ...Option) *Composer {
	c := &Composer{symbol: DefaultCurrencySymbol, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Compose builds the structured summary and the markdown proposal together.
func (c *Composer) Compose(sales *domain.SalesData, technical *domain.TechnicalData, pricing *domain.PricingData) *domain.MasterData {
	now := c.now()
	return &domain.MasterData{
		RfpSummary:        sales.RfpMetadata,
		TechnicalSummary:  *technical,
		PricingSummary:    *pricing,
		FinalDocumentText: c.render(sales, technical, pricing, now),
		GeneratedAt:       now,
	}
}

func (c *Composer) render(sales *domain.SalesData, technical *domain.TechnicalData, pricing *domain.PricingData, now time.Time) string {
	md := sales.RfpMetadata
	lines := []string{
		fmt.Sprintf("# RFP Response: %s", md.Title),
		fmt.Sprintf("**Contract ID:** %s", md.ContractID),
		fmt.Sprintf("**Authority:** %s", md.Authority),
		fmt.Sprintf("**Date:** %s", now.Format("2006-01-02")),
		"\n## Executive Summary",
		fmt.Sprintf("We are pleased to submit our proposal. We have achieved a %d%% technical match for your requirements.", technical.OverallMatchPercent),
		"\n## Technical & Commercial Breakdown",
		"| Item | SKU | Qty | Unit Price | Total |",
		"|---|---|---|---|---|",
	}

	for _, line := range pricing.Breakdown {
		lines = append(lines, fmt.Sprintf("| %s | %s | %d | %s%s | %s%s |",
			itemName(technical, line.SKU), line.SKU, line.Quantity,
			c.symbol, line.FinalUnitPrice, c.symbol, line.LineTotal))
	}

	lines = append(lines, fmt.Sprintf("\n**Grand Total:** %s%s", c.symbol, pricing.TotalCost))
	return strings.Join(lines, "\n")
}

// itemName returns the requested item name of the first match for sku.
func itemName(technical *domain.TechnicalData, sku string) string {
	for _, m := range technical.MatchedSKUs {
		if m.MatchedSKU == sku {
			return m.Item
		}
	}
	return sku
}
