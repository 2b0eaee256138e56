package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BidDates holds the tender opening and closing dates as found in the text.
type BidDates struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RfpMetadata describes the tender itself. Unknown fields carry NotAvailable.
type RfpMetadata struct {
	ContractID    string   `json:"contract_id"`
	Title         string   `json:"title"`
	Authority     string   `json:"authority"`
	Category      string   `json:"category"`
	BidDates      BidDates `json:"bid_dates"`
	Description   string   `json:"description"`
	DeliveryTerms string   `json:"delivery_terms"`
}

// NewRfpMetadata returns metadata with every field set to NotAvailable.
func NewRfpMetadata() RfpMetadata {
	return RfpMetadata{
		ContractID:    NotAvailable,
		Title:         NotAvailable,
		Authority:     NotAvailable,
		Category:      NotAvailable,
		BidDates:      BidDates{Start: NotAvailable, End: NotAvailable},
		Description:   NotAvailable,
		DeliveryTerms: NotAvailable,
	}
}

// RequestedItem is a line the buyer asked for.
type RequestedItem struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

// SalesData is the extractor output. Error carries the diagnostic when the
// extraction degraded.
type SalesData struct {
	RfpMetadata RfpMetadata     `json:"rfp_metadata"`
	Items       []RequestedItem `json:"items"`
	Documents   []string        `json:"documents"`
	Error       string          `json:"error,omitempty"`
}

// NewSalesData returns an empty, fully populated extraction result.
func NewSalesData() *SalesData {
	return &SalesData{
		RfpMetadata: NewRfpMetadata(),
		Items:       []RequestedItem{},
		Documents:   []string{},
	}
}

// Product is a catalog entry.
type Product struct {
	SKU         string    `db:"sku" json:"sku"`
	Name        string    `db:"name" json:"name"`
	Category    string    `db:"category" json:"category"`
	BaseCost    float64   `db:"base_cost" json:"base_cost"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// PricingRule is a single named pricing parameter row.
type PricingRule struct {
	Key   string  `db:"key" json:"key"`
	Value float64 `db:"value" json:"value"`
}

// PricingRules maps rule keys to values.
type PricingRules map[string]float64

// MatchResult is the matcher verdict for one requested item.
type MatchResult struct {
	Item         string `json:"item"`
	MatchedSKU   string `json:"matched_sku"`
	SKUName      string `json:"sku_name,omitempty"`
	MatchPercent int    `json:"match_percent"`
	Quantity     int    `json:"quantity"`
}

// Matched reports whether the item was mapped to a catalog SKU.
func (m MatchResult) Matched() bool {
	return m.MatchedSKU != UnmatchedSKU
}

// TechnicalData is the matcher output.
type TechnicalData struct {
	OverallMatchPercent int           `json:"overall_match_percent"`
	MatchedSKUs         []MatchResult `json:"matched_skus"`
}

// PriceLine is one priced quote line.
type PriceLine struct {
	SKU            string `json:"sku"`
	UnitCost       Amount `json:"unit_cost"`
	ProfitMargin   Amount `json:"profit_margin"`
	Tax            Amount `json:"tax"`
	FinalUnitPrice Amount `json:"final_unit_price"`
	Quantity       int    `json:"quantity"`
	LineTotal      Amount `json:"line_total"`
}

// PricingData is the pricer output. TotalCost sums the displayed (rounded)
// line totals; PreciseTotal sums the unrounded ones.
type PricingData struct {
	TotalCost    Amount      `json:"total_cost"`
	PreciseTotal Amount      `json:"precise_total"`
	Currency     string      `json:"currency"`
	Breakdown    []PriceLine `json:"breakdown"`
}

// MasterData is the composed proposal document.
type MasterData struct {
	RfpSummary        RfpMetadata   `json:"rfp_summary"`
	TechnicalSummary  TechnicalData `json:"technical_summary"`
	PricingSummary    PricingData   `json:"pricing_summary"`
	FinalDocumentText string        `json:"final_document_text"`
	GeneratedAt       time.Time     `json:"generated_at"`
}

// Workflow carries the output of every stage of one run.
type Workflow struct {
	Sales     *SalesData     `json:"sales"`
	Technical *TechnicalData `json:"technical"`
	Pricing   *PricingData   `json:"pricing"`
	Master    *MasterData    `json:"master"`
}

// RunResult is returned to callers of the pipeline.
type RunResult struct {
	ID            uuid.UUID `json:"id"`
	Status        string    `json:"status"`
	Workflow      Workflow  `json:"workflow"`
	FinalDocument string    `json:"final_document"`
}

// Run is a persisted pipeline execution.
type Run struct {
	ID            uuid.UUID       `json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	InputText     string          `json:"input_text"`
	Title         string          `json:"title"`
	SalesData     json.RawMessage `json:"sales_data"`
	TechData      json.RawMessage `json:"tech_data"`
	PricingData   json.RawMessage `json:"pricing_data"`
	FinalResponse json.RawMessage `json:"final_response"`
	Status        RunStatus       `json:"status"`
}

// RecentRun is a dashboard activity entry.
type RecentRun struct {
	ID     uuid.UUID `db:"id" json:"id"`
	Date   time.Time `db:"created_at" json:"date"`
	Status RunStatus `db:"status" json:"status"`
	Title  string    `db:"title" json:"title"`
}

// DashboardStats aggregates run counts by status plus recent activity.
type DashboardStats struct {
	Approved       int         `json:"approved"`
	Declined       int         `json:"declined"`
	Pending        int         `json:"pending"`
	RecentActivity []RecentRun `json:"recent_activity"`
}
