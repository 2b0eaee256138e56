package domain

// Sentinel values used in place of absent data so every stage output stays
// structurally complete.
const (
	NotAvailable     = "Not available"
	UnmatchedSKU     = NotAvailable
	ManualInputTitle = "Manual Text Input"
)

// RunStatus represents the review lifecycle of a processed RFP.
type RunStatus string

const (
	RunStatusPending  RunStatus = "pending"
	RunStatusApproved RunStatus = "approved"
	RunStatusDeclined RunStatus = "declined"
)

// ValidRunStatuses lists every status a run may be moved to.
var ValidRunStatuses = map[RunStatus]bool{
	RunStatusPending:  true,
	RunStatusApproved: true,
	RunStatusDeclined: true,
}

// PipelineStatusComplete marks a run that went through all four stages.
const PipelineStatusComplete = "complete"

// Pricing rule keys the pricer requires.
const (
	RuleStandardMarginPercent = "standard_margin_percent"
	RuleSoftwareMarginPercent = "software_margin_percent"
	RuleTaxRatePercent        = "tax_rate_percent"
)

// RequiredPricingRules must all be present in the rules store.
var RequiredPricingRules = []string{
	RuleStandardMarginPercent,
	RuleSoftwareMarginPercent,
	RuleTaxRatePercent,
}

// SoftwareCategory selects the software margin instead of the standard one.
const SoftwareCategory = "Software"

// Artifact names written for every run.
const (
	ArtifactSales     = "step1_sales.json"
	ArtifactTechnical = "step2_technical.json"
	ArtifactPricing   = "step3_pricing.json"
	ArtifactMaster    = "step4_master.json"
	ArtifactProposal  = "final_proposal.md"
	ArtifactQuoteCSV  = "quote.csv"
	ArtifactQuoteXLSX = "quote.xlsx"
)

// Stage names a pipeline step.
type Stage string

const (
	StageExtracting Stage = "extracting"
	StageMatching   Stage = "matching"
	StagePricing    Stage = "pricing"
	StageComposing  Stage = "composing"
	StageDone       Stage = "done"
)

// RoleAdmin is the only role allowed on admin routes.
const RoleAdmin = "admin"

// ExportFormat selects the quote download format.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)
