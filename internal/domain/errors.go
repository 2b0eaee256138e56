package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Input validation, rejected before any pipeline stage runs.
	ErrEmptyInput          = errors.New("no input provided")
	ErrInvalidProduct      = errors.New("missing required product fields")
	ErrInvalidRunStatus    = errors.New("invalid run status")
	ErrInvalidExportFormat = errors.New("unsupported export format")

	// Catalog mutation conflicts.
	ErrDuplicateSKU = errors.New("sku already exists")

	// Data-consistency failures abort a pipeline run.
	ErrCatalogInconsistent = errors.New("matched sku is missing from the catalog")
	ErrPricingRuleMissing  = errors.New("required pricing rule is missing")

	ErrUploadFailed = errors.New("artifact upload to storage failed")
)
