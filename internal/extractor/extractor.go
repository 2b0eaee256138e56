// Package extractor turns a tender URL or pasted tender text into RFP
// metadata and a list of requested items. Extraction is heuristic and never
// fails: problems are reported through SalesData.Error.
package extractor

import (
	"context"
	"fmt"
	"log"
	"strings"

	"rfpflow/internal/domain"
	"rfpflow/internal/port"
)

// Extractor runs the first pipeline stage.
type Extractor struct {
	fetcher  port.PageFetcher
	detector *ItemDetector
	rules    []Rule
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRules replaces the default metadata rules. Order is preserved.
func WithRules(rules ...Rule) Option {
	return func(e *Extractor) { e.rules = rules }
}

// New creates an Extractor using fetcher for URL input and detector for items.
func New(fetcher port.PageFetcher, detector *ItemDetector, opts ...Option) *Extractor {
	e := &Extractor{
		fetcher:  fetcher,
		detector: detector,
		rules:    DefaultRules(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// IsURL reports whether input should be fetched rather than read as text.
func IsURL(input string) bool {
	s := strings.ToLower(strings.TrimSpace(input))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Extract never returns nil. On fetch or parse failure the metadata keeps its
// sentinels, the item list is empty and Error explains what went wrong.
func (e *Extractor) Extract(ctx context.Context, input string) (data *domain.SalesData) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("extractor: recovered from panic: %v", r)
			data = degraded(fmt.Sprintf("extraction failed: %v", r))
		}
	}()

	data = domain.NewSalesData()

	var text string
	if IsURL(input) {
		pageURL := strings.TrimSpace(input)
		log.Printf("extractor: fetching %s", pageURL)

		page, err := e.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			log.Printf("extractor: fetch failed: %v", err)
			return degraded(err.Error())
		}
		parsed, err := parseHTML(page.Body, page.URL)
		if err != nil {
			log.Printf("extractor: parse failed: %v", err)
			return degraded(fmt.Sprintf("parsing html: %v", err))
		}
		if parsed.Title != "" {
			data.RfpMetadata.Title = parsed.Title
		}
		data.Documents = parsed.Documents
		text = parsed.Text
	} else {
		data.RfpMetadata.Title = domain.ManualInputTitle
		data.RfpMetadata.Description = input
		text = input
	}

	applyRules(e.rules, text, &data.RfpMetadata)
	data.Items = e.detector.Detect(text)

	log.Printf("extractor: title=%q contract_id=%q items=%d", data.RfpMetadata.Title, data.RfpMetadata.ContractID, len(data.Items))
	return data
}

func degraded(diagnostic string) *domain.SalesData {
	d := domain.NewSalesData()
	d.Error = diagnostic
	return d
}
