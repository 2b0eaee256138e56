package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"rfpflow/internal/composer"
	"rfpflow/internal/domain"
	"rfpflow/internal/matcher"
	"rfpflow/internal/port"
	"rfpflow/internal/pricer"
	"rfpflow/internal/quoteexport"
)

// ProcessRFPInput is the DTO for a pipeline request.
type ProcessRFPInput struct {
	Input string `json:"input" binding:"required"`
}

// PipelineService runs the four-stage RFP pipeline.
type PipelineService interface {
	Run(ctx context.Context, input string) (*domain.RunResult, error)
}

// PipelineDeps groups the collaborators of the pipeline.
type PipelineDeps struct {
	Extractor   port.SalesExtractor
	Matcher     *matcher.Matcher
	Pricer      *pricer.Pricer
	Composer    *composer.Composer
	CatalogRepo port.CatalogRepository
	RulesRepo   port.PricingRuleRepository
	RunRepo     port.RunRepository
	Artifacts   *ArtifactStore
	Notifier    port.ProposalNotifier
	// RunTimeout bounds a whole run when positive.
	RunTimeout time.Duration
}

type pipelineService struct {
	deps PipelineDeps
}

// NewPipelineService creates a new PipelineService implementation.
func NewPipelineService(deps PipelineDeps) PipelineService {
	return &pipelineService{deps: deps}
}

// Run executes Extracting, Matching, Pricing and Composing in order.
// Extraction degrades instead of failing; a data-consistency error in pricing
// aborts the run. Artifacts, history and notification are best effort.
func (s *pipelineService) Run(ctx context.Context, input string) (*domain.RunResult, error) {
	// Whitespace-only input is empty, but the extractor sees the input verbatim.
	if strings.TrimSpace(input) == "" {
		return nil, domain.ErrEmptyInput
	}
	if s.deps.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.deps.RunTimeout)
		defer cancel()
	}

	runID := runRef{ID: uuid.New(), RequestID: RequestIDFrom(ctx)}
	log.Printf("pipeline: run %s started", runID)

	// The catalog and rules are read once so every stage sees the same data.
	catalog, err := s.deps.CatalogRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline.Run: loading catalog: %w", err)
	}
	rules, err := s.deps.RulesRepo.GetRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline.Run: loading pricing rules: %w", err)
	}

	s.enter(runID, domain.StageExtracting)
	sales := s.deps.Extractor.Extract(ctx, input)
	if sales.Error != "" {
		log.Printf("pipeline: run %s extraction degraded: %s", runID, sales.Error)
	}
	s.putJSON(ctx, runID, domain.ArtifactSales, sales)

	if err := s.checkpoint(ctx, domain.StageMatching); err != nil {
		return nil, err
	}
	s.enter(runID, domain.StageMatching)
	technical := s.deps.Matcher.Match(sales.Items, catalog)
	s.putJSON(ctx, runID, domain.ArtifactTechnical, technical)

	if err := s.checkpoint(ctx, domain.StagePricing); err != nil {
		return nil, err
	}
	s.enter(runID, domain.StagePricing)
	pricing, err := s.deps.Pricer.Price(technical.MatchedSKUs, catalog, rules)
	if err != nil {
		log.Printf("pipeline: run %s aborted: %v", runID, err)
		return nil, fmt.Errorf("pipeline.Run: %w", err)
	}
	s.putJSON(ctx, runID, domain.ArtifactPricing, pricing)

	if err := s.checkpoint(ctx, domain.StageComposing); err != nil {
		return nil, err
	}
	s.enter(runID, domain.StageComposing)
	master := s.deps.Composer.Compose(sales, technical, pricing)
	s.putJSON(ctx, runID, domain.ArtifactMaster, master)
	s.put(ctx, runID, domain.ArtifactProposal, "text/markdown; charset=utf-8", []byte(master.FinalDocumentText))

	result := &domain.RunResult{
		ID:     runID.ID,
		Status: domain.PipelineStatusComplete,
		Workflow: domain.Workflow{
			Sales:     sales,
			Technical: technical,
			Pricing:   pricing,
			Master:    master,
		},
		FinalDocument: master.FinalDocumentText,
	}

	// Side channels must not fail a finished run.
	ctx = context.WithoutCancel(ctx)
	s.saveRun(ctx, runID, input, result)
	s.putExports(ctx, runID, technical, pricing)
	if s.deps.Notifier != nil {
		if err := s.deps.Notifier.NotifyProposalReady(ctx, result); err != nil {
			log.Printf("pipeline: run %s notification failed: %v", runID, err)
		}
	}

	s.enter(runID, domain.StageDone)
	return result, nil
}

// runRef names a run in logs, with the originating request id when known.
type runRef struct {
	ID        uuid.UUID
	RequestID string
}

func (r runRef) String() string {
	if r.RequestID == "" {
		return r.ID.String()
	}
	return r.ID.String() + " [" + r.RequestID + "]"
}

func (s *pipelineService) enter(runID runRef, stage domain.Stage) {
	log.Printf("pipeline: run %s stage=%s", runID, stage)
}

// checkpoint fails the run when the run deadline passed before next.
func (s *pipelineService) checkpoint(ctx context.Context, next domain.Stage) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("pipeline.Run: stopped before %s: %w", next, err)
	}
	return nil
}

func (s *pipelineService) saveRun(ctx context.Context, runID runRef, input string, result *domain.RunResult) {
	if s.deps.RunRepo == nil {
		return
	}
	w := result.Workflow
	run := &domain.Run{
		ID:            result.ID,
		InputText:     input,
		Title:         w.Sales.RfpMetadata.Title,
		SalesData:     mustJSON(w.Sales),
		TechData:      mustJSON(w.Technical),
		PricingData:   mustJSON(w.Pricing),
		FinalResponse: mustJSON(w.Master),
		Status:        domain.RunStatusPending,
	}
	if err := s.deps.RunRepo.Create(ctx, run); err != nil {
		log.Printf("pipeline: run %s not saved to history: %v", runID, err)
	}
}

func (s *pipelineService) putExports(ctx context.Context, runID runRef, technical *domain.TechnicalData, pricing *domain.PricingData) {
	var csvBuf bytes.Buffer
	if err := quoteexport.WriteCSV(&csvBuf, technical, pricing); err != nil {
		log.Printf("pipeline: run %s csv export failed: %v", runID, err)
	} else {
		s.put(ctx, runID, domain.ArtifactQuoteCSV, "text/csv; charset=utf-8", csvBuf.Bytes())
	}

	var xlsxBuf bytes.Buffer
	if err := quoteexport.WriteXLSX(&xlsxBuf, technical, pricing); err != nil {
		log.Printf("pipeline: run %s xlsx export failed: %v", runID, err)
	} else {
		s.put(ctx, runID, domain.ArtifactQuoteXLSX, xlsxContentType, xlsxBuf.Bytes())
	}
}

func (s *pipelineService) putJSON(ctx context.Context, runID runRef, name string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("pipeline: run %s artifact %s: %v", runID, name, err)
		return
	}
	s.put(ctx, runID, name, "application/json", data)
}

func (s *pipelineService) put(ctx context.Context, runID runRef, name, contentType string, data []byte) {
	if err := s.deps.Artifacts.Put(ctx, runID.ID, name, contentType, data); err != nil {
		log.Printf("pipeline: run %s artifact not written: %v", runID, err)
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return data
}
