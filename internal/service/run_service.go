package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rfpflow/internal/domain"
	"rfpflow/internal/port"
	"rfpflow/internal/quoteexport"
)

// UpdateRunStatusInput is the DTO for review decisions.
type UpdateRunStatusInput struct {
	Status domain.RunStatus `json:"status" binding:"required"`
}

// QuoteFile is a rendered quote download.
type QuoteFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// RunService reads and reviews persisted runs.
type RunService interface {
	GetRun(ctx context.Context, id uuid.UUID) (*domain.Run, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RunStatus) error
	ExportQuote(ctx context.Context, id uuid.UUID, format domain.ExportFormat) (*QuoteFile, error)
}

type runService struct {
	runRepo port.RunRepository
	now     func() time.Time
}

// NewRunService creates a new RunService implementation.
func NewRunService(runRepo port.RunRepository) RunService {
	return &runService{runRepo: runRepo, now: time.Now}
}

func (s *runService) GetRun(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	return s.runRepo.GetByID(ctx, id)
}

func (s *runService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RunStatus) error {
	if !domain.ValidRunStatuses[status] {
		return domain.ErrInvalidRunStatus
	}
	return s.runRepo.UpdateStatus(ctx, id, status)
}

func (s *runService) ExportQuote(ctx context.Context, id uuid.UUID, format domain.ExportFormat) (*QuoteFile, error) {
	if format == "" {
		format = domain.ExportFormatCSV
	}
	if format != domain.ExportFormatCSV && format != domain.ExportFormatXLSX {
		return nil, domain.ErrInvalidExportFormat
	}

	run, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var technical domain.TechnicalData
	if err := json.Unmarshal(run.TechData, &technical); err != nil {
		return nil, fmt.Errorf("run.ExportQuote: decoding technical data: %w", err)
	}
	var pricing domain.PricingData
	if err := json.Unmarshal(run.PricingData, &pricing); err != nil {
		return nil, fmt.Errorf("run.ExportQuote: decoding pricing data: %w", err)
	}

	var buf bytes.Buffer
	file := &QuoteFile{Filename: quoteexport.BuildFilename(run.Title, string(format), s.now())}
	switch format {
	case domain.ExportFormatXLSX:
		err = quoteexport.WriteXLSX(&buf, &technical, &pricing)
		file.ContentType = xlsxContentType
	default:
		err = quoteexport.WriteCSV(&buf, &technical, &pricing)
		file.ContentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		return nil, fmt.Errorf("run.ExportQuote: %w", err)
	}
	file.Data = buf.Bytes()
	return file, nil
}
