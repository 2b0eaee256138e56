package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rfpflow/internal/domain"
	"rfpflow/internal/port"
)

type runRepo struct {
	db *sqlx.DB
}

// NewRunRepo creates a new SQL-backed RunRepository.
func NewRunRepo(db *sqlx.DB) port.RunRepository {
	return &runRepo{db: db}
}

// runRow mirrors rfp_requests. JSON columns are read as text so the same
// scan works for JSONB and SQLite TEXT.
type runRow struct {
	ID            uuid.UUID        `db:"id"`
	CreatedAt     time.Time        `db:"created_at"`
	InputText     string           `db:"input_text"`
	Title         string           `db:"title"`
	SalesData     string           `db:"sales_data"`
	TechData      string           `db:"tech_data"`
	PricingData   string           `db:"pricing_data"`
	FinalResponse string           `db:"final_response"`
	Status        domain.RunStatus `db:"status"`
}

func (row *runRow) toDomain() *domain.Run {
	return &domain.Run{
		ID:            row.ID,
		CreatedAt:     row.CreatedAt,
		InputText:     row.InputText,
		Title:         row.Title,
		SalesData:     json.RawMessage(row.SalesData),
		TechData:      json.RawMessage(row.TechData),
		PricingData:   json.RawMessage(row.PricingData),
		FinalResponse: json.RawMessage(row.FinalResponse),
		Status:        row.Status,
	}
}

const runColumns = `id, created_at, input_text, title, sales_data, tech_data, pricing_data, final_response, status`

func (r *runRepo) Create(ctx context.Context, run *domain.Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if run.Status == "" {
		run.Status = domain.RunStatusPending
	}

	query := r.db.Rebind(`INSERT INTO rfp_requests (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.CreatedAt, run.InputText, run.Title,
		jsonText(run.SalesData), jsonText(run.TechData), jsonText(run.PricingData), jsonText(run.FinalResponse),
		run.Status)
	if err != nil {
		return fmt.Errorf("runRepo.Create: %w", err)
	}
	return nil
}

func (r *runRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row,
		r.db.Rebind(`SELECT `+runColumns+` FROM rfp_requests WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("runRepo.GetByID: %w", err)
	}
	return row.toDomain(), nil
}

func (r *runRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RunStatus) error {
	if !domain.ValidRunStatuses[status] {
		return domain.ErrInvalidRunStatus
	}
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE rfp_requests SET status = ? WHERE id = ?`), status, id)
	if err != nil {
		return fmt.Errorf("runRepo.UpdateStatus: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("runRepo.UpdateStatus: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// jsonText stores an empty payload as JSON null.
func jsonText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	return string(raw)
}
