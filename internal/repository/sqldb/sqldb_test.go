package sqldb_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfpflow/internal/config"
	"rfpflow/internal/domain"
	"rfpflow/internal/repository/sqldb"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	cfg := &config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "rfpflow_test.db"),
	}
	require.NoError(t, sqldb.MigrateUp(cfg))
	// Applying twice is a no-op.
	require.NoError(t, sqldb.MigrateUp(cfg))

	db, err := sqldb.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCatalogRepo_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	repo := sqldb.NewCatalogRepo(db)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, repo.Create(ctx, &domain.Product{SKU: "S1", Name: "Laptop Pro", Category: "Hardware", BaseCost: 1000}))
	require.NoError(t, repo.Create(ctx, &domain.Product{SKU: "S2", Name: "Office 365", Category: "Software", BaseCost: 500.5, Description: "subscription"}))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "S1", products[0].SKU)
	assert.Equal(t, 1000.0, products[0].BaseCost)
	assert.False(t, products[0].CreatedAt.IsZero())

	p, err := repo.GetBySKU(ctx, "S2")
	require.NoError(t, err)
	assert.Equal(t, "Office 365", p.Name)
	assert.Equal(t, 500.5, p.BaseCost)
	assert.Equal(t, "subscription", p.Description)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCatalogRepo_GetBySKU_NotFound(t *testing.T) {
	repo := sqldb.NewCatalogRepo(newTestDB(t))

	_, err := repo.GetBySKU(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogRepo_DuplicateSKU_LeavesRowUnchanged(t *testing.T) {
	repo := sqldb.NewCatalogRepo(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Product{SKU: "S1", Name: "Laptop Pro", Category: "Hardware", BaseCost: 1000}))

	err := repo.Create(ctx, &domain.Product{SKU: "S1", Name: "Imposter", Category: "Software", BaseCost: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)

	p, err := repo.GetBySKU(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro", p.Name)
	assert.Equal(t, "Hardware", p.Category)
	assert.Equal(t, 1000.0, p.BaseCost)
}

func TestCatalogRepo_ConcurrentDuplicateInserts(t *testing.T) {
	repo := sqldb.NewCatalogRepo(newTestDB(t))
	ctx := context.Background()

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, &domain.Product{SKU: "RACE", Name: "Racer", Category: "Hardware", BaseCost: float64(i)})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrDuplicateSKU), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPricingRuleRepo(t *testing.T) {
	repo := sqldb.NewPricingRuleRepo(newTestDB(t))
	ctx := context.Background()

	rules, err := repo.GetRules(ctx)
	require.NoError(t, err)
	assert.Empty(t, rules)

	require.NoError(t, repo.Upsert(ctx, domain.RuleStandardMarginPercent, 15))
	require.NoError(t, repo.Upsert(ctx, domain.RuleTaxRatePercent, 18))
	require.NoError(t, repo.Upsert(ctx, domain.RuleStandardMarginPercent, 12.5))

	rules, err = repo.GetRules(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PricingRules{
		domain.RuleStandardMarginPercent: 12.5,
		domain.RuleTaxRatePercent:        18,
	}, rules)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func newRun(title string, createdAt time.Time) *domain.Run {
	sales, _ := json.Marshal(map[string]any{"rfp_metadata": map[string]string{"title": title}})
	return &domain.Run{
		CreatedAt:     createdAt,
		InputText:     "input for " + title,
		Title:         title,
		SalesData:     sales,
		TechData:      json.RawMessage(`{"overall_match_percent":100}`),
		PricingData:   json.RawMessage(`{"total_cost":"10.00"}`),
		FinalResponse: json.RawMessage(`{"final_document_text":"# RFP"}`),
	}
}

func TestRunRepo_CreateAndGet(t *testing.T) {
	repo := sqldb.NewRunRepo(newTestDB(t))
	ctx := context.Background()

	run := newRun("Tender A", time.Time{})
	require.NoError(t, repo.Create(ctx, run))
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, domain.RunStatusPending, run.Status)

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "Tender A", got.Title)
	assert.Equal(t, "input for Tender A", got.InputText)
	assert.Equal(t, domain.RunStatusPending, got.Status)
	assert.JSONEq(t, string(run.SalesData), string(got.SalesData))
	assert.JSONEq(t, `{"total_cost":"10.00"}`, string(got.PricingData))
	assert.WithinDuration(t, run.CreatedAt, got.CreatedAt, time.Second)
}

func TestRunRepo_GetByID_NotFound(t *testing.T) {
	repo := sqldb.NewRunRepo(newTestDB(t))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunRepo_UpdateStatus(t *testing.T) {
	repo := sqldb.NewRunRepo(newTestDB(t))
	ctx := context.Background()

	run := newRun("Tender A", time.Time{})
	require.NoError(t, repo.Create(ctx, run))

	require.NoError(t, repo.UpdateStatus(ctx, run.ID, domain.RunStatusApproved))
	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusApproved, got.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, run.ID, "archived"), domain.ErrInvalidRunStatus)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), domain.RunStatusDeclined), domain.ErrNotFound)
}

func TestStatsRepo_GetDashboardStats(t *testing.T) {
	db := newTestDB(t)
	runs := sqldb.NewRunRepo(db)
	stats := sqldb.NewStatsRepo(db)
	ctx := context.Background()

	empty, err := stats.GetDashboardStats(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Pending)
	assert.NotNil(t, empty.RecentActivity)
	assert.Empty(t, empty.RecentActivity)

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 7; i++ {
		run := newRun(string(rune('A'+i)), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, runs.Create(ctx, run))
		ids = append(ids, run.ID)
	}
	require.NoError(t, runs.UpdateStatus(ctx, ids[0], domain.RunStatusApproved))
	require.NoError(t, runs.UpdateStatus(ctx, ids[1], domain.RunStatusApproved))
	require.NoError(t, runs.UpdateStatus(ctx, ids[2], domain.RunStatusDeclined))

	got, err := stats.GetDashboardStats(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Approved)
	assert.Equal(t, 1, got.Declined)
	assert.Equal(t, 4, got.Pending)

	require.Len(t, got.RecentActivity, 5)
	assert.Equal(t, ids[6], got.RecentActivity[0].ID)
	assert.Equal(t, "G", got.RecentActivity[0].Title)
	assert.Equal(t, domain.RunStatusPending, got.RecentActivity[0].Status)
	assert.True(t, got.RecentActivity[0].Date.Equal(base.Add(6*time.Minute)))
	assert.Equal(t, ids[2], got.RecentActivity[4].ID)
	assert.Equal(t, domain.RunStatusDeclined, got.RecentActivity[4].Status)
}
