// Package app wires configuration, stores, storage and the pipeline stages
// into a runnable application shared by the server and the CLI.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/afero"

	"rfpflow/internal/composer"
	"rfpflow/internal/config"
	"rfpflow/internal/extractor"
	"rfpflow/internal/matcher"
	"rfpflow/internal/notify/noop"
	sesnotify "rfpflow/internal/notify/ses"
	"rfpflow/internal/port"
	"rfpflow/internal/pricer"
	"rfpflow/internal/repository/sqldb"
	"rfpflow/internal/seed"
	"rfpflow/internal/service"
	"rfpflow/internal/storage/local"
	s3storage "rfpflow/internal/storage/s3"
)

// Artifact storage backends.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Notification providers.
const (
	NotifyNoop = "noop"
	NotifySES  = "ses"
)

// App holds the opened stores and the services built on them.
type App struct {
	Config *config.Config
	DB     *sqlx.DB

	CatalogRepo port.CatalogRepository
	RulesRepo   port.PricingRuleRepository
	RunRepo     port.RunRepository
	StatsRepo   port.StatsRepository
	Storage     port.ObjectStorage

	Pipeline service.PipelineService
	Catalog  service.CatalogService
	Runs     service.RunService
	Stats    service.StatsService
	Auth     service.AuthService
}

// New migrates and opens the database, seeds empty stores and builds every
// service. Callers must Close the returned App.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	configureLogging(cfg)

	if err := sqldb.MigrateUp(&cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sqldb.NewDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	a := &App{
		Config:      cfg,
		DB:          db,
		CatalogRepo: sqldb.NewCatalogRepo(db),
		RulesRepo:   sqldb.NewPricingRuleRepo(db),
		RunRepo:     sqldb.NewRunRepo(db),
		StatsRepo:   sqldb.NewStatsRepo(db),
	}

	data, err := seed.Load(afero.NewOsFs(), cfg.Seed.CatalogFile, cfg.Seed.RulesFile)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}
	if err := seed.Apply(ctx, a.CatalogRepo, a.RulesRepo, data); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed stores: %w", err)
	}

	a.Storage, err = newStorage(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}
	notifier, err := newNotifier(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	ex, err := newExtractor(&cfg.Extractor)
	if err != nil {
		db.Close()
		return nil, err
	}

	a.Pipeline = service.NewPipelineService(service.PipelineDeps{
		Extractor:   ex,
		Matcher:     matcher.New(matcherWeights(&cfg.Matcher)),
		Pricer:      pricer.New(cfg.Pricing.CurrencyCode),
		Composer:    composer.New(composer.WithCurrencySymbol(cfg.Pricing.CurrencySymbol)),
		CatalogRepo: a.CatalogRepo,
		RulesRepo:   a.RulesRepo,
		RunRepo:     a.RunRepo,
		Artifacts:   service.NewArtifactStore(a.Storage, artifactBucket(cfg), cfg.Artifacts.Prefix),
		Notifier:    notifier,
		RunTimeout:  cfg.Pipeline.RunTimeout,
	})
	a.Catalog = service.NewCatalogService(a.CatalogRepo)
	a.Runs = service.NewRunService(a.RunRepo)
	a.Stats = service.NewStatsService(a.StatsRepo)
	a.Auth = service.NewAuthService(cfg.JWT, cfg.Auth)

	return a, nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
}

func configureLogging(cfg *config.Config) {
	if cfg.Log.Format == "console" {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else {
		log.SetFlags(log.LstdFlags | log.LUTC)
	}
	if cfg.Log.Level != "debug" || cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}

func newStorage(cfg *config.Config) (port.ObjectStorage, error) {
	switch cfg.Artifacts.Backend {
	case BackendS3:
		client, err := s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		return client, nil
	case BackendLocal, "":
		return local.NewOSStorage(cfg.Artifacts.LocalDir), nil
	default:
		return nil, fmt.Errorf("unsupported artifacts backend %q", cfg.Artifacts.Backend)
	}
}

// artifactBucket is the S3 bucket, or a subdirectory of the local root.
func artifactBucket(cfg *config.Config) string {
	if cfg.Artifacts.Backend == BackendS3 {
		return cfg.S3.Bucket
	}
	return ""
}

func newNotifier(cfg *config.Config) (port.ProposalNotifier, error) {
	switch cfg.Notify.Provider {
	case NotifySES:
		n, err := sesnotify.NewSESNotifier(&cfg.Notify)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES notifier: %w", err)
		}
		return n, nil
	case NotifyNoop, "":
		return noop.NewNoopNotifier(), nil
	default:
		return nil, fmt.Errorf("unsupported notify provider %q", cfg.Notify.Provider)
	}
}

func newExtractor(cfg *config.ExtractorConfig) (*extractor.Extractor, error) {
	keywords := cfg.Keywords
	if len(keywords) == 0 {
		keywords = config.DefaultKeywords
	}
	window := cfg.QuantityWindow
	if window <= 0 {
		window = extractor.DefaultQuantityWindow
	}

	var opts []extractor.FetcherOption
	if cfg.FetchTimeout > 0 {
		opts = append(opts, extractor.WithTimeout(cfg.FetchTimeout))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, extractor.WithUserAgent(cfg.UserAgent))
	}
	detector, err := extractor.NewItemDetector(keywords, window)
	if err != nil {
		return nil, fmt.Errorf("failed to build item detector: %w", err)
	}
	return extractor.New(extractor.NewHTTPFetcher(opts...), detector), nil
}

func matcherWeights(cfg *config.MatcherConfig) matcher.Weights {
	w := matcher.DefaultWeights()
	if cfg.NameWeight > 0 {
		w.Name = cfg.NameWeight
	}
	if cfg.CategoryWeight > 0 {
		w.Category = cfg.CategoryWeight
	}
	if cfg.ConfidenceBoost > 0 {
		w.ConfidenceBoost = cfg.ConfidenceBoost
	}
	return w
}

// ReadinessTimeout bounds the database ping in /readyz.
const ReadinessTimeout = 2 * time.Second

// Ping checks the database connection.
func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ReadinessTimeout)
	defer cancel()
	return a.DB.PingContext(ctx)
}
