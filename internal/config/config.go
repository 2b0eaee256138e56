package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Artifacts ArtifactsConfig
	S3        S3Config
	Notify    NotifyConfig
	Log       LogConfig
	CORS      CORSConfig
	Extractor ExtractorConfig
	Matcher   MatcherConfig
	Pricing   PricingConfig
	Pipeline  PipelineConfig
	Seed      SeedConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds database connection settings. Driver is "pgx" for
// PostgreSQL or "sqlite" for a local database file.
type DBConfig struct {
	Driver     string `mapstructure:"driver"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SSLMode    string `mapstructure:"sslmode"`
	SQLitePath string `mapstructure:"sqlite_path"`
	MaxOpen    int    `mapstructure:"max_open"`
	MaxIdle    int    `mapstructure:"max_idle"`
}

// DSN returns the connection string for the configured driver.
func (d *DBConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.SQLitePath
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Supported database drivers.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// AuthConfig holds the admin credential. AdminPasswordHash is a bcrypt hash.
type AuthConfig struct {
	AdminPasswordHash string `mapstructure:"admin_password_hash"`
}

// ArtifactsConfig selects where per-run artifacts are written.
type ArtifactsConfig struct {
	Backend  string `mapstructure:"backend"`
	LocalDir string `mapstructure:"local_dir"`
	Prefix   string `mapstructure:"prefix"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// NotifyConfig holds proposal notification settings.
type NotifyConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	Recipients  []string `mapstructure:"recipients"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ExtractorConfig controls URL fetching and keyword detection.
type ExtractorConfig struct {
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
	Keywords       []string      `mapstructure:"keywords"`
	QuantityWindow int           `mapstructure:"quantity_window"`
}

// MatcherConfig holds the SKU scoring weights.
type MatcherConfig struct {
	NameWeight      int `mapstructure:"name_weight"`
	CategoryWeight  int `mapstructure:"category_weight"`
	ConfidenceBoost int `mapstructure:"confidence_boost"`
}

// PricingConfig holds quote currency settings.
type PricingConfig struct {
	CurrencyCode   string `mapstructure:"currency_code"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// PipelineConfig holds run-level settings. A zero RunTimeout disables it.
type PipelineConfig struct {
	RunTimeout time.Duration `mapstructure:"run_timeout"`
}

// SeedConfig optionally overrides the embedded catalog and pricing seeds.
type SeedConfig struct {
	CatalogFile string `mapstructure:"catalog_file"`
	RulesFile   string `mapstructure:"rules_file"`
}

// MaxQuantityWindow is the largest repeat count the regexp engine accepts.
const MaxQuantityWindow = 1000

// DefaultKeywords is the controlled vocabulary of requestable items.
var DefaultKeywords = []string{"Laptop", "Server", "Cable", "Software", "Office 365", "Switch", "Router"}

// Load reads configuration from environment variables with the RFPFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RFPFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "rfpflow")
	v.SetDefault("db.password", "rfpflow_secret")
	v.SetDefault("db.name", "rfpflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.sqlite_path", "rfp_database.db")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT / auth defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "1h")
	v.SetDefault("jwt.issuer", "rfpflow")
	v.SetDefault("auth.admin_password_hash", "")

	// Artifact defaults
	v.SetDefault("artifacts.backend", "local")
	v.SetDefault("artifacts.local_dir", "outputs")
	v.SetDefault("artifacts.prefix", "runs")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "rfpflow-artifacts")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Notify defaults
	v.SetDefault("notify.provider", "noop")
	v.SetDefault("notify.region", "ap-south-1")
	v.SetDefault("notify.from_address", "proposals@rfpflow.local")
	v.SetDefault("notify.from_name", "RFP Desk")
	v.SetDefault("notify.recipients", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Extractor defaults
	v.SetDefault("extractor.fetch_timeout", "10s")
	v.SetDefault("extractor.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("extractor.keywords", strings.Join(DefaultKeywords, ","))
	v.SetDefault("extractor.quantity_window", 20)

	// Matcher defaults
	v.SetDefault("matcher.name_weight", 50)
	v.SetDefault("matcher.category_weight", 30)
	v.SetDefault("matcher.confidence_boost", 40)

	// Pricing defaults
	v.SetDefault("pricing.currency_code", "INR")
	v.SetDefault("pricing.currency_symbol", "₹")

	v.SetDefault("pipeline.run_timeout", "0s")

	v.SetDefault("seed.catalog_file", "")
	v.SetDefault("seed.rules_file", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "RFPFLOW_SERVER_PORT",
		"server.read_timeout":       "RFPFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "RFPFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":        "RFPFLOW_SERVER_ENVIRONMENT",
		"db.driver":                 "RFPFLOW_DB_DRIVER",
		"db.host":                   "RFPFLOW_DB_HOST",
		"db.port":                   "RFPFLOW_DB_PORT",
		"db.user":                   "RFPFLOW_DB_USER",
		"db.password":               "RFPFLOW_DB_PASSWORD",
		"db.name":                   "RFPFLOW_DB_NAME",
		"db.sslmode":                "RFPFLOW_DB_SSLMODE",
		"db.sqlite_path":            "RFPFLOW_DB_SQLITE_PATH",
		"db.max_open":               "RFPFLOW_DB_MAX_OPEN",
		"db.max_idle":               "RFPFLOW_DB_MAX_IDLE",
		"jwt.secret":                "RFPFLOW_JWT_SECRET",
		"jwt.access_expiry":         "RFPFLOW_JWT_ACCESS_EXPIRY",
		"jwt.issuer":                "RFPFLOW_JWT_ISSUER",
		"auth.admin_password_hash":  "RFPFLOW_AUTH_ADMIN_PASSWORD_HASH",
		"artifacts.backend":         "RFPFLOW_ARTIFACTS_BACKEND",
		"artifacts.local_dir":       "RFPFLOW_ARTIFACTS_LOCAL_DIR",
		"artifacts.prefix":          "RFPFLOW_ARTIFACTS_PREFIX",
		"s3.region":                 "RFPFLOW_S3_REGION",
		"s3.bucket":                 "RFPFLOW_S3_BUCKET",
		"s3.endpoint":               "RFPFLOW_S3_ENDPOINT",
		"s3.access_key":             "RFPFLOW_S3_ACCESS_KEY",
		"s3.secret_key":             "RFPFLOW_S3_SECRET_KEY",
		"s3.presign_expiry":         "RFPFLOW_S3_PRESIGN_EXPIRY",
		"notify.provider":           "RFPFLOW_NOTIFY_PROVIDER",
		"notify.region":             "RFPFLOW_NOTIFY_REGION",
		"notify.from_address":       "RFPFLOW_NOTIFY_FROM_ADDRESS",
		"notify.from_name":          "RFPFLOW_NOTIFY_FROM_NAME",
		"notify.recipients":         "RFPFLOW_NOTIFY_RECIPIENTS",
		"log.level":                 "RFPFLOW_LOG_LEVEL",
		"log.format":                "RFPFLOW_LOG_FORMAT",
		"cors.allowed_origins":      "RFPFLOW_CORS_ALLOWED_ORIGINS",
		"extractor.fetch_timeout":   "RFPFLOW_EXTRACTOR_FETCH_TIMEOUT",
		"extractor.user_agent":      "RFPFLOW_EXTRACTOR_USER_AGENT",
		"extractor.keywords":        "RFPFLOW_EXTRACTOR_KEYWORDS",
		"extractor.quantity_window": "RFPFLOW_EXTRACTOR_QUANTITY_WINDOW",
		"matcher.name_weight":       "RFPFLOW_MATCHER_NAME_WEIGHT",
		"matcher.category_weight":   "RFPFLOW_MATCHER_CATEGORY_WEIGHT",
		"matcher.confidence_boost":  "RFPFLOW_MATCHER_CONFIDENCE_BOOST",
		"pricing.currency_code":     "RFPFLOW_PRICING_CURRENCY_CODE",
		"pricing.currency_symbol":   "RFPFLOW_PRICING_CURRENCY_SYMBOL",
		"pipeline.run_timeout":      "RFPFLOW_PIPELINE_RUN_TIMEOUT",
		"seed.catalog_file":         "RFPFLOW_SEED_CATALOG_FILE",
		"seed.rules_file":           "RFPFLOW_SEED_RULES_FILE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if RFPFLOW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("RFPFLOW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Driver:     v.GetString("db.driver"),
		Host:       v.GetString("db.host"),
		Port:       v.GetInt("db.port"),
		User:       v.GetString("db.user"),
		Password:   v.GetString("db.password"),
		Name:       v.GetString("db.name"),
		SSLMode:    v.GetString("db.sslmode"),
		SQLitePath: v.GetString("db.sqlite_path"),
		MaxOpen:    v.GetInt("db.max_open"),
		MaxIdle:    v.GetInt("db.max_idle"),
	}
	if cfg.DB.Driver != DriverPostgres && cfg.DB.Driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported db driver %q (want %s or %s)", cfg.DB.Driver, DriverPostgres, DriverSQLite)
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.Auth = AuthConfig{
		AdminPasswordHash: v.GetString("auth.admin_password_hash"),
	}
	cfg.Artifacts = ArtifactsConfig{
		Backend:  v.GetString("artifacts.backend"),
		LocalDir: v.GetString("artifacts.local_dir"),
		Prefix:   v.GetString("artifacts.prefix"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Notify = NotifyConfig{
		Provider:    v.GetString("notify.provider"),
		Region:      v.GetString("notify.region"),
		FromAddress: v.GetString("notify.from_address"),
		FromName:    v.GetString("notify.from_name"),
		Recipients:  SplitList(v.GetString("notify.recipients")),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: SplitList(v.GetString("cors.allowed_origins")),
	}

	cfg.Extractor = ExtractorConfig{
		FetchTimeout:   v.GetDuration("extractor.fetch_timeout"),
		UserAgent:      v.GetString("extractor.user_agent"),
		Keywords:       SplitList(v.GetString("extractor.keywords")),
		QuantityWindow: v.GetInt("extractor.quantity_window"),
	}
	if w := cfg.Extractor.QuantityWindow; w < 0 || w > MaxQuantityWindow {
		return nil, fmt.Errorf("extractor quantity window %d out of range (0..%d)", w, MaxQuantityWindow)
	}
	cfg.Matcher = MatcherConfig{
		NameWeight:      v.GetInt("matcher.name_weight"),
		CategoryWeight:  v.GetInt("matcher.category_weight"),
		ConfidenceBoost: v.GetInt("matcher.confidence_boost"),
	}
	cfg.Pricing = PricingConfig{
		CurrencyCode:   v.GetString("pricing.currency_code"),
		CurrencySymbol: v.GetString("pricing.currency_symbol"),
	}
	cfg.Pipeline = PipelineConfig{
		RunTimeout: v.GetDuration("pipeline.run_timeout"),
	}
	cfg.Seed = SeedConfig{
		CatalogFile: v.GetString("seed.catalog_file"),
		RulesFile:   v.GetString("seed.rules_file"),
	}

	return cfg, nil
}

// SplitList parses a comma-separated value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
