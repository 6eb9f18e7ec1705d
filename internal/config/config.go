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
	Server  ServerConfig
	DB      DBConfig
	Log     LogConfig
	CORS    CORSConfig
	Remote  RemoteConfig
	Cache   CacheConfig
	Audit   AuditConfig
	Archive ArchiveConfig
	S3      S3Config
}

// Invoice source selectors.
const (
	InvoiceSourceRemote = "remote"
	InvoiceSourceLocal  = "local"
)

// Archive providers.
const (
	ArchiveNoop = "noop"
	ArchiveS3   = "s3"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
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

// RemoteConfig holds the base URLs of the sibling services.
type RemoteConfig struct {
	ContractsURL  string        `mapstructure:"contracts_url"`
	CustomersURL  string        `mapstructure:"customers_url"`
	VehiclesURL   string        `mapstructure:"vehicles_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	InvoiceSource string        `mapstructure:"invoice_source"`
}

// CacheConfig holds Redis settings. An empty address disables caching.
type CacheConfig struct {
	RedisAddr  string        `mapstructure:"redis_addr"`
	VehicleTTL time.Duration `mapstructure:"vehicle_ttl"`
}

// AuditConfig holds generated-report audit sink settings.
type AuditConfig struct {
	BufferSize int    `mapstructure:"buffer_size"`
	Workers    int    `mapstructure:"workers"`
	Actor      string `mapstructure:"actor"`
}

// ArchiveConfig controls where exported report files are kept.
type ArchiveConfig struct {
	Provider      string `mapstructure:"provider"`
	KeyPrefix     string `mapstructure:"key_prefix"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Load reads configuration from environment variables with the RENTDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RENTDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "20s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "rentdesk")
	v.SetDefault("db.password", "rentdesk_secret")
	v.SetDefault("db.name", "rentdesk_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Remote service defaults
	v.SetDefault("remote.contracts_url", "http://localhost:8083")
	v.SetDefault("remote.customers_url", "http://localhost:8081")
	v.SetDefault("remote.vehicles_url", "http://localhost:8082")
	v.SetDefault("remote.timeout", "10s")
	// Invoices issued by this service only reach its own reports through the
	// contracts service. Set "local" when billing runs in this process (see
	// DESIGN.md, "Local invoice source").
	v.SetDefault("remote.invoice_source", InvoiceSourceRemote)

	// Cache defaults
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.vehicle_ttl", "5m")

	// Audit defaults
	v.SetDefault("audit.buffer_size", 256)
	v.SetDefault("audit.workers", 2)
	v.SetDefault("audit.actor", "SISTEMA")

	// Archive defaults
	v.SetDefault("archive.provider", ArchiveNoop)
	v.SetDefault("archive.key_prefix", "reports")
	v.SetDefault("archive.presign_expiry", 3600)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "rentdesk-reports")
	v.SetDefault("s3.endpoint", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "RENTDESK_SERVER_PORT",
		"server.read_timeout":     "RENTDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "RENTDESK_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout": "RENTDESK_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":      "RENTDESK_SERVER_ENVIRONMENT",
		"db.host":                 "RENTDESK_DB_HOST",
		"db.port":                 "RENTDESK_DB_PORT",
		"db.user":                 "RENTDESK_DB_USER",
		"db.password":             "RENTDESK_DB_PASSWORD",
		"db.name":                 "RENTDESK_DB_NAME",
		"db.sslmode":              "RENTDESK_DB_SSLMODE",
		"db.max_open":             "RENTDESK_DB_MAX_OPEN",
		"db.max_idle":             "RENTDESK_DB_MAX_IDLE",
		"log.level":               "RENTDESK_LOG_LEVEL",
		"log.format":              "RENTDESK_LOG_FORMAT",
		"cors.allowed_origins":    "RENTDESK_CORS_ALLOWED_ORIGINS",
		"remote.contracts_url":    "RENTDESK_REMOTE_CONTRACTS_URL",
		"remote.customers_url":    "RENTDESK_REMOTE_CUSTOMERS_URL",
		"remote.vehicles_url":     "RENTDESK_REMOTE_VEHICLES_URL",
		"remote.timeout":          "RENTDESK_REMOTE_TIMEOUT",
		"remote.invoice_source":   "RENTDESK_REMOTE_INVOICE_SOURCE",
		"cache.redis_addr":        "RENTDESK_CACHE_REDIS_ADDR",
		"cache.vehicle_ttl":       "RENTDESK_CACHE_VEHICLE_TTL",
		"audit.buffer_size":       "RENTDESK_AUDIT_BUFFER_SIZE",
		"audit.workers":           "RENTDESK_AUDIT_WORKERS",
		"audit.actor":             "RENTDESK_AUDIT_ACTOR",
		"archive.provider":        "RENTDESK_ARCHIVE_PROVIDER",
		"archive.key_prefix":      "RENTDESK_ARCHIVE_KEY_PREFIX",
		"archive.presign_expiry":  "RENTDESK_ARCHIVE_PRESIGN_EXPIRY",
		"s3.region":               "RENTDESK_S3_REGION",
		"s3.bucket":               "RENTDESK_S3_BUCKET",
		"s3.endpoint":             "RENTDESK_S3_ENDPOINT",
		"s3.access_key":           "RENTDESK_S3_ACCESS_KEY",
		"s3.secret_key":           "RENTDESK_S3_SECRET_KEY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Container platforms set a PORT env var. Use it if RENTDESK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("RENTDESK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Remote = RemoteConfig{
		ContractsURL:  strings.TrimRight(v.GetString("remote.contracts_url"), "/"),
		CustomersURL:  strings.TrimRight(v.GetString("remote.customers_url"), "/"),
		VehiclesURL:   strings.TrimRight(v.GetString("remote.vehicles_url"), "/"),
		Timeout:       v.GetDuration("remote.timeout"),
		InvoiceSource: strings.ToLower(v.GetString("remote.invoice_source")),
	}
	switch cfg.Remote.InvoiceSource {
	case InvoiceSourceRemote, InvoiceSourceLocal:
	default:
		return nil, fmt.Errorf("invalid remote.invoice_source %q: must be remote or local", cfg.Remote.InvoiceSource)
	}

	cfg.Cache = CacheConfig{
		RedisAddr:  v.GetString("cache.redis_addr"),
		VehicleTTL: v.GetDuration("cache.vehicle_ttl"),
	}

	cfg.Audit = AuditConfig{
		BufferSize: v.GetInt("audit.buffer_size"),
		Workers:    v.GetInt("audit.workers"),
		Actor:      v.GetString("audit.actor"),
	}

	cfg.Archive = ArchiveConfig{
		Provider:      strings.ToLower(v.GetString("archive.provider")),
		KeyPrefix:     strings.Trim(v.GetString("archive.key_prefix"), "/"),
		PresignExpiry: v.GetInt64("archive.presign_expiry"),
	}
	switch cfg.Archive.Provider {
	case ArchiveNoop, ArchiveS3:
	default:
		return nil, fmt.Errorf("invalid archive.provider %q: must be noop or s3", cfg.Archive.Provider)
	}

	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}

	return cfg, nil
}
