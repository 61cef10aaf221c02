package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the complete service configuration. Values come from Default,
// then an optional TOML file, then environment variables.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Storage   StorageConfig   `toml:"storage"`
	Jobs      JobsConfig      `toml:"jobs"`
	Log       LogConfig       `toml:"log"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
}

type ServerConfig struct {
	Port            int           `toml:"port"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	CORSOrigins     []string      `toml:"cors_origins"`
}

type DatabaseConfig struct {
	URL             string        `toml:"url"`
	MaxConns        int32         `toml:"max_conns"`
	MinConns        int32         `toml:"min_conns"`
	MaxConnLifetime time.Duration `toml:"max_conn_lifetime"`
	ConnectTimeout  time.Duration `toml:"connect_timeout"`
}

// RedisConfig backs rate limiting and the lease summary cache.
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StorageConfig points at the S3-compatible store for published reports.
type StorageConfig struct {
	Enabled    bool          `toml:"enabled"`
	Endpoint   string        `toml:"endpoint"`
	AccessKey  string        `toml:"access_key"`
	SecretKey  string        `toml:"secret_key"`
	UseSSL     bool          `toml:"use_ssl"`
	Bucket     string        `toml:"bucket"`
	LinkExpiry time.Duration `toml:"link_expiry"`
}

type JobsConfig struct {
	Enabled           bool          `toml:"enabled"`
	LeaseScanInterval time.Duration `toml:"lease_scan_interval"`
	LeaseWindowDays   int           `toml:"lease_window_days"`
	SummaryTTL        time.Duration `toml:"summary_ttl"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type RateLimitConfig struct {
	Enabled  bool          `toml:"enabled"`
	Requests int           `toml:"requests"`
	Window   time.Duration `toml:"window"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			MaxConns:       10,
			ConnectTimeout: 10 * time.Second,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Storage: StorageConfig{
			Endpoint:   "localhost:9000",
			Bucket:     "reports",
			LinkExpiry: 24 * time.Hour,
		},
		Jobs: JobsConfig{
			Enabled:           true,
			LeaseScanInterval: time.Hour,
			LeaseWindowDays:   30,
			SummaryTTL:        24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		RateLimit: RateLimitConfig{
			Requests: 120,
			Window:   time.Minute,
		},
	}
}

// Load builds the configuration. path may be empty.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with the deployment environment. Setting
// REDIS_ADDR or MINIO_ENDPOINT enables that backend.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) bool {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
			return true
		}
		return false
	}

	var errs []error
	integer := func(key string, dst *int) {
		var raw string
		if !str(key, &raw) {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s must be an integer, got %q", key, raw))
			return
		}
		*dst = n
	}
	boolean := func(key string, dst *bool) {
		var raw string
		if !str(key, &raw) {
			return
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s must be true or false, got %q", key, raw))
			return
		}
		*dst = b
	}

	str("DATABASE_URL", &c.Database.URL)
	integer("PORT", &c.Server.Port)

	if str("REDIS_ADDR", &c.Redis.Addr) {
		c.Redis.Enabled = true
	}
	str("REDIS_PASSWORD", &c.Redis.Password)
	integer("REDIS_DB", &c.Redis.DB)

	if str("MINIO_ENDPOINT", &c.Storage.Endpoint) {
		c.Storage.Enabled = true
	}
	str("MINIO_ACCESS_KEY", &c.Storage.AccessKey)
	str("MINIO_SECRET_KEY", &c.Storage.SecretKey)
	boolean("MINIO_USE_SSL", &c.Storage.UseSSL)
	str("MINIO_BUCKET", &c.Storage.Bucket)

	boolean("JOBS_ENABLED", &c.Jobs.Enabled)
	integer("LEASE_WINDOW_DAYS", &c.Jobs.LeaseWindowDays)

	boolean("RATE_LIMIT_ENABLED", &c.RateLimit.Enabled)
	integer("RATE_LIMIT_REQUESTS", &c.RateLimit.Requests)

	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	return errors.Join(errs...)
}

func (c *Config) Validate() error {
	var errs []error

	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Server.Port))
	}
	if c.Storage.Enabled && (c.Storage.AccessKey == "" || c.Storage.SecretKey == "") {
		errs = append(errs, errors.New("storage requires MINIO_ACCESS_KEY and MINIO_SECRET_KEY"))
	}
	if c.Jobs.Enabled && c.Jobs.LeaseScanInterval <= 0 {
		errs = append(errs, errors.New("jobs.lease_scan_interval must be positive"))
	}
	if c.Jobs.LeaseWindowDays < 0 {
		errs = append(errs, errors.New("lease window must not be negative"))
	}
	if c.RateLimit.Enabled && !c.Redis.Enabled {
		errs = append(errs, errors.New("rate limiting requires redis"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		errs = append(errs, errors.New("ratelimit.requests and ratelimit.window must be positive"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format %q must be text or json", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
