package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresUser   string `toml:"postgres_user"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	AllowedOrigins              []string `toml:"allowed_origins"`
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`
	ReportCacheSizeMB           int      `toml:"report_cache_size_mb"`

	// delivery
	SMTPHost         string `toml:"smtp_host"`
	SMTPPort         int    `toml:"smtp_port"`
	SMTPUser         string `toml:"smtp_user"`
	SMTPFrom         string `toml:"smtp_from"`
	UltraMsgBaseURL  string `toml:"ultramsg_base_url"`
	UltraMsgInstance string `toml:"ultramsg_instance"`
	DriveFolderID    string `toml:"drive_archive_folder_id"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the config of the given environment.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing", env)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid [%s] config: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
	if c.ReportCacheSizeMB <= 0 {
		c.ReportCacheSizeMB = 32
	}
	if c.UltraMsgBaseURL == "" {
		c.UltraMsgBaseURL = "https://api.ultramsg.com"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
}

func (c *Config) validate() error {
	if c.Port <= 0 {
		return errors.New("port not set")
	}
	if c.PostgresHost == "" || c.PostgresDBName == "" {
		return errors.New("postgres host / db name not set")
	}
	if c.RedisHost == "" {
		return errors.New("redis host not set")
	}
	return nil
}
