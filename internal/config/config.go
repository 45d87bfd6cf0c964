package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration loaded from a TOML file.
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Redis        RedisConfig        `toml:"redis"`
	WhatsApp     WhatsAppConfig     `toml:"whatsapp"`
	Calendar     CalendarConfig     `toml:"calendar"`
	Receipts     ReceiptsConfig     `toml:"receipts"`
	Availability AvailabilityConfig `toml:"availability"`
	RateLimit    RateLimitConfig    `toml:"rate_limit"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN builds a lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig configures the optional slot lock. When disabled the service
// relies on the database constraint alone.
type RedisConfig struct {
	Enabled     bool   `toml:"enabled"`
	Addr        string `toml:"addr"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	LockTTLSecs int    `toml:"lock_ttl_seconds"`
}

// WhatsAppConfig points at the WhatsApp gateway sidecar. CountryCode is the
// default country code prefixed onto national-format customer numbers.
type WhatsAppConfig struct {
	Enabled     bool   `toml:"enabled"`
	URL         string `toml:"url"`
	Timeout     int    `toml:"timeout"` // seconds
	CountryCode string `toml:"country_code"`
}

// CalendarConfig configures Google Calendar sync via a service account.
type CalendarConfig struct {
	Enabled         bool   `toml:"enabled"`
	CredentialsFile string `toml:"credentials_file"`
	Timeout         int    `toml:"timeout"` // seconds
}

// ReceiptsConfig controls PDF receipt generation.
type ReceiptsConfig struct {
	Enabled         bool   `toml:"enabled"`
	SpoolDir        string `toml:"spool_dir"`
	CleanupAfterMin int    `toml:"cleanup_after_minutes"`
	BusinessName    string `toml:"business_name"`
	FooterNote      string `toml:"footer_note"`
}

// AvailabilityConfig sets the degradation policy when studio configuration
// cannot be loaded during an availability query.
type AvailabilityConfig struct {
	// FailOpen falls back to defaults on config load failure instead of
	// returning an error. The fallback is logged and counted either way.
	FailOpen bool `toml:"fail_open"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load reads and validates a TOML config file, applying defaults for
// omitted optional fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := defaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			LockTTLSecs: 30,
		},
		WhatsApp: WhatsAppConfig{
			Timeout:     10,
			CountryCode: "60",
		},
		Calendar: CalendarConfig{
			Timeout: 10,
		},
		Receipts: ReceiptsConfig{
			SpoolDir:        "receipts",
			CleanupAfterMin: 60,
			BusinessName:    "Studio Kita",
		},
		Availability: AvailabilityConfig{
			FailOpen: true,
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
		Logs: LogsConfig{
			File:  "logs/app.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "booking-service",
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort)
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when redis is enabled")
	}
	if c.WhatsApp.Enabled && c.WhatsApp.URL == "" {
		return fmt.Errorf("whatsapp.url is required when whatsapp is enabled")
	}
	if c.Calendar.Enabled && c.Calendar.CredentialsFile == "" {
		return fmt.Errorf("calendar.credentials_file is required when calendar sync is enabled")
	}
	if c.RateLimit.Enabled && c.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate_limit.rps must be positive when rate limiting is enabled")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("metrics.path is required when metrics are enabled")
	}
	return nil
}
