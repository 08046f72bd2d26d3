package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Intake policies for repeated MarkTaken calls on the same occurrence.
const (
	TakePolicyOverwrite = "overwrite"
	TakePolicyFirstWins = "first_wins"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the application-wide configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Adherence AdherenceConfig `mapstructure:"adherence"`
	Health    HealthConfig    `mapstructure:"health"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	BaseURL      string        `mapstructure:"base_url"`
	BodyLimit    int64         `mapstructure:"body_limit"` // bytes
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORS         CORSConfig    `mapstructure:"cors"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig selects the store. Postgres is used in production,
// sqlite for local runs without a database server.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
}

// DSN builds the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig is optional; an empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig holds token and credential settings.
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	BcryptCost     int           `mapstructure:"bcrypt_cost"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AdherenceConfig controls the medication tracker.
type AdherenceConfig struct {
	TakePolicy  string        `mapstructure:"take_policy"`
	Timezone    string        `mapstructure:"timezone"`
	MissedAfter time.Duration `mapstructure:"missed_after"`
}

// Location resolves the configured timezone. Validate guarantees it loads.
func (c *AdherenceConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HealthConfig controls health reading summaries.
type HealthConfig struct {
	SummaryWindowDays int `mapstructure:"summary_window_days"`
}

// AssistantConfig selects the companion chat backend.
type AssistantConfig struct {
	Provider       string        `mapstructure:"provider"` // canned | openai
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	MaxTokens      int           `mapstructure:"max_tokens"`
	Temperature    float64       `mapstructure:"temperature"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RequestsPerMin int           `mapstructure:"requests_per_min"`
	HistorySize    int           `mapstructure:"history_size"`
}

// NotifyConfig enables the outbound notification channels.
type NotifyConfig struct {
	AWSRegion    string `mapstructure:"aws_region"`
	SMSEnabled   bool   `mapstructure:"sms_enabled"`
	SMSSenderID  string `mapstructure:"sms_sender_id"`
	EmailEnabled bool   `mapstructure:"email_enabled"`
	EmailFrom    string `mapstructure:"email_from"`
}

// RateLimitConfig applies to the public auth endpoints.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// Load reads configuration from an optional .env file, the config file and
// environment variables. Precedence: env > file > defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SENIORCARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})

	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.sqlite_path", "seniorcare.db")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "seniorcare")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.auto_migrate", true)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Keys without a default are invisible to AutomaticEnv during Unmarshal.
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_ttl", "720h")
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("adherence.take_policy", TakePolicyOverwrite)
	v.SetDefault("adherence.timezone", "UTC")
	v.SetDefault("adherence.missed_after", "60m")

	v.SetDefault("health.summary_window_days", 30)

	v.SetDefault("assistant.provider", "canned")
	v.SetDefault("assistant.base_url", "https://api.openai.com/v1")
	v.SetDefault("assistant.api_key", "")
	v.SetDefault("assistant.model", "gpt-4o-mini")
	v.SetDefault("assistant.max_tokens", 300)
	v.SetDefault("assistant.temperature", 0.7)
	v.SetDefault("assistant.timeout", "30s")
	v.SetDefault("assistant.requests_per_min", 30)
	v.SetDefault("assistant.history_size", 10)

	v.SetDefault("notify.aws_region", "eu-west-1")
	v.SetDefault("notify.sms_enabled", false)
	v.SetDefault("notify.sms_sender_id", "")
	v.SetDefault("notify.email_enabled", false)
	v.SetDefault("notify.email_from", "")

	v.SetDefault("rate_limit.requests", 20)
	v.SetDefault("rate_limit.window", "1m")
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("invalid config: auth.jwt_secret is required")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("invalid config: auth.jwt_secret must be at least 16 characters")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be within 1-65535")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("invalid config: db.driver %q (want postgres or sqlite)", c.Database.Driver)
	}
	switch c.Adherence.TakePolicy {
	case TakePolicyOverwrite, TakePolicyFirstWins:
	default:
		return fmt.Errorf("invalid config: adherence.take_policy %q", c.Adherence.TakePolicy)
	}
	if _, err := time.LoadLocation(c.Adherence.Timezone); err != nil {
		return fmt.Errorf("invalid config: adherence.timezone: %w", err)
	}
	if c.Health.SummaryWindowDays <= 0 {
		return fmt.Errorf("invalid config: health.summary_window_days must be positive")
	}
	if c.Notify.EmailEnabled && c.Notify.EmailFrom == "" {
		return fmt.Errorf("invalid config: notify.email_from is required when email is enabled")
	}
	return nil
}
