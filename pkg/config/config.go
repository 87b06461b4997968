package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for madetect-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (JWT secret, API keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// TLS configuration (optional - if both provided, server uses HTTPS)
	TLSCertPath string `yaml:"tls_cert_path" env:"TLS_CERT_PATH" env-default:""`
	TLSKeyPath  string `yaml:"tls_key_path" env:"TLS_KEY_PATH" env-default:""`

	// JWTSecret signs session tokens. Server will fail to start if unset.
	JWTSecret string `yaml:"-" env:"JWT_SECRET"` // Secret - not in YAML

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Generation backend configuration
	LLM LLMConfig `yaml:"llm"`

	// Retry behavior for quota-limited generation calls
	Retry RetryConfig `yaml:"retry"`

	// LawDocPath locates the law corpus the analysis prompt is grounded on.
	LawDocPath string `yaml:"law_doc_path" env:"LAW_DOC_PATH" env-default:"docs/medical_law.txt"`

	// MigrationsPath locates the SQL migration files applied at startup.
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"madetect"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"madetect_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// LLMConfig selects and configures the generation backend.
type LLMConfig struct {
	// Provider is one of "gemini", "openai", "anthropic". Empty means gemini.
	Provider string `yaml:"provider" env:"LLM_PROVIDER" env-default:"gemini"`
	// Model is the provider-specific model name. Empty uses the provider default.
	Model string `yaml:"model" env:"LLM_MODEL" env-default:""`
	// APIKey authenticates against the provider.
	APIKey string `yaml:"-" env:"LLM_API_KEY"` // Secret - not in YAML
	// Endpoint overrides the provider base URL (OpenAI-compatible gateways).
	Endpoint string `yaml:"endpoint" env:"LLM_ENDPOINT" env-default:""`
}

// RetryConfig tunes the quota retry policy.
type RetryConfig struct {
	// MaxAttempts is the total number of generation attempts, including the first.
	MaxAttempts int `yaml:"max_attempts" env:"RETRY_MAX_ATTEMPTS" env-default:"3"`
	// DefaultDelaySeconds is the wait when the provider gives no retry hint.
	DefaultDelaySeconds int `yaml:"default_delay_seconds" env:"RETRY_DEFAULT_DELAY_SECONDS" env-default:"60"`
	// BufferSeconds is the safety margin added to every wait.
	BufferSeconds int `yaml:"buffer_seconds" env:"RETRY_BUFFER_SECONDS" env-default:"1"`
}

// DefaultDelay returns DefaultDelaySeconds as a duration.
func (c *RetryConfig) DefaultDelay() time.Duration {
	return time.Duration(c.DefaultDelaySeconds) * time.Second
}

// Buffer returns BufferSeconds as a duration.
func (c *RetryConfig) Buffer() time.Duration {
	return time.Duration(c.BufferSeconds) * time.Second
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
// Secrets (JWT_SECRET, PGPASSWORD, LLM_API_KEY) must come from environment
// variables (yaml:"-" fields).
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the invariants the server cannot start without.
func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if err := c.validateTLS(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

// validateTLS ensures TLS configuration is valid if provided.
// Both cert and key must be provided together, and files must exist.
func (c *Config) validateTLS() error {
	certSet := c.TLSCertPath != ""
	keySet := c.TLSKeyPath != ""

	if certSet != keySet {
		return fmt.Errorf("both tls_cert_path and tls_key_path must be provided together")
	}

	if certSet {
		if _, err := os.Stat(c.TLSCertPath); err != nil {
			return fmt.Errorf("TLS cert file does not exist: %w", err)
		}
		if _, err := os.Stat(c.TLSKeyPath); err != nil {
			return fmt.Errorf("TLS key file does not exist: %w", err)
		}
	}

	return nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
