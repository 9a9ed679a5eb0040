package domain

import (
	"time"
)

// Config represents the main application configuration
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Session     SessionConfig   `mapstructure:"session"`
	Interview   InterviewConfig `mapstructure:"interview"`
	Model       ModelConfig     `mapstructure:"model"`
	Knowledge   KnowledgeConfig `mapstructure:"knowledge"`
	Admin       AdminConfig     `mapstructure:"admin"`
	Logging     LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host             string        `mapstructure:"host"`
	Port             int           `mapstructure:"port"`
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
	IdleTimeout      time.Duration `mapstructure:"idle_timeout"`
	RateLimitPerSec  float64       `mapstructure:"rate_limit_per_sec"`
	RateLimitBurst   int           `mapstructure:"rate_limit_burst"`
	TLSEnabled       bool          `mapstructure:"tls_enabled"`
}

// DatabaseConfig represents transcript store configuration. Backend selects
// between the zero-setup sqlite store and postgres.
type DatabaseConfig struct {
	Backend         string        `mapstructure:"backend"` // "sqlite" or "postgres"
	SQLitePath      string        `mapstructure:"sqlite_path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Database        string        `mapstructure:"database"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsPath  string        `mapstructure:"migrations_path"`
}

// SessionConfig represents active-session store configuration.
type SessionConfig struct {
	Backend     string        `mapstructure:"backend"` // "memory" or "redis"
	MaxSessions int           `mapstructure:"max_sessions"`
	TTL         time.Duration `mapstructure:"ttl"`
	RedisURL    string        `mapstructure:"redis_url"`
}

// InterviewConfig represents interview engine tunables.
type InterviewConfig struct {
	// MaxQuestions is the hard cap on total questions per session.
	MaxQuestions int `mapstructure:"max_questions"`
	// DefaultAge substitutes for non-numeric or out-of-range age input so a
	// malformed answer never blocks the interview. Deliberately configuration
	// rather than a constant; the fallback is logged when applied.
	DefaultAge int `mapstructure:"default_age"`
	MinAge     int `mapstructure:"min_age"`
	MaxAge     int `mapstructure:"max_age"`
	// ClassifierCacheSize bounds the free-text classification memo cache.
	ClassifierCacheSize int `mapstructure:"classifier_cache_size"`
}

// ModelConfig points at an optional remote prediction service. With an
// empty endpoint the built-in heuristic model is used directly; otherwise
// the remote model is primary with the heuristic as circuit-breaker
// fallback.
type ModelConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// KnowledgeConfig points at the file-backed reference tables. Missing or
// unreadable files are fatal at startup.
type KnowledgeConfig struct {
	ReferenceRatesPath    string `mapstructure:"reference_rates_path"`
	SymptomCategoriesPath string `mapstructure:"symptom_categories_path"`
}

// AdminConfig guards the transcript viewer and export endpoints.
type AdminConfig struct {
	Password string `mapstructure:"password"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
