package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/triage-advisor-server/internal/domain"
)

// Manager implements the ConfigManager interface using Viper
type Manager struct {
	config *domain.Config
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/triage-advisor/")

	viper.SetEnvPrefix("TRIAGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	m.setDefaults()

	// Config file is optional; defaults and env vars cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.rate_limit_per_sec", 5.0)
	viper.SetDefault("server.rate_limit_burst", 10)
	viper.SetDefault("server.tls_enabled", false)

	// Transcript store defaults: sqlite needs no setup, postgres for prod
	viper.SetDefault("database.backend", "sqlite")
	viper.SetDefault("database.sqlite_path", "data/transcripts.db")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.database", "triage_advisor")
	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "5m")
	viper.SetDefault("database.migrations_path", "migrations")

	// Session store defaults
	viper.SetDefault("session.backend", "memory")
	viper.SetDefault("session.max_sessions", 4096)
	viper.SetDefault("session.ttl", "2h")
	viper.SetDefault("session.redis_url", "redis://localhost:6379")

	// Interview defaults
	viper.SetDefault("interview.max_questions", 25)
	viper.SetDefault("interview.default_age", 40)
	viper.SetDefault("interview.min_age", 0)
	viper.SetDefault("interview.max_age", 120)
	viper.SetDefault("interview.classifier_cache_size", 512)

	// Remote prediction model; empty endpoint means built-in heuristic only
	viper.SetDefault("model.endpoint", "")
	viper.SetDefault("model.timeout", "10s")

	// Knowledge base files
	viper.SetDefault("knowledge.reference_rates_path", "config/public_reference_rates.json")
	viper.SetDefault("knowledge.symptom_categories_path", "config/symptom_categories.json")

	// Admin defaults
	viper.SetDefault("admin.password", "")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// GetDatabaseConfig returns transcript store configuration
func (m *Manager) GetDatabaseConfig() *domain.DatabaseConfig {
	return &m.config.Database
}

// GetInterviewConfig returns interview engine configuration
func (m *Manager) GetInterviewConfig() *domain.InterviewConfig {
	return &m.config.Interview
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	switch config.Database.Backend {
	case "sqlite":
		if config.Database.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case "postgres":
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if config.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if config.Database.Username == "" {
			return fmt.Errorf("database username is required")
		}
	default:
		return fmt.Errorf("invalid database backend: %s", config.Database.Backend)
	}

	switch config.Session.Backend {
	case "memory":
		if config.Session.MaxSessions <= 0 {
			return fmt.Errorf("session.max_sessions must be positive")
		}
	case "redis":
		if config.Session.RedisURL == "" {
			return fmt.Errorf("redis URL is required")
		}
	default:
		return fmt.Errorf("invalid session backend: %s", config.Session.Backend)
	}

	if config.Interview.MaxQuestions <= 0 {
		return fmt.Errorf("interview.max_questions must be positive")
	}
	if config.Interview.DefaultAge < config.Interview.MinAge ||
		config.Interview.DefaultAge > config.Interview.MaxAge {
		return fmt.Errorf("interview.default_age %d outside [%d,%d]",
			config.Interview.DefaultAge, config.Interview.MinAge, config.Interview.MaxAge)
	}

	if config.Knowledge.ReferenceRatesPath == "" {
		return fmt.Errorf("knowledge.reference_rates_path is required")
	}
	if config.Knowledge.SymptomCategoriesPath == "" {
		return fmt.Errorf("knowledge.symptom_categories_path is required")
	}

	if m.IsProduction() && config.Admin.Password == "" {
		return fmt.Errorf("admin password is required in production")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// GetDatabaseConnectionString returns a formatted postgres connection string
func (m *Manager) GetDatabaseConnectionString() string {
	db := m.config.Database
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.Username, db.Password, db.Database, db.SSLMode)
}

// GetDatabaseURL returns the postgres URL form used by the migration runner
func (m *Manager) GetDatabaseURL() string {
	db := m.config.Database
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		db.Username, db.Password, db.Host, db.Port, db.Database, db.SSLMode)
}

// IsProduction returns true if running in production mode
func (m *Manager) IsProduction() bool {
	return strings.ToLower(m.config.Environment) == "production"
}

// IsDevelopment returns true if running in development mode
func (m *Manager) IsDevelopment() bool {
	env := strings.ToLower(m.config.Environment)
	return env == "development" || env == "dev" || env == ""
}
