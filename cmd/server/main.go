package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/triage-advisor-server/internal/api"
	"github.com/triage-advisor-server/internal/config"
	"github.com/triage-advisor-server/internal/database"
	"github.com/triage-advisor-server/internal/domain"
	"github.com/triage-advisor-server/internal/knowledge"
	"github.com/triage-advisor-server/internal/service"
	"github.com/triage-advisor-server/internal/session"
	"github.com/triage-advisor-server/internal/transcript"
)

func main() {
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}
	cfg := configManager.GetConfig()

	logger := newLogger(cfg.Logging)
	logger.WithFields(logrus.Fields{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Starting triage advisor server")

	// Reference tables are required; refusing to start without them beats
	// producing risk figures from nothing.
	kb, err := knowledge.Load(cfg.Knowledge)
	if err != nil {
		logger.WithError(err).Fatal("Loading knowledge base")
	}

	classifier, err := service.NewKeywordClassifier(cfg.Interview.ClassifierCacheSize, logger)
	if err != nil {
		logger.WithError(err).Fatal("Creating symptom classifier")
	}
	engine := service.NewEngine(cfg.Interview, classifier, logger)
	synthesizer := service.NewSynthesizer(kb, logger)

	var model domain.PredictionModel = service.NewHeuristicModel(logger)
	if cfg.Model.Endpoint != "" {
		remote := service.NewRemoteModel(cfg.Model, logger)
		model = service.NewResilientModel(remote, model, logger)
		logger.WithField("endpoint", cfg.Model.Endpoint).Info("Using remote prediction model with heuristic fallback")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Creating session store")
	}

	transcripts, err := newTranscriptStore(ctx, configManager, logger)
	if err != nil {
		logger.WithError(err).Fatal("Creating transcript store")
	}
	defer transcripts.Close()

	server := api.NewServer(configManager, engine, model, synthesizer, sessions, transcripts, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
	logger.Info("Server stopped")
}

func newLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func newSessionStore(ctx context.Context, cfg *domain.Config, logger *logrus.Logger) (domain.SessionStore, error) {
	if cfg.Session.Backend == "redis" {
		return session.NewRedisStore(ctx, cfg.Session.RedisURL, cfg.Session.TTL, logger)
	}
	return session.NewMemoryStore(cfg.Session.MaxSessions, cfg.Session.TTL, logger), nil
}

func newTranscriptStore(ctx context.Context, m *config.Manager, logger *logrus.Logger) (domain.TranscriptStore, error) {
	dbCfg := m.GetDatabaseConfig()
	if dbCfg.Backend == "postgres" {
		runner, err := database.NewMigrationRunner(m.GetDatabaseURL(), dbCfg.MigrationsPath, logger)
		if err != nil {
			return nil, err
		}
		defer runner.Close()
		if err := runner.Up(); err != nil {
			return nil, err
		}

		db, err := database.Connect(ctx, m.GetDatabaseConnectionString(), dbCfg, logger)
		if err != nil {
			return nil, err
		}
		return transcript.NewPostgresStore(db), nil
	}
	return transcript.NewSQLiteStore(dbCfg.SQLitePath)
}
