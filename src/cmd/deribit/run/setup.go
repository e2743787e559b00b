package run

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/deribit-trading/src/eventservices"
	"github.com/jiaming2012/deribit-trading/src/logger"
	"github.com/jiaming2012/deribit-trading/src/telemetry"
	"github.com/jiaming2012/deribit-trading/src/utils"
)

type SetupArgs struct {
	ConfigPath string
	EnvFile    string
	LogLevel   string
}

type Session struct {
	ID     string
	Config *Config
	Client *eventservices.DeribitClient

	shutdown func(context.Context) error
}

func Setup(ctx context.Context, args SetupArgs) (*Session, error) {
	if err := utils.InitEnvironmentVariables(args.EnvFile); err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	cfg, err := LoadConfig(args.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	if args.LogLevel != "" {
		cfg.Logging.Level = args.LogLevel
	}

	if err := logger.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr); err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	session := &Session{
		ID:     logger.NewSessionID(),
		Config: cfg,
	}
	logger.AttachSession(session.ID)

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName, session.ID)
		if err != nil {
			return nil, fmt.Errorf("Setup: failed to set up telemetry: %w", err)
		}
		session.shutdown = shutdown
	}

	executor := utils.NewRequestExecutor(cfg.HttpTimeout(), cfg.Deribit.MaxAttempts, cfg.RetryDelay())
	session.Client = eventservices.NewDeribitClient(cfg.Deribit.BaseURL, executor)

	log.WithFields(log.Fields{
		"base_url":     cfg.Deribit.BaseURL,
		"max_attempts": cfg.Deribit.MaxAttempts,
		"retry_delay":  cfg.RetryDelay(),
	}).Debug("session configured")

	return session, nil
}

func (s *Session) Close(ctx context.Context) error {
	if s.shutdown == nil {
		return nil
	}

	return s.shutdown(ctx)
}
