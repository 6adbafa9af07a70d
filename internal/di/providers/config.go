// Package providers contains dependency injection providers for bookwarm.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookwarm/internal/config"
	"github.com/listenupapp/bookwarm/internal/logger"
)

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	level, err := logger.ParseLevel(cfg.Logger.Level)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{
		Format:      cfg.Logger.Format,
		Level:       level,
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Debug("logger ready",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"base_path", cfg.Storage.BasePath,
		"format", cfg.Storage.Format,
	)

	return log, nil
}
