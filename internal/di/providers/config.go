// Package providers contains dependency injection providers for the setup viewer server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/accsetupsviewer/server/internal/config"
	"github.com/accsetupsviewer/server/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting ACC setups viewer",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_dir", cfg.Storage.DataDir,
		"repository", cfg.Source.Owner+"/"+cfg.Source.Repo+"@"+cfg.Source.Branch,
	)

	return log, nil
}
