package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/accsetupsviewer/server/internal/config"
	"github.com/accsetupsviewer/server/internal/logger"
	"github.com/accsetupsviewer/server/internal/metadata/github"
	"github.com/accsetupsviewer/server/internal/metadata/gosetups"
	"github.com/accsetupsviewer/server/internal/service"
)

// app holds what the commands share. Tests fill catalog and setups directly.
type app struct {
	envFile  string
	logLevel string
	jsonOut  bool
	quiet    bool

	catalog *service.CatalogService
	setups  *service.SetupService
	closers []func()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "setupctl",
		Short:        "Browse and convert ACC setups from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations["offline"] == "true" {
				return nil
			}
			return a.init(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Path to .env file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Print JSON instead of text")
	root.PersistentFlags().BoolVar(&a.quiet, "quiet", false, "Suppress log output")

	root.AddCommand(newCatalogCmd(a))
	root.AddCommand(newResolveCmd(a))
	root.AddCommand(newValuesCmd(a))
	root.AddCommand(newPercentCmd(a))

	return root
}

// init wires the outbound clients and services from the server configuration.
func (a *app) init(stderr io.Writer) error {
	if a.catalog != nil && a.setups != nil {
		return nil
	}

	cfg, err := config.Load([]string{"-env-file", a.envFile, "-log-level", a.logLevel})
	if err != nil {
		return err
	}

	log := a.newLogger(stderr, cfg.Logger.Level, cfg.App.Environment)

	source := github.New(github.Config{
		Owner:     cfg.Source.Owner,
		Repo:      cfg.Source.Repo,
		Branch:    cfg.Source.Branch,
		APIURL:    cfg.Source.APIURL,
		RawURL:    cfg.Source.RawURL,
		UserAgent: cfg.Source.UserAgent,
		Timeout:   cfg.Source.Timeout,
	}, log.Component("github"))
	a.closers = append(a.closers, source.Close)

	converter := gosetups.New(gosetups.Config{
		Endpoint:  cfg.Converter.URL,
		UserAgent: cfg.Source.UserAgent,
		Timeout:   cfg.Converter.Timeout,
	}, log.Component("gosetups"))

	a.catalog = service.NewCatalogService(source, nil, cfg.Catalog.TTL, log.Component("catalog"))
	a.setups = service.NewSetupService(a.catalog, source, converter, log.Component("setups"))
	return nil
}

func (a *app) newLogger(stderr io.Writer, level, env string) *logger.Logger {
	if a.quiet {
		return logger.Discard()
	}
	return logger.New(logger.Config{
		Writer:      stderr,
		Level:       logger.ParseLevel(level),
		Environment: env,
	})
}

func (a *app) close() {
	for _, c := range a.closers {
		c()
	}
	a.closers = nil
}

// printJSON writes v indented.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
