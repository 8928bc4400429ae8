package providers

import (
	"github.com/samber/do/v2"

	"github.com/accsetupsviewer/server/internal/config"
	"github.com/accsetupsviewer/server/internal/logger"
	"github.com/accsetupsviewer/server/internal/metadata/github"
	"github.com/accsetupsviewer/server/internal/metadata/gosetups"
)

// GitHubClientHandle wraps the GitHub client with shutdown capability.
type GitHubClientHandle struct {
	*github.Client
}

// Shutdown implements do.Shutdownable.
func (h *GitHubClientHandle) Shutdown() error {
	h.Client.Close()
	return nil
}

// ProvideGitHubClient provides the client for the setups repository.
func ProvideGitHubClient(i do.Injector) (*GitHubClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := github.New(github.Config{
		Owner:     cfg.Source.Owner,
		Repo:      cfg.Source.Repo,
		Branch:    cfg.Source.Branch,
		APIURL:    cfg.Source.APIURL,
		RawURL:    cfg.Source.RawURL,
		UserAgent: cfg.Source.UserAgent,
		Timeout:   cfg.Source.Timeout,
	}, log.Component("github"))

	log.Info("GitHub client initialized",
		"repository", cfg.Source.Owner+"/"+cfg.Source.Repo,
		"branch", cfg.Source.Branch,
		"timeout", cfg.Source.Timeout,
	)

	return &GitHubClientHandle{Client: client}, nil
}

// ProvideConverter provides the GoSetups conversion client.
func ProvideConverter(i do.Injector) (*gosetups.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := gosetups.New(gosetups.Config{
		Endpoint:  cfg.Converter.URL,
		UserAgent: cfg.Source.UserAgent,
		Timeout:   cfg.Converter.Timeout,
	}, log.Component("gosetups"))

	log.Info("Converter client initialized", "endpoint", cfg.Converter.URL, "timeout", cfg.Converter.Timeout)

	return client, nil
}
