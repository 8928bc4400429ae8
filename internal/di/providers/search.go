package providers

import (
	"github.com/samber/do/v2"

	"github.com/accsetupsviewer/server/internal/logger"
	"github.com/accsetupsviewer/server/internal/search"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SetupIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the in-memory Bleve index over the catalog. It stays empty
// until the first discovery listing is loaded.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewSetupIndex(log.Component("search"))
	if err != nil {
		return nil, err
	}

	log.Info("Search index initialized")

	return &SearchIndexHandle{SetupIndex: index}, nil
}
