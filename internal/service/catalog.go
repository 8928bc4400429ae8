package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/samber/lo"

	"github.com/accsetupsviewer/server/internal/catalog"
	"github.com/accsetupsviewer/server/internal/domain"
	"github.com/accsetupsviewer/server/internal/i18n"
	"github.com/accsetupsviewer/server/internal/normalize"
	"github.com/accsetupsviewer/server/internal/search"
)

// SetupSource lists and downloads setup files from the source repository.
type SetupSource interface {
	ListSetupPaths(ctx context.Context) ([]string, error)
	FetchRaw(ctx context.Context, path string) (string, error)
}

const catalogCacheKey = "catalog"

// CatalogService turns the discovery listing into a catalog index and keeps it for a
// bounded window. The search index is rebuilt whenever a new listing is loaded.
type CatalogService struct {
	source SetupSource
	search *search.SetupIndex
	cache  *expirable.LRU[string, *catalog.Index]
	logger *slog.Logger

	// Serializes discovery so concurrent misses trigger one listing.
	loadMu sync.Mutex
}

// NewCatalogService creates a catalog service. A ttl of zero or less keeps a listing until
// Invalidate is called. searchIndex may be nil.
func NewCatalogService(source SetupSource, searchIndex *search.SetupIndex, ttl time.Duration, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		source: source,
		search: searchIndex,
		cache:  expirable.NewLRU[string, *catalog.Index](1, nil, ttl),
		logger: logger,
	}
}

// CatalogFilter is the state of the filter panel: the class tab and the search box.
type CatalogFilter struct {
	CarClass string
	Query    string
}

// CatalogResponse is the filter data the viewer needs to render its panel.
type CatalogResponse struct {
	Cars       []domain.FilterOption         `json:"cars"`
	Tracks     []domain.FilterOption         `json:"tracks"`
	ClassByCar map[string]domain.CarCategory `json:"class_by_car"`
	Tabs       []domain.CarCategory          `json:"tabs"`
	Total      int                           `json:"total"`

	// CarClass is the effective class tab; unknown classes fall back to gt3.
	CarClass      domain.CarCategory    `json:"car_class"`
	Query         string                `json:"query"`
	VisibleCars   []domain.FilterOption `json:"visible_cars"`
	VisibleTracks []domain.FilterOption `json:"visible_tracks"`
	Languages     []i18n.Lang           `json:"languages"`
}

// Index returns the current catalog index, listing the source when nothing fresh is cached.
func (s *CatalogService) Index(ctx context.Context) (*catalog.Index, error) {
	if ix, ok := s.cache.Get(catalogCacheKey); ok {
		return ix, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if ix, ok := s.cache.Get(catalogCacheKey); ok {
		return ix, nil
	}

	start := time.Now()
	paths, err := s.source.ListSetupPaths(ctx)
	if err != nil {
		return nil, err
	}

	catalog.SortPaths(paths)
	ix := catalog.BuildIndex(catalog.Derive(paths))
	s.cache.Add(catalogCacheKey, ix)

	if s.logger != nil {
		s.logger.Info("catalog loaded",
			"entries", len(ix.Entries),
			"cars", len(ix.Cars),
			"tracks", len(ix.Tracks),
			"elapsed", time.Since(start),
		)
	}

	s.reindex(ix)
	return ix, nil
}

// FilterOptions returns the car and track options with their classes, plus the options
// left visible by the class tab and search text in filter.
func (s *CatalogService) FilterOptions(ctx context.Context, filter CatalogFilter) (*CatalogResponse, error) {
	ix, err := s.Index(ctx)
	if err != nil {
		return nil, err
	}

	class := domain.CarCategory(normalize.Name(filter.CarClass))
	if !class.Valid() {
		class = domain.DefaultCategory
	}
	query := strings.TrimSpace(filter.Query)

	return &CatalogResponse{
		Cars:          ix.Cars,
		Tracks:        ix.Tracks,
		ClassByCar:    ix.ClassByCar,
		Tabs:          ix.Tabs(),
		Total:         len(ix.Entries),
		CarClass:      class,
		Query:         query,
		VisibleCars:   ix.VisibleCars(class, query),
		VisibleTracks: ix.VisibleTracks(query),
		Languages:     i18n.Supported(),
	}, nil
}

// Refresh drops the cached listing and lists the source again.
func (s *CatalogService) Refresh(ctx context.Context, filter CatalogFilter) (*CatalogResponse, error) {
	s.Invalidate()
	return s.FilterOptions(ctx, filter)
}

// Search runs a full-text search over the catalog.
func (s *CatalogService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	if s.search == nil {
		return nil, fmt.Errorf("search index not configured")
	}
	if _, err := s.Index(ctx); err != nil {
		return nil, err
	}
	return s.search.Search(ctx, params)
}

// Contains reports whether path is one of the discovered setup files.
func (s *CatalogService) Contains(ctx context.Context, path string) (bool, error) {
	ix, err := s.Index(ctx)
	if err != nil {
		return false, err
	}
	return lo.ContainsBy(ix.Entries, func(e domain.SetupEntry) bool { return e.Path == path }), nil
}

// Cached reports whether a listing is currently held.
func (s *CatalogService) Cached() bool {
	return s.cache.Len() > 0
}

// Invalidate drops the cached listing so the next call lists the source again.
func (s *CatalogService) Invalidate() {
	s.cache.Purge()
}

func (s *CatalogService) reindex(ix *catalog.Index) {
	if s.search == nil {
		return
	}
	docs := lo.Map(ix.Entries, func(e domain.SetupEntry, _ int) *search.SetupDocument {
		return search.NewSetupDocument(e, ix.ClassByCar[e.CarKey])
	})
	if err := s.search.Rebuild(docs); err != nil && s.logger != nil {
		s.logger.Warn("search index rebuild failed", "error", err)
	}
}
