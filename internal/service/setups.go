package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/accsetupsviewer/server/internal/catalog"
	"github.com/accsetupsviewer/server/internal/domain"
	domainerrors "github.com/accsetupsviewer/server/internal/errors"
	"github.com/accsetupsviewer/server/internal/i18n"
	"github.com/accsetupsviewer/server/internal/metadata"
	"github.com/accsetupsviewer/server/internal/metadata/gosetups"
	"github.com/accsetupsviewer/server/internal/setupview"
)

// Converter turns a setup file into its final values.
type Converter interface {
	Convert(ctx context.Context, filename string, content []byte) (domain.FinalValues, error)
}

// SetupService runs the viewer pipeline: resolve the selection against the catalog,
// then fetch and convert the selected file. Conversion results are never cached.
type SetupService struct {
	catalog   *CatalogService
	source    SetupSource
	converter Converter
	logger    *slog.Logger
}

// NewSetupService creates a new setup service.
func NewSetupService(catalog *CatalogService, source SetupSource, converter Converter, logger *slog.Logger) *SetupService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SetupService{
		catalog:   catalog,
		source:    source,
		converter: converter,
		logger:    logger,
	}
}

// ViewRequest is the viewer's query string.
type ViewRequest struct {
	Car      string
	Track    string
	CarClass string
	File     string
	Lang     string
}

// View is one fully resolved page of the viewer.
type View struct {
	Lang       i18n.Lang                     `json:"lang"`
	Messages   i18n.Messages                 `json:"messages"`
	Cars       []domain.FilterOption         `json:"cars"`
	Tracks     []domain.FilterOption         `json:"tracks"`
	ClassByCar map[string]domain.CarCategory `json:"class_by_car"`
	Tabs       []domain.CarCategory          `json:"tabs"`

	Car          string              `json:"car"`
	Track        string              `json:"track"`
	CarClass     domain.CarCategory  `json:"car_class"`
	CarLabel     string              `json:"car_label"`
	TrackLabel   string              `json:"track_label"`
	HasPrimary   bool                `json:"has_primary"`
	Entries      []domain.SetupEntry `json:"entries"`
	Groups       []catalog.Group     `json:"groups,omitempty"`
	SelectedFile string              `json:"selected_file"`
	Selected     *domain.SetupEntry  `json:"selected,omitempty"`

	FinalValues domain.FinalValues `json:"final_values,omitempty"`
	Details     setupview.Details  `json:"details"`

	DataError  string `json:"data_error,omitempty"`
	ValueError string `json:"value_error,omitempty"`
}

// View resolves req into a page. Upstream failures never fail the call: a failed listing
// yields an empty catalog with DataError set, and a failed conversion yields no details
// with ValueError set.
func (s *SetupService) View(ctx context.Context, req ViewRequest) (*View, error) {
	lang := i18n.Normalize(req.Lang)
	messages := i18n.For(lang)

	view := &View{Lang: lang, Messages: messages}

	ix, err := s.catalog.Index(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("catalog unavailable", "error", err)
		view.DataError = messages.DataLoadError(upstreamMessage(err))
		ix = catalog.BuildIndex(nil)
	}

	sel := catalog.Resolve(ix, catalog.SelectionRequest{
		Car:      req.Car,
		Track:    req.Track,
		CarClass: req.CarClass,
		File:     req.File,
	})

	view.Cars = ix.Cars
	view.Tracks = ix.Tracks
	view.ClassByCar = ix.ClassByCar
	view.Tabs = ix.Tabs()
	view.Car = sel.Car
	view.Track = sel.Track
	view.CarClass = sel.CarClass
	view.CarLabel = optionLabel(ix.Cars, sel.Car)
	view.TrackLabel = optionLabel(ix.Tracks, sel.Track)
	view.HasPrimary = sel.HasPrimary()
	view.Entries = sel.FilteredEntries
	view.Groups = sel.Groups()
	view.SelectedFile = sel.SelectedFile
	view.Selected = sel.SelectedEntry

	if sel.SelectedFile != "" {
		values, err := s.convert(ctx, sel.SelectedFile)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("setup values unavailable", "path", sel.SelectedFile, "error", err)
			view.ValueError = messages.ValueLoadError(upstreamMessage(err))
		}
		view.FinalValues = values
	}
	view.Details = setupview.Build(view.FinalValues).Localize(messages)

	return view, nil
}

// FetchConvertedValues downloads the setup at path and converts it. The path must be a
// discovered setup file. A nil map with a nil error means no values are available.
func (s *SetupService) FetchConvertedValues(ctx context.Context, path string) (domain.FinalValues, error) {
	if path == "" {
		return nil, domainerrors.Validation("path is required")
	}

	known, err := s.catalog.Contains(ctx, path)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, domainerrors.NotFoundf("setup %q not found", path)
	}

	return s.convert(ctx, path)
}

func (s *SetupService) convert(ctx context.Context, path string) (domain.FinalValues, error) {
	raw, err := s.source.FetchRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.converter.Convert(ctx, gosetups.Filename(path), []byte(raw))
}

// upstreamMessage is the short text shown for a failed outbound call.
func upstreamMessage(err error) string {
	var metaErr *metadata.Error
	if errors.As(err, &metaErr) {
		return metaErr.Message()
	}
	return err.Error()
}

// optionLabel returns the label of key, or "-" when nothing is selected.
func optionLabel(options []domain.FilterOption, key string) string {
	for _, o := range options {
		if o.Key == key {
			return o.Label
		}
	}
	return "-"
}
