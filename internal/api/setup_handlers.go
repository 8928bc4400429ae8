package api

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/samber/lo"

	"github.com/accsetupsviewer/server/internal/domain"
	"github.com/accsetupsviewer/server/internal/ranges"
	"github.com/accsetupsviewer/server/internal/service"
)

func (s *Server) registerSetupRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "viewSetups",
		Method:      http.MethodGet,
		Path:        "/api/v1/setups",
		Summary:     "View setups",
		Description: "Resolves the car, track, class and file selection and returns the converted values of the selected setup. Upstream failures are reported in data_error and value_error instead of failing the request.",
		Tags:        []string{"Setups"},
	}, s.handleViewSetups)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSetupValues",
		Method:      http.MethodGet,
		Path:        "/api/v1/setups/values",
		Summary:     "Get converted values",
		Description: "Downloads one setup file and converts it through GoSetups",
		Tags:        []string{"Setups"},
	}, s.handleGetSetupValues)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRangePercent",
		Method:      http.MethodGet,
		Path:        "/api/v1/ranges/percent",
		Summary:     "Place a value in its range",
		Description: "Maps a displayed setup value onto 0-100 using the known parameter ranges",
		Tags:        []string{"Setups"},
	}, s.handleRangePercent)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRanges",
		Method:      http.MethodGet,
		Path:        "/api/v1/ranges",
		Summary:     "List parameter ranges",
		Description: "Returns the known min/max window of every setup parameter label",
		Tags:        []string{"Setups"},
	}, s.handleListRanges)
}

// ViewSetupsInput contains the viewer query parameters.
type ViewSetupsInput struct {
	Car      string `query:"car" doc:"Selected car key"`
	Track    string `query:"track" doc:"Selected track key"`
	CarClass string `query:"carClass" doc:"Selected car class tab"`
	File     string `query:"file" doc:"Selected setup file path"`
	Lang     string `query:"lang" doc:"Interface language (en, it, es, de, fr)"`
}

// ViewSetupsOutput wraps the resolved view for Huma.
type ViewSetupsOutput struct {
	Body *service.View
}

// SetupValuesInput contains the file path query parameter.
type SetupValuesInput struct {
	Path string `query:"path" required:"true" doc:"Setup file path inside the repository"`
}

// SetupValuesResponse holds the converted values of one file.
type SetupValuesResponse struct {
	Path        string             `json:"path" doc:"Setup file path"`
	FinalValues domain.FinalValues `json:"final_values" doc:"Converted values, null when the converter returned none"`
}

// SetupValuesOutput wraps the converted values for Huma.
type SetupValuesOutput struct {
	Body SetupValuesResponse
}

// RangePercentInput contains the label and displayed value.
type RangePercentInput struct {
	Label string `query:"label" required:"true" doc:"Parameter label, e.g. PSI"`
	Value string `query:"value" required:"true" doc:"Displayed value, e.g. 27.3 psi"`
}

// RangePercentResponse is the placement of one value.
type RangePercentResponse struct {
	Label   string        `json:"label"`
	Value   string        `json:"value"`
	Known   bool          `json:"known" doc:"False when no range applies or the value has no number"`
	Percent float64       `json:"percent" doc:"Position within the range, clamped to 0-100"`
	Range   *ranges.Range `json:"range,omitempty"`
}

// RangePercentOutput wraps the placement for Huma.
type RangePercentOutput struct {
	Body RangePercentResponse
}

// RangeEntry is the window of one parameter label.
type RangeEntry struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// ListRangesOutput wraps the range table for Huma.
type ListRangesOutput struct {
	Body []RangeEntry
}

func (s *Server) handleViewSetups(ctx context.Context, input *ViewSetupsInput) (*ViewSetupsOutput, error) {
	view, err := s.services.Setups.View(ctx, service.ViewRequest{
		Car:      input.Car,
		Track:    input.Track,
		CarClass: input.CarClass,
		File:     input.File,
		Lang:     input.Lang,
	})
	if err != nil {
		return nil, err
	}
	return &ViewSetupsOutput{Body: view}, nil
}

func (s *Server) handleGetSetupValues(ctx context.Context, input *SetupValuesInput) (*SetupValuesOutput, error) {
	values, err := s.services.Setups.FetchConvertedValues(ctx, input.Path)
	if err != nil {
		return nil, err
	}
	return &SetupValuesOutput{Body: SetupValuesResponse{Path: input.Path, FinalValues: values}}, nil
}

func (s *Server) handleRangePercent(_ context.Context, input *RangePercentInput) (*RangePercentOutput, error) {
	resp := RangePercentResponse{Label: input.Label, Value: input.Value}
	if r, ok := ranges.Infer(input.Label, input.Value); ok {
		resp.Range = &r
	}
	resp.Percent, resp.Known = ranges.Percent(input.Label, input.Value)
	return &RangePercentOutput{Body: resp}, nil
}

func (s *Server) handleListRanges(_ context.Context, _ *struct{}) (*ListRangesOutput, error) {
	table := ranges.Table()
	entries := lo.MapToSlice(table, func(label string, r ranges.Range) RangeEntry {
		return RangeEntry{Label: label, Min: r.Min, Max: r.Max}
	})
	slices.SortFunc(entries, func(a, b RangeEntry) int { return strings.Compare(a.Label, b.Label) })
	return &ListRangesOutput{Body: entries}, nil
}
