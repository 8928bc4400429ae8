package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/accsetupsviewer/server/internal/catalog"
	"github.com/accsetupsviewer/server/internal/domain"
	"github.com/accsetupsviewer/server/internal/normalize"
	"github.com/accsetupsviewer/server/internal/search"
	"github.com/accsetupsviewer/server/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog",
		Summary:     "Get catalog",
		Description: "Returns the cars, tracks and car classes found in the setups repository",
		Tags:        []string{"Catalog"},
	}, s.handleGetCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "refreshCatalog",
		Method:      http.MethodPost,
		Path:        "/api/v1/catalog/refresh",
		Summary:     "Refresh catalog",
		Description: "Drops the cached listing and reads the setups repository again",
		Tags:        []string{"Catalog"},
		Security:    bearerSecurity,
		Middlewares: []func(huma.Context, func(huma.Context)){
			rateLimitMiddleware(s.api, s.authRateLimiter, s.logger),
		},
	}, s.handleRefreshCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/search",
		Summary:     "Search setups",
		Description: "Full-text search over setup files by car, track and file name",
		Tags:        []string{"Catalog"},
	}, s.handleSearchCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "classifyCar",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/classify/{car}",
		Summary:     "Classify car",
		Description: "Returns the category a car folder name belongs to",
		Tags:        []string{"Catalog"},
	}, s.handleClassifyCar)
}

// CatalogInput contains the filter panel state.
type CatalogInput struct {
	CarClass string `query:"carClass" doc:"Class tab (gt3, gt4, gt2, cup, challenge, st, other); unknown values select gt3"`
	Query    string `query:"q" doc:"Search box text matched against car and track labels"`
}

// CatalogOutput wraps the catalog for Huma.
type CatalogOutput struct {
	Body *service.CatalogResponse
}

// SearchCatalogInput contains the search query parameters.
type SearchCatalogInput struct {
	Query    string `query:"q" doc:"Search text"`
	Category string `query:"category" doc:"Restrict to one car category (gt3, gt4, gt2, cup, challenge, st, other)"`
	Car      string `query:"car" doc:"Restrict to one car key"`
	Track    string `query:"track" doc:"Restrict to one track key"`
	Limit    int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum hits"`
	Offset   int    `query:"offset" minimum:"0" doc:"Hits to skip"`
}

// SearchCatalogOutput wraps the search result for Huma.
type SearchCatalogOutput struct {
	Body *search.Result
}

// ClassifyCarInput contains the car path parameter.
type ClassifyCarInput struct {
	Car string `path:"car" doc:"Car folder name"`
}

// ClassifyCarResponse is the category of one car.
type ClassifyCarResponse struct {
	Car      string             `json:"car" doc:"Normalized car key"`
	Label    string             `json:"label" doc:"Display label"`
	Category domain.CarCategory `json:"category" doc:"Car category"`
}

// ClassifyCarOutput wraps the classification for Huma.
type ClassifyCarOutput struct {
	Body ClassifyCarResponse
}

func (s *Server) handleGetCatalog(ctx context.Context, input *CatalogInput) (*CatalogOutput, error) {
	resp, err := s.services.Catalog.FilterOptions(ctx, service.CatalogFilter{CarClass: input.CarClass, Query: input.Query})
	if err != nil {
		return nil, err
	}
	return &CatalogOutput{Body: resp}, nil
}

func (s *Server) handleRefreshCatalog(ctx context.Context, input *CatalogInput) (*CatalogOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.services.Catalog.Refresh(ctx, service.CatalogFilter{CarClass: input.CarClass, Query: input.Query})
	if err != nil {
		return nil, err
	}
	s.logger.Info("catalog refreshed", "user_id", userID, "total", resp.Total)
	return &CatalogOutput{Body: resp}, nil
}

func (s *Server) handleSearchCatalog(ctx context.Context, input *SearchCatalogInput) (*SearchCatalogOutput, error) {
	result, err := s.services.Catalog.Search(ctx, search.Params{
		Query:    input.Query,
		Category: input.Category,
		CarKey:   normalize.Name(input.Car),
		TrackKey: normalize.Name(input.Track),
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &SearchCatalogOutput{Body: result}, nil
}

func (s *Server) handleClassifyCar(_ context.Context, input *ClassifyCarInput) (*ClassifyCarOutput, error) {
	key := normalize.Name(input.Car)
	if key == "" {
		return nil, huma.Error400BadRequest("car is required")
	}
	return &ClassifyCarOutput{Body: ClassifyCarResponse{
		Car:      key,
		Label:    normalize.DisplayName(key),
		Category: catalog.Classify(key),
	}}, nil
}
