package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/samber/lo"

	"github.com/accsetupsviewer/server/internal/domain"
	"github.com/accsetupsviewer/server/internal/service"
)

func (s *Server) registerDashboardRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getDashboard",
		Method:      http.MethodGet,
		Path:        "/api/v1/dashboard",
		Summary:     "Get dashboard",
		Description: "Returns the user's latest manual setups and lap times",
		Tags:        []string{"Dashboard"},
		Security:    bearerSecurity,
	}, s.handleGetDashboard)

	huma.Register(s.api, huma.Operation{
		OperationID: "listManualSetups",
		Method:      http.MethodGet,
		Path:        "/api/v1/dashboard/setups",
		Summary:     "List manual setups",
		Tags:        []string{"Dashboard"},
		Security:    bearerSecurity,
	}, s.handleListManualSetups)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createManualSetup",
		Method:        http.MethodPost,
		Path:          "/api/v1/dashboard/setups",
		Summary:       "Save manual setup",
		Description:   "Stores a pasted setup JSON. Requires a nickname.",
		Tags:          []string{"Dashboard"},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateManualSetup)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteManualSetup",
		Method:        http.MethodDelete,
		Path:          "/api/v1/dashboard/setups/{id}",
		Summary:       "Delete manual setup",
		Tags:          []string{"Dashboard"},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteManualSetup)

	huma.Register(s.api, huma.Operation{
		OperationID: "listLapTimes",
		Method:      http.MethodGet,
		Path:        "/api/v1/dashboard/laps",
		Summary:     "List lap times",
		Tags:        []string{"Dashboard"},
		Security:    bearerSecurity,
	}, s.handleListLapTimes)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createLapTime",
		Method:        http.MethodPost,
		Path:          "/api/v1/dashboard/laps",
		Summary:       "Record lap time",
		Description:   "Stores a lap time typed as minutes, seconds and milliseconds. Requires a nickname.",
		Tags:          []string{"Dashboard"},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateLapTime)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteLapTime",
		Method:        http.MethodDelete,
		Path:          "/api/v1/dashboard/laps/{id}",
		Summary:       "Delete lap time",
		Tags:          []string{"Dashboard"},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteLapTime)
}

// === DTOs ===

// ManualSetupRequest is the request body for saving a pasted setup.
type ManualSetupRequest struct {
	CarKey   string `json:"car_key" doc:"Car key"`
	TrackKey string `json:"track_key" doc:"Track key"`
	Name     string `json:"setup_name" doc:"Setup name"`
	JSONData string `json:"json_data" doc:"Setup file content as JSON text"`
	Private  bool   `json:"is_private,omitempty" doc:"Hide from other users"`
	Notes    string `json:"notes,omitempty" doc:"Free text notes"`
}

// ManualSetupInput wraps the manual setup request for Huma.
type ManualSetupInput struct {
	Body ManualSetupRequest
}

// LapTimeRequest is the request body for recording a lap.
type LapTimeRequest struct {
	CarKey       string `json:"car_key" doc:"Car key"`
	TrackKey     string `json:"track_key" doc:"Track key"`
	Minutes      string `json:"minutes" doc:"Minutes, digits only"`
	Seconds      string `json:"seconds" doc:"Seconds, digits only, 0-59"`
	Milliseconds string `json:"milliseconds" doc:"Milliseconds, digits only, 0-999"`
	Private      bool   `json:"is_private,omitempty" doc:"Hide from other users"`
	Notes        string `json:"notes,omitempty" doc:"Free text notes"`
}

// LapTimeInput wraps the lap time request for Huma.
type LapTimeInput struct {
	Body LapTimeRequest
}

// DeleteEntryInput contains the ID path parameter.
type DeleteEntryInput struct {
	ID string `path:"id" doc:"Entry ID"`
}

// LapTimeResponse is a recorded lap with its formatted time.
type LapTimeResponse struct {
	ID        string    `json:"id"`
	CarKey    string    `json:"car_key"`
	TrackKey  string    `json:"track_key"`
	LapTimeMs int64     `json:"lap_time_ms"`
	LapTime   string    `json:"lap_time" doc:"Lap time as MM:SS.mmm"`
	Private   bool      `json:"is_private"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ManualSetupOutput wraps one manual setup for Huma.
type ManualSetupOutput struct {
	Body *domain.ManualSetup
}

// ManualSetupListOutput wraps the manual setups for Huma.
type ManualSetupListOutput struct {
	Body []*domain.ManualSetup
}

// LapTimeOutput wraps one lap for Huma.
type LapTimeOutput struct {
	Body LapTimeResponse
}

// LapTimeListOutput wraps the laps for Huma.
type LapTimeListOutput struct {
	Body []LapTimeResponse
}

// DashboardResponse is the whole dashboard of one user.
type DashboardResponse struct {
	Setups []*domain.ManualSetup `json:"setups"`
	Laps   []LapTimeResponse     `json:"laps"`
}

// DashboardOutput wraps the dashboard for Huma.
type DashboardOutput struct {
	Body DashboardResponse
}

// === Handlers ===

func (s *Server) handleGetDashboard(ctx context.Context, _ *struct{}) (*DashboardOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	overview, err := s.services.Dashboard.Overview(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &DashboardOutput{Body: DashboardResponse{
		Setups: nonNil(overview.Setups),
		Laps:   mapLaps(overview.Laps),
	}}, nil
}

func (s *Server) handleListManualSetups(ctx context.Context, _ *struct{}) (*ManualSetupListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	setups, err := s.services.Dashboard.ListSetups(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ManualSetupListOutput{Body: nonNil(setups)}, nil
}

func (s *Server) handleCreateManualSetup(ctx context.Context, input *ManualSetupInput) (*ManualSetupOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	setup, err := s.services.Dashboard.AddSetup(ctx, userID, service.ManualSetupRequest{
		CarKey:   input.Body.CarKey,
		TrackKey: input.Body.TrackKey,
		Name:     input.Body.Name,
		Private:  input.Body.Private,
		Notes:    input.Body.Notes,
		JSONData: input.Body.JSONData,
	})
	if err != nil {
		return nil, err
	}
	return &ManualSetupOutput{Body: setup}, nil
}

func (s *Server) handleDeleteManualSetup(ctx context.Context, input *DeleteEntryInput) (*struct{}, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.services.Dashboard.DeleteSetup(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleListLapTimes(ctx context.Context, _ *struct{}) (*LapTimeListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	laps, err := s.services.Dashboard.ListLaps(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &LapTimeListOutput{Body: mapLaps(laps)}, nil
}

func (s *Server) handleCreateLapTime(ctx context.Context, input *LapTimeInput) (*LapTimeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	lap, err := s.services.Dashboard.AddLap(ctx, userID, service.LapTimeRequest{
		CarKey:       input.Body.CarKey,
		TrackKey:     input.Body.TrackKey,
		Minutes:      input.Body.Minutes,
		Seconds:      input.Body.Seconds,
		Milliseconds: input.Body.Milliseconds,
		Private:      input.Body.Private,
		Notes:        input.Body.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &LapTimeOutput{Body: mapLap(lap)}, nil
}

func (s *Server) handleDeleteLapTime(ctx context.Context, input *DeleteEntryInput) (*struct{}, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.services.Dashboard.DeleteLap(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

// === Helpers ===

func mapLap(l *domain.LapTime) LapTimeResponse {
	return LapTimeResponse{
		ID:        l.ID,
		CarKey:    l.CarKey,
		TrackKey:  l.TrackKey,
		LapTimeMs: l.LapTimeMs,
		LapTime:   l.Formatted(),
		Private:   l.Private,
		Notes:     l.Notes,
		CreatedAt: l.CreatedAt,
	}
}

func mapLaps(laps []*domain.LapTime) []LapTimeResponse {
	return lo.Map(laps, func(l *domain.LapTime, _ int) LapTimeResponse {
		return mapLap(l)
	})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
