package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/accsetupsviewer/server/internal/domain"
	domainerrors "github.com/accsetupsviewer/server/internal/errors"
	"github.com/accsetupsviewer/server/internal/id"
	"github.com/accsetupsviewer/server/internal/normalize"
	"github.com/accsetupsviewer/server/internal/store"
)

// DashboardService manages the manual setups and lap times a user records.
type DashboardService struct {
	store    store.Store
	profiles *ProfileService
	logger   *slog.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(store store.Store, profiles *ProfileService, logger *slog.Logger) *DashboardService {
	return &DashboardService{store: store, profiles: profiles, logger: logger}
}

// ManualSetupRequest is the payload for pasting a setup into the dashboard.
type ManualSetupRequest struct {
	CarKey   string `json:"car_key"`
	TrackKey string `json:"track_key"`
	Name     string `json:"setup_name"`
	Private  bool   `json:"is_private,omitempty"`
	Notes    string `json:"notes,omitempty"`
	JSONData string `json:"json_data"`
}

// LapTimeRequest is the payload for recording a lap. The time parts are the digit strings
// typed by the user.
type LapTimeRequest struct {
	CarKey       string `json:"car_key"`
	TrackKey     string `json:"track_key"`
	Minutes      string `json:"minutes"`
	Seconds      string `json:"seconds"`
	Milliseconds string `json:"milliseconds"`
	Private      bool   `json:"is_private,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Overview is everything the dashboard lists for one user.
type Overview struct {
	Setups []*domain.ManualSetup `json:"setups"`
	Laps   []*domain.LapTime     `json:"laps"`
}

// AddSetup validates and stores a manual setup for userID.
func (s *DashboardService) AddSetup(ctx context.Context, userID string, req ManualSetupRequest) (*domain.ManualSetup, error) {
	if err := s.profiles.RequireNickname(ctx, userID); err != nil {
		return nil, err
	}

	carKey, trackKey, err := carAndTrack(req.CarKey, req.TrackKey)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	raw := strings.TrimSpace(req.JSONData)
	if name == "" || raw == "" {
		return nil, domainerrors.Validation("Setup name and setup JSON are required.")
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(raw)); err != nil {
		return nil, domainerrors.Validation("Setup JSON is not valid.")
	}

	setupID, err := id.Generate(id.PrefixSetup)
	if err != nil {
		return nil, fmt.Errorf("generate setup ID: %w", err)
	}

	setup := &domain.ManualSetup{
		ID:        setupID,
		UserID:    userID,
		CarKey:    carKey,
		TrackKey:  trackKey,
		Name:      name,
		Private:   req.Private,
		Notes:     normalize.Notes(req.Notes),
		JSONData:  compact.String(),
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateManualSetup(ctx, setup); err != nil {
		return nil, fmt.Errorf("create manual setup: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("manual setup added", "user_id", userID, "setup_id", setupID, "car", carKey, "track", trackKey)
	}
	return setup, nil
}

// ListSetups returns the user's most recent manual setups.
func (s *DashboardService) ListSetups(ctx context.Context, userID string) ([]*domain.ManualSetup, error) {
	setups, err := s.store.ListManualSetups(ctx, userID, store.DashboardListLimit)
	if err != nil {
		return nil, fmt.Errorf("list manual setups: %w", err)
	}
	return setups, nil
}

// DeleteSetup removes one of the user's manual setups.
func (s *DashboardService) DeleteSetup(ctx context.Context, userID, setupID string) error {
	if err := s.store.DeleteManualSetup(ctx, userID, setupID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("setup not found")
		}
		return fmt.Errorf("delete manual setup: %w", err)
	}
	return nil
}

// AddLap validates and stores a lap time for userID.
func (s *DashboardService) AddLap(ctx context.Context, userID string, req LapTimeRequest) (*domain.LapTime, error) {
	if err := s.profiles.RequireNickname(ctx, userID); err != nil {
		return nil, err
	}

	carKey, trackKey, err := carAndTrack(req.CarKey, req.TrackKey)
	if err != nil {
		return nil, err
	}

	ms, err := ParseLapTime(req.Minutes, req.Seconds, req.Milliseconds)
	if err != nil {
		return nil, err
	}

	lapID, err := id.Generate(id.PrefixLap)
	if err != nil {
		return nil, fmt.Errorf("generate lap ID: %w", err)
	}

	lap := &domain.LapTime{
		ID:        lapID,
		UserID:    userID,
		CarKey:    carKey,
		TrackKey:  trackKey,
		LapTimeMs: ms,
		Private:   req.Private,
		Notes:     normalize.Notes(req.Notes),
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateLapTime(ctx, lap); err != nil {
		return nil, fmt.Errorf("create lap time: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("lap time added", "user_id", userID, "lap_id", lapID, "lap", lap.Formatted())
	}
	return lap, nil
}

// ListLaps returns the user's most recent lap times.
func (s *DashboardService) ListLaps(ctx context.Context, userID string) ([]*domain.LapTime, error) {
	laps, err := s.store.ListLapTimes(ctx, userID, store.DashboardListLimit)
	if err != nil {
		return nil, fmt.Errorf("list lap times: %w", err)
	}
	return laps, nil
}

// DeleteLap removes one of the user's lap times.
func (s *DashboardService) DeleteLap(ctx context.Context, userID, lapID string) error {
	if err := s.store.DeleteLapTime(ctx, userID, lapID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("lap time not found")
		}
		return fmt.Errorf("delete lap time: %w", err)
	}
	return nil
}

// Overview lists both kinds of rows for the user.
func (s *DashboardService) Overview(ctx context.Context, userID string) (*Overview, error) {
	setups, err := s.ListSetups(ctx, userID)
	if err != nil {
		return nil, err
	}
	laps, err := s.ListLaps(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Overview{Setups: setups, Laps: laps}, nil
}

// ParseLapTime turns the minutes, seconds and milliseconds inputs into a lap time in
// milliseconds. Seconds must be 0-59 and milliseconds 0-999.
func ParseLapTime(minutes, seconds, millis string) (int64, error) {
	parts := []string{strings.TrimSpace(minutes), strings.TrimSpace(seconds), strings.TrimSpace(millis)}
	for _, p := range parts {
		if p == "" {
			return 0, domainerrors.Validation("Lap time is required.")
		}
	}

	values := make([]int64, len(parts))
	for i, p := range parts {
		if strings.TrimFunc(p, isDigit) != "" {
			return 0, domainerrors.Validation("Lap time must contain only numbers.")
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return 0, domainerrors.Validation("Lap time values are out of range.")
		}
		values[i] = v
	}

	mins, sec, ms := values[0], values[1], values[2]
	if sec > 59 || ms > 999 || mins > 999 {
		return 0, domainerrors.Validation("Lap time values are out of range.")
	}

	total := mins*60000 + sec*1000 + ms
	if total <= 0 {
		return 0, domainerrors.Validation("Lap time must be greater than 0.")
	}
	return total, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func carAndTrack(car, track string) (string, string, error) {
	carKey, trackKey := normalize.Name(car), normalize.Name(track)
	if carKey == "" || trackKey == "" {
		return "", "", domainerrors.Validation("Car and track are required.")
	}
	return carKey, trackKey, nil
}
