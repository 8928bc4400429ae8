package domain

import (
	"fmt"
	"time"
)

// ManualSetup is a setup a user pasted into the dashboard.
type ManualSetup struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CarKey    string    `json:"car_key"`
	TrackKey  string    `json:"track_key"`
	Name      string    `json:"setup_name"`
	Private   bool      `json:"is_private"`
	Notes     string    `json:"notes,omitempty"`
	JSONData  string    `json:"json_data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LapTime is a lap a user recorded for a car and track.
type LapTime struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CarKey    string    `json:"car_key"`
	TrackKey  string    `json:"track_key"`
	LapTimeMs int64     `json:"lap_time_ms"`
	Private   bool      `json:"is_private"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Formatted returns the lap time as MM:SS.mmm.
func (l LapTime) Formatted() string {
	return FormatLapTime(l.LapTimeMs)
}

// FormatLapTime renders milliseconds as MM:SS.mmm. Minutes grow past two digits when needed.
func FormatLapTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}
