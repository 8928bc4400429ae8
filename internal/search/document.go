// Package search provides full-text search over the discovered setup catalog using Bleve.
// The index lives in memory and is rebuilt whenever the discovery listing refreshes.
package search

import (
	"github.com/accsetupsviewer/server/internal/domain"
)

// SetupDocument is the indexed form of one setup file.
type SetupDocument struct {
	ID       string `json:"id"` // repository path
	CarKey   string `json:"car_key"`
	TrackKey string `json:"track_key"`
	Category string `json:"category"`
	Car      string `json:"car"`
	Track    string `json:"track"`
	File     string `json:"file"`
}

// NewSetupDocument builds a document from a catalog entry and its car category.
func NewSetupDocument(entry domain.SetupEntry, category domain.CarCategory) *SetupDocument {
	return &SetupDocument{
		ID:       entry.Path,
		CarKey:   entry.CarKey,
		TrackKey: entry.TrackKey,
		Category: string(category),
		Car:      entry.CarLabel,
		Track:    entry.TrackLabel,
		File:     entry.FilenameLabel,
	}
}

// ToMap converts the document to the field names used by the mapping.
func (d *SetupDocument) ToMap() map[string]any {
	return map[string]any{
		"id":        d.ID,
		"car_key":   d.CarKey,
		"track_key": d.TrackKey,
		"category":  d.Category,
		"car":       d.Car,
		"track":     d.Track,
		"file":      d.File,
	}
}
