// Package catalog derives the car/track taxonomy from repository paths and resolves the
// setup a viewer is looking at.
package catalog

import (
	"strings"

	"github.com/accsetupsviewer/server/internal/domain"
	"github.com/accsetupsviewer/server/internal/normalize"
)

// Derive splits each path into car, track and filename and drops anything that does not
// yield all three. Output keeps input order.
func Derive(paths []string) []domain.SetupEntry {
	entries := make([]domain.SetupEntry, 0, len(paths))
	for _, p := range paths {
		if entry, ok := DeriveEntry(p); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// DeriveEntry derives a single entry. ok is false when the path has fewer than three
// usable parts.
func DeriveEntry(path string) (domain.SetupEntry, bool) {
	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return domain.SetupEntry{}, false
	}

	carKey := normalize.Name(parts[0])
	trackKey := normalize.Name(parts[1])
	filename := strings.Join(parts[2:], "/")
	if carKey == "" || trackKey == "" || filename == "" {
		return domain.SetupEntry{}, false
	}

	return domain.SetupEntry{
		Path:          path,
		CarKey:        carKey,
		TrackKey:      trackKey,
		CarLabel:      normalize.TitleCase(carKey),
		TrackLabel:    normalize.TitleCase(trackKey),
		Filename:      filename,
		FilenameLabel: normalize.FileDisplayName(filename),
	}, true
}
