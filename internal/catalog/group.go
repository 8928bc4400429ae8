package catalog

import (
	"slices"

	"github.com/accsetupsviewer/server/internal/domain"
)

// Group is a bucket of filtered entries sharing a track or a car.
type Group struct {
	Key       string              `json:"key"`
	Label     string              `json:"label"`
	Entries   []domain.SetupEntry `json:"entries"`
	HasActive bool                `json:"has_active"`
}

// Groups returns the grouping the selection calls for: by track when only a car is
// selected, by car when only a track is selected, nil otherwise.
func (s Selection) Groups() []Group {
	switch {
	case s.Car != "" && s.Track == "":
		return GroupByTrack(s.FilteredEntries, s.SelectedFile)
	case s.Track != "" && s.Car == "":
		return GroupByCar(s.FilteredEntries, s.SelectedFile)
	default:
		return nil
	}
}

// GroupByTrack buckets entries by track key.
func GroupByTrack(entries []domain.SetupEntry, selectedFile string) []Group {
	return groupBy(entries, selectedFile, func(e domain.SetupEntry) (string, string) { return e.TrackKey, e.TrackLabel })
}

// GroupByCar buckets entries by car key.
func GroupByCar(entries []domain.SetupEntry, selectedFile string) []Group {
	return groupBy(entries, selectedFile, func(e domain.SetupEntry) (string, string) { return e.CarKey, e.CarLabel })
}

// groupBy keeps entry order inside each group and sorts groups by label.
func groupBy(entries []domain.SetupEntry, selectedFile string, pick func(domain.SetupEntry) (string, string)) []Group {
	byKey := make(map[string]int)
	groups := make([]Group, 0)
	for _, e := range entries {
		key, label := pick(e)
		i, ok := byKey[key]
		if !ok {
			i = len(groups)
			byKey[key] = i
			groups = append(groups, Group{Key: key, Label: label})
		}
		groups[i].Entries = append(groups[i].Entries, e)
		if selectedFile != "" && e.Path == selectedFile {
			groups[i].HasActive = true
		}
	}

	col := newCollator()
	slices.SortStableFunc(groups, func(a, b Group) int {
		return col.CompareString(a.Label, b.Label)
	})
	return groups
}
