package catalog

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/accsetupsviewer/server/internal/domain"
)

// Index is the filterable view of one discovery listing.
type Index struct {
	Entries    []domain.SetupEntry
	Cars       []domain.FilterOption
	Tracks     []domain.FilterOption
	ClassByCar map[string]domain.CarCategory
}

// BuildIndex folds entries into sorted car and track options and classifies every car.
func BuildIndex(entries []domain.SetupEntry) *Index {
	cars := FilterOptions(entries, func(e domain.SetupEntry) (string, string) { return e.CarKey, e.CarLabel })
	tracks := FilterOptions(entries, func(e domain.SetupEntry) (string, string) { return e.TrackKey, e.TrackLabel })

	classByCar := make(map[string]domain.CarCategory, len(cars))
	for _, car := range cars {
		classByCar[car.Key] = Classify(car.Key)
	}

	return &Index{
		Entries:    entries,
		Cars:       cars,
		Tracks:     tracks,
		ClassByCar: classByCar,
	}
}

// FilterOptions keeps the first label seen for every key and sorts the result by label.
// Entries with an empty key or label are skipped.
func FilterOptions(entries []domain.SetupEntry, pick func(domain.SetupEntry) (key, label string)) []domain.FilterOption {
	seen := make(map[string]struct{}, len(entries))
	options := make([]domain.FilterOption, 0)
	for _, e := range entries {
		key, label := pick(e)
		if key == "" || label == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		options = append(options, domain.FilterOption{Key: key, Label: label})
	}

	col := newCollator()
	slices.SortStableFunc(options, func(a, b domain.FilterOption) int {
		return col.CompareString(a.Label, b.Label)
	})
	return options
}

// SortPaths orders discovered paths the way labels are ordered.
func SortPaths(paths []string) {
	col := newCollator()
	slices.SortStableFunc(paths, col.CompareString)
}

// HasCar reports whether key is one of the car options.
func (ix *Index) HasCar(key string) bool {
	return hasOption(ix.Cars, key)
}

// HasTrack reports whether key is one of the track options.
func (ix *Index) HasTrack(key string) bool {
	return hasOption(ix.Tracks, key)
}

func hasOption(options []domain.FilterOption, key string) bool {
	if key == "" {
		return false
	}
	return slices.ContainsFunc(options, func(o domain.FilterOption) bool { return o.Key == key })
}

// newCollator returns a fresh collator; collate.Collator is not safe for concurrent use.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}
