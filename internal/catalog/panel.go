package catalog

import (
	"strings"

	"github.com/samber/lo"

	"github.com/accsetupsviewer/server/internal/domain"
)

// Tabs returns the categories, in display order, that have at least one car.
func (ix *Index) Tabs() []domain.CarCategory {
	present := lo.Values(ix.ClassByCar)
	return lo.Filter(domain.CarCategories(), func(c domain.CarCategory, _ int) bool {
		return lo.Contains(present, c)
	})
}

// VisibleCars returns the cars of class whose label contains query, ignoring case.
func (ix *Index) VisibleCars(class domain.CarCategory, query string) []domain.FilterOption {
	return lo.Filter(ix.Cars, func(o domain.FilterOption, _ int) bool {
		return ix.ClassByCar[o.Key] == class && labelMatches(o.Label, query)
	})
}

// VisibleTracks returns the tracks whose label contains query, ignoring case.
func (ix *Index) VisibleTracks(query string) []domain.FilterOption {
	return lo.Filter(ix.Tracks, func(o domain.FilterOption, _ int) bool {
		return labelMatches(o.Label, query)
	})
}

func labelMatches(label, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	return q == "" || strings.Contains(strings.ToLower(label), q)
}
