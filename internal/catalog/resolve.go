package catalog

import (
	"github.com/samber/lo"

	"github.com/accsetupsviewer/server/internal/domain"
	"github.com/accsetupsviewer/server/internal/normalize"
)

// SelectionRequest is the raw filter state a viewer asked for. Any field may be empty or
// invalid.
type SelectionRequest struct {
	Car      string
	Track    string
	CarClass string
	File     string
}

// Selection is the resolved view state.
type Selection struct {
	Car             string
	Track           string
	CarClass        domain.CarCategory
	FilteredEntries []domain.SetupEntry
	SelectedFile    string
	SelectedEntry   *domain.SetupEntry
}

// HasPrimary reports whether a car or a track filter is active.
func (s Selection) HasPrimary() bool {
	return s.Car != "" || s.Track != ""
}

// Resolve validates the request against the index and picks the setup under view.
//
// Unknown cars and tracks clear that filter, an unknown class becomes gt3, and a requested
// file outside the filtered entries falls back to the first filtered entry in discovery
// order. The class does not constrain the car filter. Resolve never fails; a nil index
// resolves to an empty selection.
func Resolve(ix *Index, req SelectionRequest) Selection {
	if ix == nil {
		ix = &Index{}
	}

	sel := Selection{CarClass: domain.DefaultCategory}

	if car := normalize.Name(req.Car); ix.HasCar(car) {
		sel.Car = car
	}
	if track := normalize.Name(req.Track); ix.HasTrack(track) {
		sel.Track = track
	}
	if class := domain.CarCategory(normalize.Name(req.CarClass)); class.Valid() {
		sel.CarClass = class
	}

	sel.FilteredEntries = lo.Filter(ix.Entries, func(e domain.SetupEntry, _ int) bool {
		if sel.Car != "" && e.CarKey != sel.Car {
			return false
		}
		return sel.Track == "" || e.TrackKey == sel.Track
	})

	if req.File != "" {
		if entry, ok := lo.Find(sel.FilteredEntries, func(e domain.SetupEntry) bool { return e.Path == req.File }); ok {
			sel.SelectedFile = entry.Path
			sel.SelectedEntry = &entry
			return sel
		}
	}

	if len(sel.FilteredEntries) > 0 {
		first := sel.FilteredEntries[0]
		sel.SelectedFile = first.Path
		sel.SelectedEntry = &first
	}
	return sel
}
