package domain

// SetupEntry is one setup file from the source repository, split into its car and track
// taxonomy. Entries are immutable once derived.
type SetupEntry struct {
	Path          string `json:"path"`
	CarKey        string `json:"car_key"`
	TrackKey      string `json:"track_key"`
	CarLabel      string `json:"car_label"`
	TrackLabel    string `json:"track_label"`
	Filename      string `json:"filename"`
	FilenameLabel string `json:"filename_label"`
}

// FilterOption is one distinct car or track value offered as a filter.
type FilterOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// CarCategory is the coarse class a car belongs to.
type CarCategory string

const (
	CategoryGT3       CarCategory = "gt3"
	CategoryGT4       CarCategory = "gt4"
	CategoryGT2       CarCategory = "gt2"
	CategoryCup       CarCategory = "cup"
	CategoryChallenge CarCategory = "challenge"
	CategoryST        CarCategory = "st"
	CategoryOther     CarCategory = "other"
)

// DefaultCategory is used when no valid class is requested.
const DefaultCategory = CategoryGT3

// CarCategories lists every category in display order.
func CarCategories() []CarCategory {
	return []CarCategory{
		CategoryGT3,
		CategoryGT4,
		CategoryGT2,
		CategoryCup,
		CategoryChallenge,
		CategoryST,
		CategoryOther,
	}
}

// Valid reports whether c is one of the known categories.
func (c CarCategory) Valid() bool {
	switch c {
	case CategoryGT3, CategoryGT4, CategoryGT2, CategoryCup, CategoryChallenge, CategoryST, CategoryOther:
		return true
	}
	return false
}

// FinalValues is the converter's nested section -> field -> value document.
type FinalValues map[string]any
