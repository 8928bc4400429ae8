// Package setupview arranges converted setup values into the sections shown next to a
// selected setup file.
package setupview

import (
	"github.com/accsetupsviewer/server/internal/domain"
	"github.com/accsetupsviewer/server/internal/i18n"
	"github.com/accsetupsviewer/server/internal/ranges"
)

// Item is one displayed parameter.
type Item struct {
	Label   string   `json:"label"`
	Value   string   `json:"value"`
	Percent *float64 `json:"percent,omitempty"`
}

// Block is a titled list of items inside a section, such as one tyre corner.
// Flat sections use a single block with an empty key.
type Block struct {
	Key   string `json:"key,omitempty"`
	Title string `json:"title,omitempty"`
	Items []Item `json:"items"`
}

// Section groups the blocks of one part of the car.
type Section struct {
	Key    string  `json:"key"`
	Title  string  `json:"title"`
	Blocks []Block `json:"blocks"`
}

// Details is the full view of one converted setup.
type Details struct {
	Sections []Section `json:"sections"`
}

// Empty reports whether there is nothing to show.
func (d Details) Empty() bool {
	return len(d.Sections) == 0
}

// Section returns the section with the given key.
func (d Details) Section(key string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// Item returns the item with the given label in block key of the section.
func (s Section) Item(block, label string) (Item, bool) {
	for _, b := range s.Blocks {
		if b.Key != block {
			continue
		}
		for _, it := range b.Items {
			if it.Label == label {
				return it, true
			}
		}
	}
	return Item{}, false
}

// Section keys.
const (
	SectionTyres       = "TYRES"
	SectionElectronics = "ELECTRONICS"
	SectionBrakes      = "BRAKES"
	SectionMechanical  = "MECHANICAL"
	SectionDampers     = "DAMPERS"
	SectionAero        = "AERO"
)

var corners = []string{"LF", "RF", "LR", "RR"}

// field maps a display label to the key in the converted object.
type field struct {
	label string
	key   string
}

var (
	tyreFields = []field{{"PSI", "PSI"}, {"Toe", "Toe"}, {"Camber", "Camber"}, {"Caster", "Caster"}}

	electronicsFields = []field{{"TC", "TC"}, {"ABS", "ABS"}, {"ECUMap", "ECUMap"}, {"TC2", "TC2"}}

	brakeFields = []field{{"Front", "Front"}, {"Rear", "Rear"}}

	mechFrontFields = []field{
		{"Antiroll Bar", "AntirollBar"},
		{"Brake Power", "BrakePower"},
		{"Brake Bias", "BrakeBias"},
		{"Steer Ratio", "SteerRatio"},
	}
	mechCornerFields = []field{
		{"Wheel Rate", "WheelRate"},
		{"Bumpstop Rate", "BumpstopRate"},
		{"Bumpstop Range", "BumpstopRange"},
	}
	mechRearFields = []field{{"Antiroll Bar", "AntirollBar"}, {"Preload", "Preload"}}

	damperFields = []field{
		{"Bump", "Bump"},
		{"Fast Bump", "FastBump"},
		{"Rebound", "Rebound"},
		{"Fast Rebound", "FastRebound"},
	}

	aeroFrontFields = []field{
		{"Ride Height", "RideHeight"},
		{"Ride Height N24", "RideHeightN24"},
		{"Splitter", "Splitter"},
		{"Brake Ducts", "BrakeDucts"},
	}
	aeroRearFields = []field{
		{"Ride Height", "RideHeight"},
		{"Ride Height N24", "RideHeightN24"},
		{"Rear Wing", "RearWing"},
		{"Brake Ducts", "BrakeDucts"},
	}
)

// Build turns converted final values into display sections with English titles.
// A nil map yields empty Details. Missing values render as "-".
func Build(values domain.FinalValues) Details {
	if values == nil {
		return Details{}
	}

	tyres := asMap(values["TYRES"])
	electronics := asMap(values["ELECTRONICS"])
	mechanical := asMap(values["MECHANICAL"])
	dampers := asMap(values["DAMPERS"])
	aero := asMap(values["AERO"])

	// The converter spells this section BREAKS; BRAKES is accepted when it is absent.
	brakesRaw, ok := values["BREAKS"]
	if !ok || brakesRaw == nil {
		brakesRaw = values["BRAKES"]
	}
	brakes := asMap(brakesRaw)

	d := Details{Sections: []Section{
		{Key: SectionTyres, Blocks: cornerBlocks(tyres, tyreFields)},
		{Key: SectionElectronics, Blocks: []Block{{Items: items(electronics, electronicsFields)}}},
		{Key: SectionBrakes, Blocks: []Block{{Items: items(brakes, brakeFields)}}},
		{Key: SectionMechanical, Blocks: append(append(
			[]Block{{Key: "FRONT", Items: items(asMap(mechanical["FRONT"]), mechFrontFields)}},
			cornerBlocks(mechanical, mechCornerFields)...),
			Block{Key: "REAR", Items: items(asMap(mechanical["REAR"]), mechRearFields)})},
		{Key: SectionDampers, Blocks: cornerBlocks(dampers, damperFields)},
		{Key: SectionAero, Blocks: []Block{
			{Key: "FRONT", Items: items(asMap(aero["FRONT"]), aeroFrontFields)},
			{Key: "REAR", Items: items(asMap(aero["REAR"]), aeroRearFields)},
		}},
	}}
	return d.Localize(i18n.For(i18n.Default))
}

// Localize returns a copy of d with section and block titles from m.
func (d Details) Localize(m i18n.Messages) Details {
	sectionTitles := map[string]string{
		SectionTyres:       m.Tyres,
		SectionElectronics: m.Electronics,
		SectionBrakes:      m.Brakes,
		SectionMechanical:  m.MechanicalGrip,
		SectionDampers:     m.Dampers,
		SectionAero:        m.Aero,
	}
	blockTitles := map[string]string{
		"FRONT": m.Front,
		"REAR":  m.Rear,
		"LF":    m.LeftFront,
		"RF":    m.RightFront,
		"LR":    m.LeftRear,
		"RR":    m.RightRear,
	}

	out := Details{Sections: make([]Section, len(d.Sections))}
	for i, s := range d.Sections {
		s.Title = sectionTitles[s.Key]
		blocks := make([]Block, len(s.Blocks))
		for j, b := range s.Blocks {
			b.Title = blockTitles[b.Key]
			blocks[j] = b
		}
		s.Blocks = blocks
		out.Sections[i] = s
	}
	return out
}

func cornerBlocks(parent map[string]any, fields []field) []Block {
	blocks := make([]Block, 0, len(corners))
	for _, corner := range corners {
		blocks = append(blocks, Block{Key: corner, Items: items(asMap(parent[corner]), fields)})
	}
	return blocks
}

func items(source map[string]any, fields []field) []Item {
	out := make([]Item, 0, len(fields))
	for _, f := range fields {
		var raw any
		if source != nil {
			raw = source[f.key]
		}
		value := ranges.FormatValue(raw)
		item := Item{Label: f.label, Value: value}
		if pct, ok := ranges.Percent(f.label, value); ok {
			item.Percent = &pct
		}
		out = append(out, item)
	}
	return out
}

func asMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case domain.FinalValues:
		return m
	default:
		return nil
	}
}
