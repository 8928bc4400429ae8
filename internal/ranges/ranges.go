// Package ranges maps converted setup values onto a 0-100 scale for bar rendering.
package ranges

import (
	"maps"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Range is the operating window of one setup parameter.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// paramRanges holds the known windows, keyed by display label.
var paramRanges = map[string]Range{
	"PSI":             {19, 35},
	"Toe":             {-0.5, 0.5},
	"Camber":          {-5, 0},
	"Caster":          {6, 16},
	"TC":              {0, 12},
	"ABS":             {0, 12},
	"ECUMap":          {1, 12},
	"TC2":             {0, 12},
	"Front":           {0, 6},
	"Rear":            {0, 6},
	"Antiroll Bar":    {0, 49},
	"Brake Power":     {80, 100},
	"Brake Bias":      {45, 70},
	"Steer Ratio":     {8, 20},
	"Wheel Rate":      {20000, 300000},
	"Bumpstop Rate":   {0, 2400},
	"Bumpstop Range":  {0, 60},
	"Preload":         {0, 400},
	"Bump":            {0, 40},
	"Fast Bump":       {0, 40},
	"Rebound":         {0, 40},
	"Fast Rebound":    {0, 40},
	"Ride Height":     {40, 130},
	"Ride Height N24": {40, 130},
	"Splitter":        {0, 20},
	"Brake Ducts":     {0, 6},
	"Rear Wing":       {0, 20},
}

type unitRule struct {
	marker string
	rng    Range
}

// unitRules infer a window from the unit embedded in the display value when the label is
// unknown. Checked in order; "N/m" must precede " N".
var unitRules = []unitRule{
	{"%", Range{0, 100}},
	{"N/m", Range{20000, 300000}},
	{" N", Range{0, 2400}},
	{"°", Range{-5, 5}},
}

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// Lookup returns the window for a known label.
func Lookup(label string) (Range, bool) {
	r, ok := paramRanges[label]
	return r, ok
}

// Table returns a copy of the fixed label windows.
func Table() map[string]Range {
	return maps.Clone(paramRanges)
}

// Infer returns the window for label, falling back to the unit found in display.
func Infer(label, display string) (Range, bool) {
	if r, ok := Lookup(label); ok {
		return r, true
	}
	for _, rule := range unitRules {
		if strings.Contains(display, rule.marker) {
			return rule.rng, true
		}
	}
	return Range{}, false
}

// ParseNumeric extracts the first number in s. The first comma is read as a decimal
// separator, so "2,5 mm" parses as 2.5.
func ParseNumeric(s string) (float64, bool) {
	match := numberPattern.FindString(strings.Replace(s, ",", ".", 1))
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Percent places display within the window for label and clamps the result to [0, 100].
// ok is false when no window applies or display carries no number.
func Percent(label, display string) (float64, bool) {
	r, ok := Infer(label, display)
	if !ok || r.Max <= r.Min {
		return 0, false
	}

	v, ok := ParseNumeric(display)
	if !ok {
		return 0, false
	}

	pct := (v - r.Min) / (r.Max - r.Min) * 100
	return math.Min(100, math.Max(0, pct)), true
}
