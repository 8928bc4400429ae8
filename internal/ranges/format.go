package ranges

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

var (
	zeroFraction  = regexp.MustCompile(`\.0+$`)
	trailingZeros = regexp.MustCompile(`(\.\d*?)0+$`)
)

// FormatValue renders a converted value for display. Whole numbers print as is, other
// numbers use at most four decimals, booleans print Yes/No, strings pass through and
// anything else becomes "-".
func FormatValue(v any) string {
	switch val := v.(type) {
	case float64:
		return formatNumber(val)
	case float32:
		return formatNumber(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return val.String()
		}
		return formatNumber(f)
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case string:
		return val
	default:
		return "-"
	}
}

func formatNumber(f float64) string {
	if math.Abs(f) >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', 4, 64)
	s = zeroFraction.ReplaceAllString(s, "")
	return trailingZeros.ReplaceAllString(s, "$1")
}
