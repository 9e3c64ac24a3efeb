package util

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	fractionPattern = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)`)
	decimalPattern  = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(mm|cm)?`)
)

// Measure is a quantity normalized to a canonical metric magnitude:
// centimeters at or above 10mm, millimeters below.
type Measure struct {
	Value float64
	Unit  string
}

// NormalizeMeasure converts a raw numeric token with an optional unit into
// the canonical form. Fractions and bare numbers are read as inches; that
// is a fixed assumption for legacy lines without unit marks, not a guess
// per input. Returns false if the token cannot be parsed.
func NormalizeMeasure(valueText, unitText string) (Measure, bool) {
	if strings.TrimSpace(valueText) == "" {
		return Measure{}, false
	}
	unit := strings.ToLower(strings.TrimSpace(unitText))
	token := valueText
	if unit == "mm" || unit == "cm" {
		token += unit
	}
	mm, ok := toMillimeters(token)
	if !ok {
		return Measure{}, false
	}
	if mm >= 10 {
		return Measure{Value: round2(mm / 10), Unit: "cm"}, true
	}
	return Measure{Value: round2(mm), Unit: "mm"}, true
}

// toMillimeters parses a fraction or decimal token with an optional
// embedded metric unit. Inch marks are stripped; unitless values are
// inches.
func toMillimeters(token string) (float64, bool) {
	token = strings.TrimSpace(token)
	token = strings.ReplaceAll(token, `"`, "")
	token = strings.ReplaceAll(token, "'", "")
	token = strings.ReplaceAll(token, "”", "")

	if m := fractionPattern.FindStringSubmatch(token); m != nil {
		num, err1 := strconv.ParseFloat(m[1], 64)
		den, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return 0, false
		}
		return round2(num / den * 25.4), true
	}

	m := decimalPattern.FindStringSubmatch(token)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(m[2]) {
	case "cm":
		return round2(n * 10), true
	case "mm":
		return round2(n), true
	default:
		return round2(n * 25.4), true
	}
}

// FormatMeasure renders the numeric value the way the tables expect:
// shortest decimal form, e.g. "2.5" or "9.53".
func FormatMeasure(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// round2 rounds half-up at two decimals. The epsilon absorbs binary float
// drift on exact .xx5 inputs such as 3/8" = 9.525mm.
func round2(v float64) float64 {
	return math.Round(v*100+1e-9*math.Abs(v)*100) / 100
}
