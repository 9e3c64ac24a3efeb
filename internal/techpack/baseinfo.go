package techpack

import (
	"regexp"
	"strings"

	"packlens/internal"
)

type baseInfoPattern struct {
	re  *regexp.Regexp
	set func(*internal.BaseInformation, string)
}

// Base information is independent single-pattern-per-field matching:
// the first hit per field wins, later hits are ignored.
var baseInfoPatterns = []baseInfoPattern{
	{regexp.MustCompile(`(?i)buyer\s*[:\-]\s*(.+)`), func(b *internal.BaseInformation, v string) {
		if b.Buyer == "" {
			b.Buyer = v
		}
	}},
	{regexp.MustCompile(`(?i)(?:order\s*no\.?|con\s*no\.?|contract\s*no\.?)\s*[:\-]\s*(.+)`), func(b *internal.BaseInformation, v string) {
		if b.OrderNo == "" {
			b.OrderNo = v
		}
	}},
	{regexp.MustCompile(`(?i)style\s*ref\.?\s*[:\-]\s*(.+)`), func(b *internal.BaseInformation, v string) {
		if b.StyleRef == "" {
			b.StyleRef = v
		}
	}},
	{regexp.MustCompile(`(?i)fit\s*[:\-]\s*(.+)`), func(b *internal.BaseInformation, v string) {
		if b.Fit == "" {
			b.Fit = v
		}
	}},
	{regexp.MustCompile(`(?i)season\s*[:\-]\s*(.+)`), func(b *internal.BaseInformation, v string) {
		if b.Season == "" {
			b.Season = v
		}
	}},
	{regexp.MustCompile(`(?i)modified\s*(?:on)?\s*[:\-]\s*(.+)`), func(b *internal.BaseInformation, v string) {
		if b.Modified == "" {
			b.Modified = v
		}
	}},
}

// ExtractBaseInfo pulls the free-text header fields (buyer, order number,
// style reference, fit, season, modified date) out of the line stream.
func ExtractBaseInfo(lines []string) internal.BaseInformation {
	var out internal.BaseInformation
	for _, line := range lines {
		raw := strings.TrimSpace(line)
		if raw == "" || len(raw) > 200 {
			continue
		}
		for _, p := range baseInfoPatterns {
			m := p.re.FindStringSubmatch(raw)
			if m == nil {
				continue
			}
			value := strings.TrimSpace(m[1])
			if value != "" {
				p.set(&out, truncate(value, 120))
			}
			break
		}
	}
	return out
}
