// Package techpack turns ordered text lines extracted from a garment tech
// pack into decision-oriented data: per-section item lists for gauge,
// folder and risk review, and strict per-component technical tables.
package techpack

import (
	"regexp"
	"strings"

	"packlens/internal"
)

// Sections are the seven item-mode output keys, in envelope order.
var Sections = []string{"collar", "sleeve", "cuff", "pocket", "front", "back", "assembly"}

// ComponentOrder is the canonical table-mode component ordering.
var ComponentOrder = []string{"Assembly", "Collar", "Sleeve", "Cuff", "Front", "Back", "Yoke", "Pocket"}

// MeasureMatch is one numeric-plus-unit token found in a line.
type MeasureMatch struct {
	Full  string // full matched text, e.g. `2.5cm`
	Value string // numeric part, e.g. `2.5` or `1/2`
	Unit  string // unit part, may be empty for bare inch marks stripped later
}

// SizeMatch is one size-label-plus-value token, e.g. `XS-5cm`.
type SizeMatch struct {
	Full  string
	Label string
	Value string
	Unit  string
}

// relevanceRule maps a name fragment to a relevance tag. Rules are ordered:
// the first fragment contained in the name wins.
type relevanceRule struct {
	Term string
	Tag  internal.Relevance
}

// Rules is the read-only pattern library and vocabulary set shared by both
// engines. Construct once with DefaultRules and inject; engines never
// mutate it, so one value may serve concurrent analyses.
type Rules struct {
	measurement  *regexp.Regexp
	stitch       *regexp.Regexp
	construction *regexp.Regexp
	automation   *regexp.Regexp
	spi          *regexp.Regexp
	sizeValue    *regexp.Regexp
	heading      *regexp.Regexp
	folderImply  *regexp.Regexp

	ignoreLine      []*regexp.Regexp
	technicalIgnore *regexp.Regexp

	// componentMap is ordered so multi-word headings win over their
	// single-word suffixes (`straight back` before `back`).
	componentMap []componentMapping

	NoiseValues         map[string]struct{}
	StopWords           []string
	RelevantMeasurement []string
	relevanceRules      []relevanceRule
	measurementNoise    []string
}

type componentMapping struct {
	Keyword   string
	Component string
}

// DefaultRules builds the fixed vocabulary used in production.
func DefaultRules() *Rules {
	ignore := []string{
		`buyer`, `style ref`, `order no`, `season`, `modified`,
		`main label`, `size label`, `w/c label`, `barcode`,
		`dressed`, `cotton`, `brand`, `logo`, `sheet`, `page`, `spec actual`,
	}
	ignoreLine := make([]*regexp.Regexp, 0, len(ignore))
	for _, pat := range ignore {
		ignoreLine = append(ignoreLine, regexp.MustCompile(`(?i)`+pat))
	}

	return &Rules{
		measurement:  regexp.MustCompile(`(?i)((\d+\s?/\s?\d+)|(\d+(\.\d+)?))\s?(mm|cm|"|inch|”|')`),
		stitch:       regexp.MustCompile(`(?i)\b(SNLS|DNCS|T/S|S/B|SPI|Box stitch|Lock stitch)\b`),
		construction: regexp.MustCompile(`(?i)(back tack|double fold|clean finish|raw edge|binding|facing|hem fold)`),
		automation:   regexp.MustCompile(`(?i)(auto|pneumatic|operation|notch)`),
		spi:          regexp.MustCompile(`(?i)SPI\s?(\d+)`),
		sizeValue:    regexp.MustCompile(`(?i)\b(XS|S|M|L|XL|2XL|3XL)\s*[-:]?\s*(\d+(?:\.\d+)?)\s*(mm|cm)?`),
		heading:      regexp.MustCompile(`(?i)^(ASSEMBLY|REGULAR\s+CUTAWAY\s+COLLAR|COLLAR|SHORT\s+SLEEVE|SLEEVE|FRONT|STRAIGHT\s+BACK|BACK|STRAIGHT\s+YOKE|YOKE|POCKET|CUFF)\s*$`),
		folderImply:  regexp.MustCompile(`(?i)clean finish|double fold|binding|hem|facing|raw edge|back tack`),

		ignoreLine: ignoreLine,
		technicalIgnore: regexp.MustCompile(
			`(?i)buyer|style ref|order no|season|modified|wash care|finishing|fabric|trim|care instruction|barcode|w/c label|dressed|cotton|brand|logo|sheet|page\s*\d|--\s*\d+\s+of\s+\d+\s*--`),

		componentMap: []componentMapping{
			{"assembly", "Assembly"},
			{"regular cutaway collar", "Collar"},
			{"collar", "Collar"},
			{"short sleeve", "Sleeve"},
			{"sleeve", "Sleeve"},
			{"front", "Front"},
			{"straight back", "Back"},
			{"back", "Back"},
			{"straight yoke", "Yoke"},
			{"yoke", "Yoke"},
			{"pocket", "Pocket"},
			{"cuff", "Cuff"},
		},

		NoiseValues: toSet("front", "back", "side", "collar", "pocket", "yoke", "sleeve", "cuff", "frontback"),
		StopWords:   []string{"front", "back", "frontback", "assembly", "detail", "section", "item"},
		RelevantMeasurement: []string{
			"margin", "hem", "seam", "stand", "height", "width", "placket",
			"cuff", "opening", "allowance", "depth", "run", "spread", "trimming", "fold",
		},
		relevanceRules: []relevanceRule{
			{"margin", internal.RelevanceGauge},
			{"allowance", internal.RelevanceGauge},
			{"run", internal.RelevanceAutomation},
			{"stitch", internal.RelevanceRisk},
			{"spi", internal.RelevanceRisk},
			{"notch", internal.RelevanceAutomation},
			{"hem", internal.RelevanceFolder},
			{"fold", internal.RelevanceFolder},
			{"binding", internal.RelevanceFolder},
			{"piping", internal.RelevanceFolder},
			{"pleat", internal.RelevanceFolder},
			{"gather", internal.RelevanceFolder},
			{"smocking", internal.RelevanceAutomation},
			{"clean_finish", internal.RelevanceFolder},
			{"double_fold", internal.RelevanceFolder},
		},
		measurementNoise: []string{
			"buyer", "style", "order", "wash", "care", "label",
			"xs", "s-", "m-", "l-", "xl", "2xl", "3xl",
		},
	}
}

func toSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

// Measurements returns every numeric-plus-unit token in the line, in order.
func (r *Rules) Measurements(line string) []MeasureMatch {
	groups := r.measurement.FindAllStringSubmatch(line, -1)
	out := make([]MeasureMatch, 0, len(groups))
	for _, g := range groups {
		out = append(out, MeasureMatch{Full: g[0], Value: g[1], Unit: g[5]})
	}
	return out
}

// FirstMeasurement returns the first measurement token, if any.
func (r *Rules) FirstMeasurement(line string) (MeasureMatch, bool) {
	g := r.measurement.FindStringSubmatch(line)
	if g == nil {
		return MeasureMatch{}, false
	}
	return MeasureMatch{Full: g[0], Value: g[1], Unit: g[5]}, true
}

// Stitch returns the first stitch code in the line.
func (r *Rules) Stitch(line string) (string, bool) {
	m := r.stitch.FindString(line)
	return m, m != ""
}

// SPI returns the stitches-per-inch count if an `SPI <n>` token is present.
func (r *Rules) SPI(line string) (full, count string, ok bool) {
	g := r.spi.FindStringSubmatch(line)
	if g == nil {
		return "", "", false
	}
	return g[0], g[1], true
}

// Construction returns the first construction phrase in the line.
func (r *Rules) Construction(line string) (string, bool) {
	m := r.construction.FindString(line)
	return m, m != ""
}

// Automation returns the first automation keyword in the line.
func (r *Rules) Automation(line string) (string, bool) {
	m := r.automation.FindString(line)
	return m, m != ""
}

// ImpliesFolder reports whether the line mentions a folder-implying phrase.
// Its phrase set overlaps, but is not identical with, Construction.
func (r *Rules) ImpliesFolder(line string) bool {
	return r.folderImply.MatchString(line)
}

// SizeTokens returns every size-label-plus-value token in the line.
func (r *Rules) SizeTokens(line string) []SizeMatch {
	groups := r.sizeValue.FindAllStringSubmatch(line, -1)
	out := make([]SizeMatch, 0, len(groups))
	for _, g := range groups {
		out = append(out, SizeMatch{Full: g[0], Label: strings.ToUpper(strings.TrimSpace(g[1])), Value: g[2], Unit: strings.ToLower(strings.TrimSpace(g[3]))})
	}
	return out
}

// StripSizeTokens removes every size token from the line.
func (r *Rules) StripSizeTokens(line string) string {
	return r.sizeValue.ReplaceAllString(line, " ")
}

// IsIgnored reports whether the line is administrative boilerplate for the
// loose item engine.
func (r *Rules) IsIgnored(line string) bool {
	for _, re := range r.ignoreLine {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// IsTechnicalIgnored is the stricter table-mode boilerplate filter.
func (r *Rules) IsTechnicalIgnored(line string) bool {
	return r.technicalIgnore.MatchString(line)
}

// IsHeading reports whether the line can announce a component change in
// table mode: either an isolated heading keyword or an all-caps line.
func (r *Rules) IsHeading(line string) bool {
	return isAllUpper(line) || r.heading.MatchString(line)
}

// HeadingComponent resolves a heading line to its canonical component name.
func (r *Rules) HeadingComponent(line string) (string, bool) {
	lower := strings.ToLower(line)
	for _, m := range r.componentMap {
		if strings.Contains(lower, m.Keyword) {
			return m.Component, true
		}
	}
	return "", false
}

// RelevanceFor assigns a relevance tag to a resolved name. Unmatched names
// default to risk so that unclassified findings surface for manual review
// instead of being dropped.
func (r *Rules) RelevanceFor(name string) internal.Relevance {
	lower := strings.ToLower(name)
	for _, rule := range r.relevanceRules {
		if strings.Contains(lower, rule.Term) {
			return rule.Tag
		}
	}
	return internal.RelevanceRisk
}

// IsNoiseValue reports whether the value is a bare component word.
func (r *Rules) IsNoiseValue(value string) bool {
	_, ok := r.NoiseValues[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

// HasMeasurementNoise reports whether a measurement label still carries
// administrative or size-column fragments after measurement stripping.
func (r *Rules) HasMeasurementNoise(label string) bool {
	lower := strings.ToLower(label)
	for _, frag := range r.measurementNoise {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// isAllUpper reports whether the line contains at least one letter and no
// lowercase letters.
func isAllUpper(line string) bool {
	hasLetter := false
	for _, r := range line {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}
