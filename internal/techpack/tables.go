package techpack

import (
	"regexp"
	"strings"

	"packlens/internal"
	"packlens/internal/util"
)

var reWhitespace = regexp.MustCompile(`\s+`)

type constructionKey struct {
	component  string
	operation  string
	stitchType string
	spi        string
}

// tableEngine is the strict pipeline: every surviving line lands in exactly
// one of Grading, Construction or Base Measurement, with that precedence.
type tableEngine struct {
	rules   *Rules
	tracker *componentTracker

	construction     map[string][]internal.ConstructionRow
	constructionSeen map[constructionKey]struct{}
	baseMeasurements map[string][]internal.BaseMeasurementRow
	grading          map[string][]*internal.GradingRow
	gradingByParam   map[string]map[string]*internal.GradingRow

	seen  map[string]struct{}
	order []string // components in first-seen order, for non-canonical extras
}

func newTableEngine(rules *Rules) *tableEngine {
	return &tableEngine{
		rules:            rules,
		tracker:          newComponentTracker(rules),
		construction:     map[string][]internal.ConstructionRow{},
		constructionSeen: map[constructionKey]struct{}{},
		baseMeasurements: map[string][]internal.BaseMeasurementRow{},
		grading:          map[string][]*internal.GradingRow{},
		gradingByParam:   map[string]map[string]*internal.GradingRow{},
		seen:             map[string]struct{}{},
	}
}

func (e *tableEngine) ensure(component string) {
	if _, ok := e.seen[component]; ok {
		return
	}
	e.seen[component] = struct{}{}
	e.order = append(e.order, component)
	e.gradingByParam[component] = map[string]*internal.GradingRow{}
}

func (e *tableEngine) ProcessLine(line string) {
	raw := strings.TrimSpace(line)
	if raw == "" || len(raw) > 250 {
		return
	}
	if e.rules.IsTechnicalIgnored(raw) {
		return
	}

	component, consumed := e.tracker.Observe(raw)
	e.ensure(component)
	if consumed {
		return
	}

	if sizes := e.rules.SizeTokens(raw); len(sizes) > 0 {
		e.addGrading(component, raw, sizes)
		return
	}
	if e.addConstruction(component, raw) {
		return
	}
	e.addBaseMeasurement(component, raw)
}

// addGrading writes every size token on the line into the columns of the
// (component, parameter) row, creating the row on first sight.
func (e *tableEngine) addGrading(component, raw string, sizes []SizeMatch) {
	param := collapseSpaces(e.rules.StripSizeTokens(raw))
	param = truncate(param, 80)
	if param == "" {
		param = "Size"
	}

	row, ok := e.gradingByParam[component][param]
	if !ok {
		row = &internal.GradingRow{Parameter: param}
		e.gradingByParam[component][param] = row
		e.grading[component] = append(e.grading[component], row)
	}

	for _, s := range sizes {
		cell := s.Value + s.Unit
		switch s.Label {
		case "XS":
			row.XS = cell
		case "S":
			row.S = cell
		case "M":
			row.M = cell
		case "L":
			row.L = cell
		case "XL":
			row.XL = cell
		case "2XL":
			row.XL2 = cell
		case "3XL":
			row.XL3 = cell
		}
	}
}

// addConstruction claims the line when it carries a stitch code or a
// construction phrase. Duplicate (operation, stitchType, spiGauge) tuples
// per component merge into one row.
func (e *tableEngine) addConstruction(component, raw string) bool {
	stitch, hasStitch := e.rules.Stitch(raw)
	spiFull, spiCount, hasSPI := e.rules.SPI(raw)
	phrase, hasPhrase := e.rules.Construction(raw)
	if !hasStitch && !hasPhrase {
		return false
	}

	operation := raw
	if hasStitch {
		operation = strings.ReplaceAll(operation, stitch, "")
	}
	if hasSPI {
		operation = strings.ReplaceAll(operation, spiFull, "")
	}
	if hasPhrase {
		operation = strings.ReplaceAll(operation, phrase, "")
	}
	notes := ""
	if m, ok := e.rules.FirstMeasurement(raw); ok {
		operation = strings.ReplaceAll(operation, m.Full, "")
		notes = strings.TrimSpace(m.Full)
	}
	operation = truncate(collapseSpaces(operation), 80)
	if operation == "" {
		operation = "Operation"
	}

	stitchType := stitch
	if stitchType == "" {
		stitchType = phrase
	}
	spi := ""
	if hasSPI {
		spi = spiCount
	}

	key := constructionKey{component: component, operation: operation, stitchType: stitchType, spi: spi}
	if _, dup := e.constructionSeen[key]; dup {
		return true
	}
	e.constructionSeen[key] = struct{}{}
	e.construction[component] = append(e.construction[component], internal.ConstructionRow{
		Operation:  operation,
		StitchType: stitchType,
		SPIGauge:   spi,
		Notes:      notes,
	})
	return true
}

// addBaseMeasurement takes the first usable measurement on the line. Labels
// that still carry administrative or size-column fragments after the match
// is stripped are rejected; such fragments only become recognizable once
// the measurement text is removed.
func (e *tableEngine) addBaseMeasurement(component, raw string) {
	for _, m := range e.rules.Measurements(raw) {
		measure, ok := util.NormalizeMeasure(m.Value, m.Unit)
		if !ok {
			continue
		}
		label := strings.TrimSpace(strings.ReplaceAll(raw, m.Full, ""))
		if label == "" || len([]rune(label)) > 80 {
			label = "Dimension"
		}
		if e.rules.HasMeasurementNoise(label) {
			continue
		}
		e.baseMeasurements[component] = append(e.baseMeasurements[component], internal.BaseMeasurementRow{
			Parameter:        truncate(label, 80),
			Value:            util.FormatMeasure(measure.Value),
			Unit:             measure.Unit,
			RelatedOperation: "",
		})
		return
	}
}

// Result assembles per-component bundles: canonical components first, then
// any extras in first-seen order, skipping components whose tables are all
// empty.
func (e *tableEngine) Result() internal.TechnicalTable {
	out := internal.TechnicalTable{Components: []internal.ComponentBundle{}}
	emitted := map[string]struct{}{}

	emit := func(component string) {
		if _, done := emitted[component]; done {
			return
		}
		emitted[component] = struct{}{}
		bundle := e.bundle(component)
		if len(bundle.ConstructionTable) == 0 && len(bundle.BaseMeasurementsTable) == 0 && len(bundle.GradingTable) == 0 {
			return
		}
		out.Components = append(out.Components, bundle)
	}

	for _, component := range ComponentOrder {
		if _, ok := e.seen[component]; ok {
			emit(component)
		}
	}
	for _, component := range e.order {
		emit(component)
	}
	return out
}

func (e *tableEngine) bundle(component string) internal.ComponentBundle {
	construction := e.construction[component]
	if construction == nil {
		construction = []internal.ConstructionRow{}
	}
	base := e.baseMeasurements[component]
	if base == nil {
		base = []internal.BaseMeasurementRow{}
	}
	grading := make([]internal.GradingRow, 0, len(e.grading[component]))
	for _, row := range e.grading[component] {
		grading = append(grading, *row)
	}
	return internal.ComponentBundle{
		Component:             component,
		ConstructionTable:     construction,
		BaseMeasurementsTable: base,
		GradingTable:          grading,
	}
}

func collapseSpaces(input string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(input, " "))
}

func truncate(input string, limit int) string {
	runes := []rune(input)
	if len(runes) <= limit {
		return input
	}
	return string(runes[:limit])
}
