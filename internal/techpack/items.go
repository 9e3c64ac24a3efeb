package techpack

import (
	"strings"

	"packlens/internal"
)

var allowedCategories = map[internal.ItemCategory]struct{}{
	internal.CategoryMeasurement:      {},
	internal.CategoryStitch:           {},
	internal.CategoryProcess:          {},
	internal.CategoryAutomation:       {},
	internal.CategoryConstructionNote: {},
}

var allowedRelevance = map[internal.Relevance]struct{}{
	internal.RelevanceGauge:      {},
	internal.RelevanceFolder:     {},
	internal.RelevanceRisk:       {},
	internal.RelevanceAutomation: {},
}

type itemKey struct {
	section  string
	category internal.ItemCategory
	name     string
	value    string
}

// itemEngine is the loose, inference-friendly pipeline. A single line may
// contribute several items; per-section uniqueness is enforced on the
// (category, name, lowercased value) triple.
type itemEngine struct {
	rules   *Rules
	tracker *sectionTracker
	items   map[string][]internal.Item
	seen    map[itemKey]struct{}
}

func newItemEngine(rules *Rules) *itemEngine {
	items := make(map[string][]internal.Item, len(Sections))
	for _, s := range Sections {
		items[s] = []internal.Item{}
	}
	return &itemEngine{
		rules:   rules,
		tracker: newSectionTracker(),
		items:   items,
		seen:    map[itemKey]struct{}{},
	}
}

func (e *itemEngine) ProcessLine(line string) {
	line = strings.TrimSpace(line)
	if line == "" || e.rules.IsIgnored(line) {
		return
	}

	section := e.tracker.Observe(line)
	lower := strings.ToLower(line)

	for _, m := range e.rules.Measurements(line) {
		label := strings.TrimSpace(strings.Replace(line, m.Full, "", 1))
		if !e.isRelevantMeasurementLabel(label) {
			continue
		}
		if label == "" {
			label = "dimension"
		}
		e.add(section, internal.CategoryMeasurement, label, m.Value+m.Unit, internal.SourceExplicit, internal.RelevanceGauge)
	}

	if code, ok := e.rules.Stitch(line); ok {
		value := code
		if _, count, ok := e.rules.SPI(line); ok {
			value = code + " (SPI " + count + ")"
		}
		e.add(section, internal.CategoryStitch, "stitch_type", value, internal.SourceExplicit, internal.RelevanceRisk)
	}

	if term, ok := e.rules.Construction(line); ok {
		name := strings.Trim(strings.TrimPrefix(ResolveName(e.rules, section, term), section+"_"), "_")
		if name == "" {
			name = "construction_method"
		}
		e.add(section, internal.CategoryProcess, name, term, internal.SourceExplicit, internal.RelevanceFolder)
		e.add(section, internal.CategoryConstructionNote,
			section+"_folder_requirement",
			"Likely requires folder for "+term,
			internal.SourceInferred, internal.RelevanceFolder)
	}

	if kw, ok := e.rules.Automation(line); ok {
		e.add(section, internal.CategoryAutomation, "automation_type", kw, internal.SourceExplicit, internal.RelevanceAutomation)
	}

	if (strings.Contains(lower, "margin") || strings.Contains(lower, "allowance")) && !strings.Contains(line, ":") {
		// Never emit the raw line: use the numeric value or a short descriptor.
		value := "Margin/allowance specified"
		if m, ok := e.rules.FirstMeasurement(line); ok {
			value = m.Value + m.Unit
		}
		e.add(section, internal.CategoryConstructionNote, section+"_seam_spec", value, internal.SourceInferred, internal.RelevanceGauge)
	}

	e.inferFolderRequirement(section, line)
}

// inferFolderRequirement re-scans the line against the wider
// folder-implying phrase set. It fires independently of the construction
// phrase branch above; both notes survive their own dedup keys.
func (e *itemEngine) inferFolderRequirement(section, line string) {
	if !e.rules.ImpliesFolder(line) {
		return
	}
	term := "clean finish"
	if t, ok := e.rules.Construction(line); ok {
		term = t
	}
	namePart := strings.NewReplacer(" ", "_", "-", "_").Replace(term)
	name := namePart
	if !strings.HasPrefix(namePart, section) {
		name = section + "_" + namePart
	}
	e.add(section, internal.CategoryConstructionNote, name,
		"Likely requires folder for "+term,
		internal.SourceInferred, internal.RelevanceFolder)
}

// isRelevantMeasurementLabel suppresses layout artifacts (page
// coordinates, table borders) that match the numeric-plus-unit pattern.
func (e *itemEngine) isRelevantMeasurementLabel(label string) bool {
	if label == "" || len([]rune(label)) > 120 {
		return false
	}
	lower := strings.ToLower(label)
	for _, kw := range e.rules.RelevantMeasurement {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	if len([]rune(label)) < 25 {
		for noise := range e.rules.NoiseValues {
			if strings.Contains(lower, noise) {
				return false
			}
		}
		return true
	}
	return false
}

func (e *itemEngine) add(section string, category internal.ItemCategory, name, value string, source internal.ItemSource, relevance internal.Relevance) {
	if _, ok := e.items[section]; !ok {
		return
	}
	value = strings.TrimSpace(value)
	if name == "" || value == "" {
		return
	}
	if e.rules.IsNoiseValue(value) {
		return
	}
	if _, ok := allowedCategories[category]; !ok {
		return
	}

	resolved := ResolveName(e.rules, section, name)
	if relevance == "" {
		relevance = e.rules.RelevanceFor(resolved)
	}
	if _, ok := allowedRelevance[relevance]; !ok {
		relevance = internal.RelevanceRisk
	}
	if source != internal.SourceExplicit && source != internal.SourceInferred {
		source = internal.SourceExplicit
	}

	key := itemKey{section: section, category: category, name: resolved, value: strings.ToLower(value)}
	if _, dup := e.seen[key]; dup {
		return
	}
	e.seen[key] = struct{}{}

	e.items[section] = append(e.items[section], internal.Item{
		Category:  category,
		Name:      resolved,
		Value:     value,
		Source:    source,
		Relevance: relevance,
	})
}

// Result shapes the accumulated items into the fixed seven-section output.
func (e *itemEngine) Result() internal.SectionItems {
	return internal.SectionItems{
		Collar:   e.items["collar"],
		Sleeve:   e.items["sleeve"],
		Cuff:     e.items["cuff"],
		Pocket:   e.items["pocket"],
		Front:    e.items["front"],
		Back:     e.items["back"],
		Assembly: e.items["assembly"],
	}
}
