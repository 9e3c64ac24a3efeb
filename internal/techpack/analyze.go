package techpack

import "packlens/internal"

// Analyzer runs both classification engines plus base information over one
// ordered line sequence. It holds only the read-only rule set; every call
// to Analyze owns fresh accumulators, so one Analyzer may serve concurrent
// documents.
type Analyzer struct {
	rules *Rules
}

func NewAnalyzer(rules *Rules) *Analyzer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Analyzer{rules: rules}
}

// Analyze consumes the document's lines in a single forward pass per
// engine and assembles the combined envelope. An empty line sequence
// yields the empty skeleton: all seven sections present and empty, and no
// components.
func (a *Analyzer) Analyze(lines []string) internal.Envelope {
	return internal.Envelope{
		SectionItems:    a.ExtractItems(lines),
		TechnicalTable:  a.ExtractTechnicalTable(lines),
		BaseInformation: ExtractBaseInfo(lines),
	}
}

// ExtractItems runs the loose item-mode pipeline only.
func (a *Analyzer) ExtractItems(lines []string) internal.SectionItems {
	engine := newItemEngine(a.rules)
	for _, line := range lines {
		engine.ProcessLine(line)
	}
	return engine.Result()
}

// ExtractTechnicalTable runs the strict table-mode pipeline only.
func (a *Analyzer) ExtractTechnicalTable(lines []string) internal.TechnicalTable {
	engine := newTableEngine(a.rules)
	for _, line := range lines {
		engine.ProcessLine(line)
	}
	return engine.Result()
}
