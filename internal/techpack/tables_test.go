package techpack

import (
	"testing"

	"packlens/internal"
)

func analyzeTable(t *testing.T, lines []string) internal.TechnicalTable {
	t.Helper()
	return NewAnalyzer(nil).ExtractTechnicalTable(lines)
}

func findComponent(t *testing.T, table internal.TechnicalTable, name string) internal.ComponentBundle {
	t.Helper()
	for _, bundle := range table.Components {
		if bundle.Component == name {
			return bundle
		}
	}
	t.Fatalf("component %q not in %v", name, table.Components)
	return internal.ComponentBundle{}
}

func TestTableEngineEndToEnd(t *testing.T) {
	table := analyzeTable(t, []string{
		"COLLAR",
		"Collar stand height 2.5cm",
		"SNLS stitch SPI 12",
	})

	if len(table.Components) != 1 {
		t.Fatalf("components=%d", len(table.Components))
	}
	collar := findComponent(t, table, "Collar")

	if len(collar.BaseMeasurementsTable) != 1 {
		t.Fatalf("base rows=%d", len(collar.BaseMeasurementsTable))
	}
	base := collar.BaseMeasurementsTable[0]
	if base.Parameter != "Collar stand height" || base.Value != "2.5" || base.Unit != "cm" {
		t.Fatalf("base row %+v", base)
	}

	if len(collar.ConstructionTable) != 1 {
		t.Fatalf("construction rows=%d", len(collar.ConstructionTable))
	}
	row := collar.ConstructionTable[0]
	if row.StitchType != "SNLS" || row.SPIGauge != "12" {
		t.Fatalf("construction row %+v", row)
	}
	if len(collar.GradingTable) != 0 {
		t.Fatalf("grading rows=%d", len(collar.GradingTable))
	}
}

func TestTableEngineGradingRowMerge(t *testing.T) {
	table := analyzeTable(t, []string{
		"Hem XS-5cm S-7cm",
		"Hem M-8cm",
	})

	assembly := findComponent(t, table, "Assembly")
	if len(assembly.GradingTable) != 1 {
		t.Fatalf("grading rows=%d", len(assembly.GradingTable))
	}
	row := assembly.GradingTable[0]
	if row.Parameter != "Hem" {
		t.Fatalf("parameter %q", row.Parameter)
	}
	if row.XS != "5cm" || row.S != "7cm" || row.M != "8cm" {
		t.Fatalf("cells %+v", row)
	}
	if row.L != "" || row.XL != "" {
		t.Fatalf("unexpected cells %+v", row)
	}
}

func TestTableEngineGradingBeatsConstruction(t *testing.T) {
	table := analyzeTable(t, []string{"Hem fold XS-5cm S-7cm"})

	assembly := findComponent(t, table, "Assembly")
	if len(assembly.GradingTable) != 1 {
		t.Fatalf("grading rows=%d", len(assembly.GradingTable))
	}
	if len(assembly.ConstructionTable) != 0 {
		t.Fatalf("construction rows=%v", assembly.ConstructionTable)
	}
}

func TestTableEngineConstructionMerge(t *testing.T) {
	table := analyzeTable(t, []string{
		"Attach collar SNLS SPI 12",
		"Attach collar SNLS SPI 12",
	})

	assembly := findComponent(t, table, "Assembly")
	if len(assembly.ConstructionTable) != 1 {
		t.Fatalf("construction rows=%d", len(assembly.ConstructionTable))
	}
	row := assembly.ConstructionTable[0]
	if row.Operation != "Attach collar" || row.StitchType != "SNLS" || row.SPIGauge != "12" {
		t.Fatalf("row %+v", row)
	}
}

func TestTableEngineMeasurementNoiseRejected(t *testing.T) {
	table := analyzeTable(t, []string{
		"Hem depth 4cm",
		"Style 2cm",
	})

	assembly := findComponent(t, table, "Assembly")
	if len(assembly.BaseMeasurementsTable) != 1 {
		t.Fatalf("base rows=%v", assembly.BaseMeasurementsTable)
	}
	row := assembly.BaseMeasurementsTable[0]
	if row.Parameter != "Hem depth" || row.Value != "4" || row.Unit != "cm" {
		t.Fatalf("row %+v", row)
	}
}

func TestTableEngineHeadingsMoveComponent(t *testing.T) {
	table := analyzeTable(t, []string{
		"CUFF",
		"Cuff width 6cm",
		"mention of the collar in passing 2cm",
		"POCKET",
		"Pocket depth 12cm",
	})

	cuff := findComponent(t, table, "Cuff")
	if len(cuff.BaseMeasurementsTable) != 2 {
		t.Fatalf("cuff base rows=%d", len(cuff.BaseMeasurementsTable))
	}
	pocket := findComponent(t, table, "Pocket")
	if len(pocket.BaseMeasurementsTable) != 1 {
		t.Fatalf("pocket base rows=%d", len(pocket.BaseMeasurementsTable))
	}
	for _, bundle := range table.Components {
		if bundle.Component == "Collar" {
			t.Fatalf("passing mention created a collar component")
		}
	}
}

func TestTableEngineEmptyComponentsOmitted(t *testing.T) {
	table := analyzeTable(t, []string{
		"COLLAR",
		"SLEEVE",
		"Sleeve opening 15cm",
	})

	if len(table.Components) != 1 {
		t.Fatalf("components=%v", table.Components)
	}
	if table.Components[0].Component != "Sleeve" {
		t.Fatalf("component %q", table.Components[0].Component)
	}
}

func TestAnalyzeEmptyInputSkeleton(t *testing.T) {
	env := NewAnalyzer(nil).Analyze(nil)

	sections := [][]internal.Item{
		env.Collar, env.Sleeve, env.Cuff, env.Pocket, env.Front, env.Back, env.Assembly,
	}
	for i, items := range sections {
		if items == nil {
			t.Fatalf("section %d is nil", i)
		}
		if len(items) != 0 {
			t.Fatalf("section %d has %d items", i, len(items))
		}
	}
	if env.TechnicalTable.Components == nil || len(env.TechnicalTable.Components) != 0 {
		t.Fatalf("components %v", env.TechnicalTable.Components)
	}
	if env.BaseInformation != (internal.BaseInformation{}) {
		t.Fatalf("base information %+v", env.BaseInformation)
	}
}
