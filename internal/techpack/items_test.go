package techpack

import (
	"testing"

	"packlens/internal"
)

func TestItemEngineMeasurement(t *testing.T) {
	engine := newItemEngine(DefaultRules())
	engine.ProcessLine("Collar stand height 2.5cm")
	got := engine.Result()

	if len(got.Collar) != 1 {
		t.Fatalf("collar items=%d", len(got.Collar))
	}
	item := got.Collar[0]
	if item.Category != internal.CategoryMeasurement {
		t.Fatalf("category %q", item.Category)
	}
	if item.Name != "collar_stand_height" {
		t.Fatalf("name %q", item.Name)
	}
	if item.Value != "2.5cm" {
		t.Fatalf("value %q", item.Value)
	}
	if item.Source != internal.SourceExplicit || item.Relevance != internal.RelevanceGauge {
		t.Fatalf("source %q relevance %q", item.Source, item.Relevance)
	}
}

func TestItemEngineStitchWithSPI(t *testing.T) {
	engine := newItemEngine(DefaultRules())
	engine.ProcessLine("COLLAR")
	engine.ProcessLine("SNLS stitch SPI 12")
	got := engine.Result()

	if len(got.Collar) != 1 {
		t.Fatalf("collar items=%d", len(got.Collar))
	}
	item := got.Collar[0]
	if item.Name != "collar_stitch_type" {
		t.Fatalf("name %q", item.Name)
	}
	if item.Value != "SNLS (SPI 12)" {
		t.Fatalf("value %q", item.Value)
	}
	if item.Relevance != internal.RelevanceRisk {
		t.Fatalf("relevance %q", item.Relevance)
	}
}

func TestItemEngineDedup(t *testing.T) {
	engine := newItemEngine(DefaultRules())
	engine.ProcessLine(`Hem allowance 1/2"`)
	engine.ProcessLine(`Hem allowance 1/2"`)
	got := engine.Result()

	if len(got.Assembly) != 3 {
		t.Fatalf("assembly items=%d, want measurement, seam spec and folder note once each", len(got.Assembly))
	}
	names := map[string]bool{}
	for _, item := range got.Assembly {
		names[item.Name] = true
	}
	for _, want := range []string{"assembly_hem_allowance", "assembly_seam_spec", "assembly_clean_finish"} {
		if !names[want] {
			t.Fatalf("missing %q in %v", want, names)
		}
	}
}

func TestItemEngineFolderInferenceDualNotes(t *testing.T) {
	engine := newItemEngine(DefaultRules())
	engine.ProcessLine("Sleeve placket double fold 5mm")
	got := engine.Result()

	var process, folderNote, doubleFold bool
	for _, item := range got.Sleeve {
		switch {
		case item.Category == internal.CategoryProcess:
			process = true
		case item.Name == "sleeve_folder_requirement":
			folderNote = true
			if item.Source != internal.SourceInferred {
				t.Fatalf("folder note source %q", item.Source)
			}
		case item.Name == "sleeve_double_fold":
			doubleFold = true
		}
	}
	if !process || !folderNote || !doubleFold {
		t.Fatalf("process=%v folderNote=%v doubleFold=%v items=%v", process, folderNote, doubleFold, got.Sleeve)
	}
}

func TestItemEngineNoiseLabelRejected(t *testing.T) {
	engine := newItemEngine(DefaultRules())
	engine.ProcessLine("Back 2.5cm")
	got := engine.Result()

	if len(got.Back) != 0 {
		t.Fatalf("back items=%v", got.Back)
	}
}

func TestItemEngineIgnoresAdminLines(t *testing.T) {
	engine := newItemEngine(DefaultRules())
	engine.ProcessLine("Buyer: H&M hem 2.5cm")
	got := engine.Result()

	total := 0
	for _, items := range [][]internal.Item{got.Collar, got.Sleeve, got.Cuff, got.Pocket, got.Front, got.Back, got.Assembly} {
		total += len(items)
	}
	if total != 0 {
		t.Fatalf("items=%d", total)
	}
}

func TestItemEngineCategoryAndRelevanceClosed(t *testing.T) {
	engine := newItemEngine(DefaultRules())
	lines := []string{
		"COLLAR",
		"Collar stand height 2.5cm",
		"SNLS stitch SPI 12",
		"Hem clean finish",
		"Auto notch at sleeve",
	}
	for _, line := range lines {
		engine.ProcessLine(line)
	}
	got := engine.Result()

	for _, items := range [][]internal.Item{got.Collar, got.Sleeve, got.Cuff, got.Pocket, got.Front, got.Back, got.Assembly} {
		for _, item := range items {
			if _, ok := allowedCategories[item.Category]; !ok {
				t.Fatalf("category %q", item.Category)
			}
			if _, ok := allowedRelevance[item.Relevance]; !ok {
				t.Fatalf("relevance %q", item.Relevance)
			}
			if item.Source != internal.SourceExplicit && item.Source != internal.SourceInferred {
				t.Fatalf("source %q", item.Source)
			}
		}
	}
}

func TestSectionTracker(t *testing.T) {
	tracker := newSectionTracker()
	if got := tracker.Observe("some preamble"); got != "assembly" {
		t.Fatalf("initial %q", got)
	}
	if got := tracker.Observe("COLLAR"); got != "collar" {
		t.Fatalf("got %q", got)
	}
	if got := tracker.Observe("plain stitching line"); got != "collar" {
		t.Fatalf("persisted %q", got)
	}
	if got := tracker.Observe("front and back panel join"); got != "back" {
		t.Fatalf("front suppressed when back present, got %q", got)
	}
	if got := tracker.Observe("front placket"); got != "front" {
		t.Fatalf("got %q", got)
	}
	if got := tracker.Observe("straight yoke seam"); got != "assembly" {
		t.Fatalf("yoke maps to assembly, got %q", got)
	}
}
