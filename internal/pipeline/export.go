package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"packlens/internal"
	"packlens/internal/techpack"
)

// ExportEnvelopeToXLSX writes one analysis as a four-sheet workbook:
// Items, Construction, Base Measurements, Grading.
func ExportEnvelopeToXLSX(env internal.Envelope, outputPath string) error {
	f := excelize.NewFile()

	itemsSheet := f.GetSheetName(0)
	if err := f.SetSheetName(itemsSheet, "Items"); err != nil {
		return err
	}
	writeRow(f, "Items", 1, []any{"section", "category", "name", "value", "source", "relevance"})
	row := 2
	for _, section := range techpack.Sections {
		for _, item := range sectionItems(env.SectionItems, section) {
			writeRow(f, "Items", row, []any{section, string(item.Category), item.Name, item.Value, string(item.Source), string(item.Relevance)})
			row++
		}
	}

	if _, err := f.NewSheet("Construction"); err != nil {
		return err
	}
	writeRow(f, "Construction", 1, []any{"component", "operation", "stitch_type", "spi_gauge", "notes"})
	row = 2
	for _, comp := range env.TechnicalTable.Components {
		for _, c := range comp.ConstructionTable {
			writeRow(f, "Construction", row, []any{comp.Component, c.Operation, c.StitchType, c.SPIGauge, c.Notes})
			row++
		}
	}

	if _, err := f.NewSheet("Base Measurements"); err != nil {
		return err
	}
	writeRow(f, "Base Measurements", 1, []any{"component", "parameter", "value", "unit", "related_operation"})
	row = 2
	for _, comp := range env.TechnicalTable.Components {
		for _, b := range comp.BaseMeasurementsTable {
			writeRow(f, "Base Measurements", row, []any{comp.Component, b.Parameter, b.Value, b.Unit, b.RelatedOperation})
			row++
		}
	}

	if _, err := f.NewSheet("Grading"); err != nil {
		return err
	}
	writeRow(f, "Grading", 1, []any{"component", "parameter", "XS", "S", "M", "L", "XL", "2XL", "3XL"})
	row = 2
	for _, comp := range env.TechnicalTable.Components {
		for _, g := range comp.GradingTable {
			writeRow(f, "Grading", row, []any{comp.Component, g.Parameter, g.XS, g.S, g.M, g.L, g.XL, g.XL2, g.XL3})
			row++
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func sectionItems(s internal.SectionItems, section string) []internal.Item {
	switch section {
	case "collar":
		return s.Collar
	case "sleeve":
		return s.Sleeve
	case "cuff":
		return s.Cuff
	case "pocket":
		return s.Pocket
	case "front":
		return s.Front
	case "back":
		return s.Back
	case "assembly":
		return s.Assembly
	}
	return nil
}
