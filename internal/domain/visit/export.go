package visit

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Visits"

var exportHeader = []string{
	"Visit ID",
	"Patient",
	"Patient Type",
	"Age",
	"Sex",
	"Species",
	"Doctor",
	"Visit Type",
	"Started",
	"Symptoms",
	"Vitals",
	"Notes",
	"State",
}

var exportWidths = []float64{38, 24, 12, 6, 8, 12, 24, 12, 22, 40, 40, 40, 10}

func exportRow(v Visit) []any {
	return []any{
		v.ID,
		v.Patient.Name(),
		v.Patient.Type,
		v.Patient.Age,
		v.Patient.Sex,
		v.Patient.Species,
		v.Doctor.Person.FullName,
		v.VisitType,
		v.StartedAt,
		v.Symptoms,
		v.Vitals.String(),
		v.Notes,
		v.WorkflowState,
	}
}

// ExportXLSX writes visits to a single-sheet workbook with a frozen, styled
// header row. An empty list yields just the header.
func ExportXLSX(visits []Visit) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
	if err := f.SetCellStyle(exportSheet, "A1", last, style); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	for i, w := range exportWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(exportSheet, col, col, w); err != nil {
			return nil, fmt.Errorf("set width of %s: %w", col, err)
		}
	}

	for i, v := range visits {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := exportRow(v)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write visit %s: %w", v.ID, err)
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
