package sink

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/kundli/pkg/placement"
)

// Sheet names of the XLSX report.
const (
	SheetHouses  = "Houses"
	SheetPlanets = "Planets"
)

var (
	houseHeader  = []any{"House", "Sign", "Name", "Sanskrit", "Glyph", "Planets"}
	planetHeader = []any{"Planet", "Code", "House", "Sign", "Degree", "Dignity", "Retrograde", "X", "Y"}
)

// RenderXLSX writes a workbook with one row per house and one row per
// placed planet.
func RenderXLSX(m *placement.Model) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetHouses); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetPlanets); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := writeRows(f, SheetHouses, bold, houseHeader, houseRows(m)); err != nil {
		return nil, err
	}
	if err := writeRows(f, SheetPlanets, bold, planetHeader, planetRows(m)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func houseRows(m *placement.Model) [][]any {
	glyphs := make(map[int]string, len(m.SignGlyphs))
	for _, g := range m.SignGlyphs {
		glyphs[g.House] = g.Label
	}
	rows := make([][]any, 0, len(m.SignNumbers))
	for _, n := range m.SignNumbers {
		var labels []string
		for _, p := range m.PlanetsInHouse(n.House) {
			labels = append(labels, p.Label)
		}
		rows = append(rows, []any{
			n.House, int(n.Sign), n.Sign.Name(), n.Sign.Sanskrit(), glyphs[n.House],
			strings.Join(labels, ", "),
		})
	}
	return rows
}

func planetRows(m *placement.Model) [][]any {
	rows := make([][]any, 0, len(m.Planets))
	for _, p := range m.Planets {
		dignity := ""
		switch p.Marker {
		case "↑":
			dignity = "exalted"
		case "↓":
			dignity = "debilitated"
		}
		rows = append(rows, []any{
			p.TargetID, p.Code, p.House, p.Sign.Name(), p.Degree, dignity, p.Retrograde, p.X, p.Y,
		})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, headerStyle int, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	return f.SetColWidth(sheet, "A", lastCol, 14)
}
