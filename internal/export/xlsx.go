package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/BlockPack/internal/model"
)

// Sheet names of the XLSX report.
const (
	SheetPlacements = "Placements"
	SheetBins       = "Bins"
	SheetUnplaced   = "Unplaced"
	SheetFree       = "Free Space"
)

var (
	placementHeader = []interface{}{"Bin", "Block ID", "Label", "Width", "Height", "X", "Y", "Leaf Width", "Leaf Height"}
	binHeader       = []interface{}{"Bin", "Width", "Height", "Blocks", "Used Area", "Total Area", "Efficiency %"}
	unplacedHeader  = []interface{}{"Block ID", "Label", "Width", "Height"}
	freeHeader      = []interface{}{"Bin", "X", "Y", "Width", "Height", "Area"}
)

// ExportXLSX writes a spreadsheet report of a packing result with one sheet
// each for placements, bins, unplaced blocks and reported free space.
func ExportXLSX(path string, result model.PackResult) error {
	f, err := BuildWorkbook(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// BuildWorkbook renders the report into a new in-memory workbook.
func BuildWorkbook(result model.PackResult) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetPlacements); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetBins, SheetUnplaced, SheetFree} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create style: %w", err)
	}

	var placements, bins, unplaced, free [][]interface{}
	for _, bin := range result.Bins {
		bins = append(bins, []interface{}{
			bin.Index + 1, bin.Width, bin.Height, len(bin.Placements),
			bin.UsedArea(), bin.TotalArea(), math.Round(bin.Efficiency()*100) / 100,
		})
		for _, p := range bin.Placements {
			placements = append(placements, []interface{}{
				bin.Index + 1, p.Block.ID, p.Block.Label, p.Block.Width, p.Block.Height,
				p.Leaf.X, p.Leaf.Y, p.Leaf.Width, p.Leaf.Height,
			})
		}
	}
	for _, b := range result.Unplaced {
		unplaced = append(unplaced, []interface{}{b.ID, b.Label, b.Width, b.Height})
	}
	for _, o := range result.Offcuts {
		free = append(free, []interface{}{o.Bin + 1, o.X, o.Y, o.Width, o.Height, o.Area()})
	}

	sheets := []struct {
		name   string
		header []interface{}
		rows   [][]interface{}
	}{
		{SheetPlacements, placementHeader, placements},
		{SheetBins, binHeader, bins},
		{SheetUnplaced, unplacedHeader, unplaced},
		{SheetFree, freeHeader, free},
	}
	for _, sh := range sheets {
		if err := writeSheet(f, sh.name, sh.header, sh.rows, bold); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
