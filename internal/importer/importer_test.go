package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Label,Width,Height,Qty\nShelf,600,300,2\nDoor,400,800,1\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Label;Width;Height;Qty\nShelf;600;300;2\nDoor;400;800;1\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Label\tWidth\tHeight\tQty\nShelf\t600\t300\t2\nDoor\t400\t800\t1\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Label|Width|Height|Qty\nShelf|600|300|2\nDoor|400|800|1\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Label", "Width", "Height", "Quantity"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 {
		t.Errorf("expected Label at 0, got %d", mapping.Label)
	}
	if mapping.Width != 1 {
		t.Errorf("expected Width at 1, got %d", mapping.Width)
	}
	if mapping.Height != 2 {
		t.Errorf("expected Height at 2, got %d", mapping.Height)
	}
	if mapping.Quantity != 3 {
		t.Errorf("expected Quantity at 3, got %d", mapping.Quantity)
	}
}

func TestDetectColumns_CaseInsensitive(t *testing.T) {
	row := []string{"NAME", "WIDTH", "HEIGHT", "QTY"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 {
		t.Errorf("expected Label at 0, got %d", mapping.Label)
	}
	if mapping.Width != 1 {
		t.Errorf("expected Width at 1, got %d", mapping.Width)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	row := []string{"Block Name", "W", "H", "Copies"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 {
		t.Errorf("expected Label at 0, got %d", mapping.Label)
	}
	if mapping.Width != 1 {
		t.Errorf("expected Width at 1, got %d", mapping.Width)
	}
	if mapping.Height != 2 {
		t.Errorf("expected Height at 2, got %d", mapping.Height)
	}
	if mapping.Quantity != 3 {
		t.Errorf("expected Quantity at 3, got %d", mapping.Quantity)
	}
}

func TestDetectColumns_ReorderedColumns(t *testing.T) {
	row := []string{"Qty", "Height", "Width", "Label"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Quantity != 0 {
		t.Errorf("expected Quantity at 0, got %d", mapping.Quantity)
	}
	if mapping.Height != 1 {
		t.Errorf("expected Height at 1, got %d", mapping.Height)
	}
	if mapping.Width != 2 {
		t.Errorf("expected Width at 2, got %d", mapping.Width)
	}
	if mapping.Label != 3 {
		t.Errorf("expected Label at 3, got %d", mapping.Label)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"Shelf", "600", "300", "2"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("expected no header detection for numeric data")
	}
	// Should fall back to positional
	if mapping.Label != 0 || mapping.Width != 1 || mapping.Height != 2 || mapping.Quantity != 3 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,600,300,2\nDoor,400,800,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(result.Specs))
	}

	if result.Specs[0].Label != "Shelf" {
		t.Errorf("expected label 'Shelf', got '%s'", result.Specs[0].Label)
	}
	if result.Specs[0].Width != 600 {
		t.Errorf("expected width 600, got %d", result.Specs[0].Width)
	}
	if result.Specs[0].Height != 300 {
		t.Errorf("expected height 300, got %d", result.Specs[0].Height)
	}
	if result.Specs[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", result.Specs[0].Quantity)
	}
	if result.Specs[1].Label != "Door" {
		t.Errorf("expected label 'Door', got '%s'", result.Specs[1].Label)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Shelf,600,300,2\nDoor,400,800,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Specs) != 2 {
		t.Fatalf("expected 2 specs, got %d (errors: %v)", len(result.Specs), result.Errors)
	}
	if result.Specs[0].Label != "Shelf" {
		t.Errorf("expected label 'Shelf', got '%s'", result.Specs[0].Label)
	}
	if result.Specs[0].Width != 600 {
		t.Errorf("expected width 600, got %d", result.Specs[0].Width)
	}
}

func TestImportCSVFromReader_SemicolonDelimiter(t *testing.T) {
	data := "Label;Width;Height;Quantity\nShelf;600;300;2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ';')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Specs) != 1 {
		t.Fatalf("expected 1 spec, got %d", len(result.Specs))
	}
	if result.Specs[0].Label != "Shelf" {
		t.Errorf("expected label 'Shelf', got '%s'", result.Specs[0].Label)
	}
}

func TestImportCSVFromReader_TabDelimiter(t *testing.T) {
	data := "Label\tWidth\tHeight\tQuantity\nShelf\t600\t300\t2\n"
	result := ImportCSVFromReader(strings.NewReader(data), '\t')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Specs) != 1 {
		t.Fatalf("expected 1 spec, got %d", len(result.Specs))
	}
}

func TestImportCSVFromReader_ReorderedColumns(t *testing.T) {
	data := "Qty,Height,Width,Name\n2,300,600,Shelf\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Specs) != 1 {
		t.Fatalf("expected 1 spec, got %d", len(result.Specs))
	}
	if result.Specs[0].Label != "Shelf" {
		t.Errorf("expected label 'Shelf', got '%s'", result.Specs[0].Label)
	}
	if result.Specs[0].Width != 600 {
		t.Errorf("expected width 600, got %d", result.Specs[0].Width)
	}
	if result.Specs[0].Height != 300 {
		t.Errorf("expected height 300, got %d", result.Specs[0].Height)
	}
	if result.Specs[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", result.Specs[0].Quantity)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	data := ""
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

func TestImportCSVFromReader_InvalidWidth(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,abc,300,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for invalid width")
	}
	if len(result.Specs) != 0 {
		t.Errorf("expected 0 specs, got %d", len(result.Specs))
	}
}

func TestImportCSVFromReader_InvalidQuantity(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,600,300,abc\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for invalid quantity")
	}
}

func TestImportCSVFromReader_NegativeValues(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,-600,300,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for negative width")
	}
}

func TestImportCSVFromReader_ZeroQuantity(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,600,300,0\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for zero quantity")
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Label,Width,Height,Quantity\nGood,600,300,2\nBad,abc,300,2\nAlsoGood,400,200,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Specs) != 2 {
		t.Errorf("expected 2 valid specs, got %d", len(result.Specs))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(result.Errors))
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,600,300,2\n\n\nDoor,400,800,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Specs) != 2 {
		t.Errorf("expected 2 specs (skipping empty rows), got %d (errors: %v)", len(result.Specs), result.Errors)
	}
}

func TestImportCSVFromReader_EmptyLabel(t *testing.T) {
	data := "Label,Width,Height,Quantity\n,600,300,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Specs) != 1 {
		t.Fatalf("expected 1 spec, got %d", len(result.Specs))
	}
	if result.Specs[0].Label != "Block 1" {
		t.Errorf("expected auto-generated label 'Block 1', got '%s'", result.Specs[0].Label)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	data := "Label,Width,Qty\nShelf,600,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for missing Height column")
	}
	foundMissing := false
	for _, e := range result.Errors {
		if strings.Contains(e, "Required columns not found") {
			foundMissing = true
		}
	}
	if !foundMissing {
		t.Errorf("expected 'Required columns not found' error, got: %v", result.Errors)
	}
}

// ─── CSV File Import Tests ──────────────────────────────────

func TestImportCSV_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "specs.csv")
	content := "Label,Width,Height,Quantity\nShelf,600,300,2\nDoor,400,800,1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(result.Specs))
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "specs.csv")
	content := "Label;Width;Height;Quantity\nShelf;600;300;2\nDoor;400;800;1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Specs) != 2 {
		t.Errorf("expected 2 specs, got %d (errors: %v)", len(result.Specs), result.Errors)
	}

	// Should have a warning about semicolon delimiter
	hasSemicolonWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			hasSemicolonWarning = true
		}
	}
	if !hasSemicolonWarning {
		t.Error("expected warning about semicolon delimiter detection")
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/file.csv")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "specs.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Width", "Height", "Quantity"},
		{"Shelf", 600, 300, 2},
		{"Door", 400, 800, 1},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(result.Specs))
	}

	if result.Specs[0].Label != "Shelf" {
		t.Errorf("expected 'Shelf', got '%s'", result.Specs[0].Label)
	}
	if result.Specs[0].Width != 600 {
		t.Errorf("expected width 600, got %d", result.Specs[0].Width)
	}
	if result.Specs[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", result.Specs[0].Quantity)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Shelf", 600, 300, 2},
		{"Door", 400, 800, 1},
	})

	result := ImportExcel(path)

	if len(result.Specs) != 2 {
		t.Fatalf("expected 2 specs, got %d (errors: %v)", len(result.Specs), result.Errors)
	}
}

func TestImportExcel_ReorderedColumns(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Qty", "Name", "Height", "Width"},
		{2, "Shelf", 300, 600},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Specs) != 1 {
		t.Fatalf("expected 1 spec, got %d", len(result.Specs))
	}
	if result.Specs[0].Label != "Shelf" {
		t.Errorf("expected 'Shelf', got '%s'", result.Specs[0].Label)
	}
	if result.Specs[0].Width != 600 {
		t.Errorf("expected width 600, got %d", result.Specs[0].Width)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/file.xlsx")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Width", "Height", "Quantity"},
		{"Shelf", "abc", 300, 2},
	})

	result := ImportExcel(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for invalid width")
	}
}

// ─── Edge Cases ────────────────────────────────────────────

func TestImportCSVFromReader_OnlyHeaders(t *testing.T) {
	data := "Label,Width,Height,Quantity\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Specs) != 0 {
		t.Errorf("expected 0 specs for header-only file, got %d", len(result.Specs))
	}
	// Should not have errors (just no data)
}

func TestImportCSVFromReader_WhitespaceInValues(t *testing.T) {
	data := "Label , Width , Height , Quantity\n Shelf , 600 , 300 , 2 \n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Specs) != 1 {
		t.Fatalf("expected 1 spec, got %d (errors: %v)", len(result.Specs), result.Errors)
	}
	if result.Specs[0].Width != 600 {
		t.Errorf("expected width 600, got %d", result.Specs[0].Width)
	}
}

func TestImportCSVFromReader_DecimalValues(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,600.5,300,2\nDoor,400.0,800,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error for fractional width, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Invalid width") {
		t.Errorf("unexpected error %q", result.Errors[0])
	}
	if len(result.Specs) != 1 {
		t.Fatalf("expected 1 spec, got %d", len(result.Specs))
	}
	if result.Specs[0].Width != 400 {
		t.Errorf("expected whole-number float 400.0 to parse as 400, got %d", result.Specs[0].Width)
	}
}

func TestImportCSVFromReader_QuantityOptional(t *testing.T) {
	data := "Label,Width,Height\nShelf,60,30\nDoor,40,80\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(result.Specs))
	}
	for _, spec := range result.Specs {
		if spec.Quantity != 1 {
			t.Errorf("%s: expected quantity 1, got %d", spec.Label, spec.Quantity)
		}
	}
}

func TestImportResult_BlocksExpandsQuantity(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,60,30,3\nDoor,40,80,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	blocks := result.Blocks()
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(blocks))
	}
	if result.Count() != 4 {
		t.Errorf("expected Count 4, got %d", result.Count())
	}
	if blocks[2].Label != "Shelf" || blocks[3].Label != "Door" {
		t.Errorf("unexpected block order: %v", blocks)
	}
}
