package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/BlockPack/internal/engine"
	"github.com/piwi3910/BlockPack/internal/model"
)

// Report is the JSON form of a packing result with its derived metrics.
type Report struct {
	Mode        model.Mode         `json:"mode"`
	BinCount    int                `json:"bin_count"`
	PlacedCount int                `json:"placed_count"`
	Efficiency  float64            `json:"efficiency"`
	BoxWidth    int                `json:"box_width,omitempty"`
	BoxHeight   int                `json:"box_height,omitempty"`
	Bins        []BinReport        `json:"bins"`
	Unplaced    []model.Block      `json:"unplaced"`
	Offcuts     []model.Offcut     `json:"offcuts"`
	FreeArea    int                `json:"free_area"`
	Violations  []engine.Violation `json:"violations,omitempty"`
}

// BinReport is one bin of a Report.
type BinReport struct {
	model.BinResult
	UsedArea   int     `json:"used_area"`
	TotalArea  int     `json:"total_area"`
	Efficiency float64 `json:"efficiency"`
}

// NewReport derives the report for result, including any geometric
// violations Verify finds.
func NewReport(result model.PackResult) Report {
	r := Report{
		Mode:        result.Mode,
		BinCount:    result.BinCount(),
		PlacedCount: result.PlacedCount(),
		Efficiency:  result.TotalEfficiency(),
		Bins:        make([]BinReport, 0, len(result.Bins)),
		Unplaced:    result.Unplaced,
		Offcuts:     result.Offcuts,
		FreeArea:    model.TotalOffcutArea(result.Offcuts),
		Violations:  engine.Verify(result),
	}
	if r.Unplaced == nil {
		r.Unplaced = []model.Block{}
	}
	if r.Offcuts == nil {
		r.Offcuts = []model.Offcut{}
	}
	if result.Mode == model.ModeGrowing && len(result.Bins) == 1 {
		r.BoxWidth, r.BoxHeight = engine.BoxSize(result.Bins[0].Width, result.Bins[0].Height)
	}
	for _, bin := range result.Bins {
		r.Bins = append(r.Bins, BinReport{
			BinResult:  bin,
			UsedArea:   bin.UsedArea(),
			TotalArea:  bin.TotalArea(),
			Efficiency: bin.Efficiency(),
		})
	}
	return r
}

// WriteJSON writes the indented JSON report of result to w.
func WriteJSON(w io.Writer, result model.PackResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewReport(result)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// ExportJSON writes the JSON report of result to path.
func ExportJSON(path string, result model.PackResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
