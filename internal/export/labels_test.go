package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BlockPack/internal/model"
)

func buildLabelsTestResult() model.PackResult {
	return model.PackResult{
		Mode: model.ModeMultiBin,
		Bins: []model.BinResult{
			{
				Index: 0, Width: 100, Height: 100,
				Placements: []model.Placement{
					{
						Block: model.Block{ID: "b1", Label: "Side Panel", Width: 60, Height: 40},
						Leaf:  model.Box{X: 0, Y: 0, Width: 100, Height: 40},
					},
					{
						Block: model.Block{ID: "b2", Label: "Top", Width: 50, Height: 30, Bin: 0},
						Leaf:  model.Box{X: 60, Y: 0, Width: 40, Height: 40},
					},
				},
			},
			{
				Index: 1, Width: 100, Height: 100,
				Placements: []model.Placement{
					{
						Block: model.Block{ID: "b3", Label: "Back Panel", Width: 80, Height: 50, Bin: 1},
						Bin:   1,
						Leaf:  model.Box{X: 0, Y: 0, Width: 100, Height: 100},
					},
				},
			},
		},
	}
}

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildLabelsTestResult()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestExportLabels_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty_labels.pdf")

	if err := ExportLabels(path, model.PackResult{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestExportLabels_NoPlacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no_placements.pdf")

	result := model.PackResult{Bins: []model.BinResult{{Width: 10, Height: 10}}}
	if err := ExportLabels(path, result); err == nil {
		t.Fatal("expected error for result with no placements, got nil")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(buildLabelsTestResult())

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}
	if labels[0].BlockLabel != "Side Panel" {
		t.Errorf("expected first label to be 'Side Panel', got %q", labels[0].BlockLabel)
	}
	if labels[0].Width != 60 || labels[0].Height != 40 {
		t.Errorf("wrong dimensions: got %dx%d, want 60x40", labels[0].Width, labels[0].Height)
	}
	if labels[0].BinIndex != 1 {
		t.Errorf("expected bin index 1, got %d", labels[0].BinIndex)
	}
	if labels[1].X != 60 {
		t.Errorf("expected second label at x=60, got %d", labels[1].X)
	}
	if labels[2].BinIndex != 2 {
		t.Errorf("expected bin index 2 for third label, got %d", labels[2].BinIndex)
	}
	if labels[2].BlockID != "b3" {
		t.Errorf("expected block ID b3, got %q", labels[2].BlockID)
	}
}

func TestLabelInfo_JSONFields(t *testing.T) {
	data, err := json.Marshal(LabelInfo{BlockID: "abc", BlockLabel: "Door", Width: 3, Height: 4, BinIndex: 2, X: 5, Y: 6})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	want := `{"id":"abc","label":"Door","width":3,"height":4,"bin":2,"x":5,"y":6}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestExportLabels_MultiplePages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many_labels.pdf")

	// 35 placements spill onto a second label page
	placements := make([]model.Placement, 35)
	for i := range placements {
		placements[i] = model.Placement{
			Block: model.Block{ID: fmt.Sprintf("b%d", i), Label: fmt.Sprintf("Block %d", i+1), Width: 10 + i, Height: 5 + i},
			Leaf:  model.Box{X: i * 50, Y: 0, Width: 10 + i, Height: 5 + i},
		}
	}
	result := model.PackResult{
		Bins: []model.BinResult{{Width: 5000, Height: 100, Placements: placements}},
	}

	if err := ExportLabels(path, result); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}
