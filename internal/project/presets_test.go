package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BlockPack/internal/model"
)

func TestDefaultPresetsPath(t *testing.T) {
	path := DefaultPresetsPath()
	if filepath.Base(path) != "presets.json" {
		t.Errorf("expected filename presets.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".blockpack" {
		t.Errorf("expected parent dir .blockpack, got %s", filepath.Dir(path))
	}
}

func TestSaveAndLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")

	presets := []model.BinPreset{
		model.NewBinPreset("Tiny", 16, 16),
		model.NewBinPreset("Wide", 400, 100),
	}
	if err := SavePresets(path, presets); err != nil {
		t.Fatalf("SavePresets failed: %v", err)
	}

	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(loaded))
	}
	if loaded[1].Name != "Wide" || loaded[1].Width != 400 || loaded[1].Height != 100 {
		t.Errorf("unexpected preset: %+v", loaded[1])
	}
	if loaded[0].ID != presets[0].ID {
		t.Errorf("expected ID %s to survive, got %s", presets[0].ID, loaded[0].ID)
	}
}

func TestLoadPresetsMissingFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "presets.json")

	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(loaded) != len(model.DefaultPresets()) {
		t.Errorf("expected %d default presets, got %d", len(model.DefaultPresets()), len(loaded))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults should have been written: %v", err)
	}
}

func TestLoadPresetsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	if err := os.WriteFile(path, []byte("[{oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPresets(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportPresetsSkipsDuplicates(t *testing.T) {
	dir := t.TempDir()
	existing := []model.BinPreset{{ID: "aaa", Name: "A", Width: 10, Height: 10}}

	imported := []model.BinPreset{
		{ID: "aaa", Name: "A again", Width: 99, Height: 99},
		{ID: "bbb", Name: "B", Width: 20, Height: 30},
	}
	data, err := json.Marshal(imported)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "import.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	merged, err := ImportPresets(path, existing)
	if err != nil {
		t.Fatalf("ImportPresets failed: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 presets after merge, got %d", len(merged))
	}
	if merged[0].Name != "A" {
		t.Errorf("existing preset should win, got %q", merged[0].Name)
	}
	if merged[1].ID != "bbb" {
		t.Errorf("expected bbb appended, got %s", merged[1].ID)
	}
}

func TestImportPresetsMissingFile(t *testing.T) {
	existing := []model.BinPreset{{ID: "x"}}
	merged, err := ImportPresets(filepath.Join(t.TempDir(), "nope.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(merged) != 1 {
		t.Errorf("existing presets should be returned unchanged")
	}
}
