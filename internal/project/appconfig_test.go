package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BlockPack/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultMode = model.ModeMultiBin
	cfg.DefaultBinWidth = 512
	cfg.DefaultSortKey = "area"
	cfg.RecentJobs = []string{"/tmp/job1.toml", "/tmp/job2.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultMode != model.ModeMultiBin {
		t.Errorf("expected DefaultMode=multibin, got %s", loaded.DefaultMode)
	}
	if loaded.DefaultBinWidth != 512 {
		t.Errorf("expected DefaultBinWidth=512, got %d", loaded.DefaultBinWidth)
	}
	if loaded.DefaultSortKey != "area" {
		t.Errorf("expected DefaultSortKey=area, got %s", loaded.DefaultSortKey)
	}
	if len(loaded.RecentJobs) != 2 {
		t.Errorf("expected 2 recent jobs, got %d", len(loaded.RecentJobs))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultBinWidth != defaults.DefaultBinWidth {
		t.Errorf("expected default bin width %d, got %d", defaults.DefaultBinWidth, cfg.DefaultBinWidth)
	}
	if cfg.DefaultMode != model.ModeGrowing {
		t.Errorf("expected mode=growing, got %s", cfg.DefaultMode)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	// Write config with null recent_jobs and no sort key
	data := []byte(`{"default_bin_width":64,"recent_jobs":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentJobs == nil {
		t.Error("RecentJobs should not be nil after loading")
	}
	if cfg.DefaultBinWidth != 64 {
		t.Errorf("expected bin width 64, got %d", cfg.DefaultBinWidth)
	}
	if cfg.DefaultSortKey != "max_side" {
		t.Errorf("missing sort key should keep the default, got %q", cfg.DefaultSortKey)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected filename config.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".blockpack" {
		t.Errorf("expected parent dir .blockpack, got %s", filepath.Dir(path))
	}
}
