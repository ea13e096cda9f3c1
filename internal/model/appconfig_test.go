package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultMode != defaults.Mode {
		t.Errorf("Mode mismatch: config=%s settings=%s", cfg.DefaultMode, defaults.Mode)
	}
	if cfg.DefaultBinWidth != defaults.BinWidth || cfg.DefaultBinHeight != defaults.BinHeight {
		t.Errorf("bin size mismatch: config=%dx%d settings=%dx%d",
			cfg.DefaultBinWidth, cfg.DefaultBinHeight, defaults.BinWidth, defaults.BinHeight)
	}
	if cfg.DefaultSortKey != defaults.SortKey {
		t.Errorf("SortKey mismatch: config=%s settings=%s", cfg.DefaultSortKey, defaults.SortKey)
	}
	if cfg.RecentJobs == nil {
		t.Error("RecentJobs should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultMode = ModeMultiBin
	cfg.DefaultBinWidth = 512
	cfg.DefaultSortKey = "area"

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.Mode != ModeMultiBin {
		t.Errorf("expected multibin, got %s", s.Mode)
	}
	if s.BinWidth != 512 {
		t.Errorf("expected BinWidth=512, got %d", s.BinWidth)
	}
	if s.SortKey != "area" {
		t.Errorf("expected SortKey=area, got %s", s.SortKey)
	}
}

func TestAddRecentJob(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentJob("a.toml")
	cfg.AddRecentJob("b.toml")
	cfg.AddRecentJob("a.toml")

	if len(cfg.RecentJobs) != 2 {
		t.Fatalf("expected 2 recent jobs, got %d", len(cfg.RecentJobs))
	}
	if cfg.RecentJobs[0] != "a.toml" || cfg.RecentJobs[1] != "b.toml" {
		t.Errorf("unexpected order: %v", cfg.RecentJobs)
	}
}

func TestAddRecentJobCaps(t *testing.T) {
	cfg := DefaultAppConfig()
	for i := 0; i < maxRecentJobs+5; i++ {
		cfg.AddRecentJob(string(rune('a'+i)) + ".json")
	}
	if len(cfg.RecentJobs) != maxRecentJobs {
		t.Errorf("expected %d recent jobs, got %d", maxRecentJobs, len(cfg.RecentJobs))
	}
	if cfg.RecentJobs[0] != string(rune('a'+maxRecentJobs+4))+".json" {
		t.Errorf("newest job should be first, got %s", cfg.RecentJobs[0])
	}
}
