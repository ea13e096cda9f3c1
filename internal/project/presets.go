package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/BlockPack/internal/model"
)

// DefaultPresetsPath returns the default file path for the bin preset list.
// This is located at ~/.blockpack/presets.json.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SavePresets writes the preset list to the specified JSON file.
// It creates parent directories if they do not exist.
func SavePresets(path string, presets []model.BinPreset) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(presets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPresets reads the preset list from the specified JSON file.
// If the file does not exist, it returns the default presets and saves them.
func LoadPresets(path string) ([]model.BinPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			presets := model.DefaultPresets()
			if saveErr := SavePresets(path, presets); saveErr != nil {
				return presets, saveErr
			}
			return presets, nil
		}
		return nil, err
	}
	var presets []model.BinPreset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, err
	}
	if presets == nil {
		presets = []model.BinPreset{}
	}
	return presets, nil
}

// ImportPresets reads presets from a user-specified JSON file and merges
// them into existing. Presets whose ID is already present are skipped.
func ImportPresets(path string, existing []model.BinPreset) ([]model.BinPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported []model.BinPreset
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	ids := make(map[string]bool, len(existing))
	for _, p := range existing {
		ids[p.ID] = true
	}
	for _, p := range imported {
		if !ids[p.ID] {
			existing = append(existing, p)
			ids[p.ID] = true
		}
	}
	return existing, nil
}
