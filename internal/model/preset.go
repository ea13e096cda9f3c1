package model

import (
	"strings"

	"github.com/google/uuid"
)

// BinPreset is a named fixed bin size.
type BinPreset struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// NewBinPreset creates a BinPreset with a generated ID.
func NewBinPreset(name string, width, height int) BinPreset {
	return BinPreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  width,
		Height: height,
	}
}

// ApplyToSettings switches s to multi-bin mode with the preset's size.
func (bp BinPreset) ApplyToSettings(s *PackSettings) {
	s.Mode = ModeMultiBin
	s.BinWidth = bp.Width
	s.BinHeight = bp.Height
}

// DefaultPresets returns common bin sizes.
func DefaultPresets() []BinPreset {
	return []BinPreset{
		NewBinPreset("Square 100", 100, 100),
		NewBinPreset("Atlas 512", 512, 512),
		NewBinPreset("Atlas 1024", 1024, 1024),
		NewBinPreset("Atlas 2048", 2048, 2048),
		NewBinPreset("Sheet 2440x1220", 2440, 1220),
	}
}

// FindPreset looks a preset up by case-insensitive name or by ID.
func FindPreset(presets []BinPreset, name string) (BinPreset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) || p.ID == name {
			return p, true
		}
	}
	return BinPreset{}, false
}
