// Package blockgen produces synthetic block lists for trying out the packers.
package blockgen

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/piwi3910/BlockPack/internal/model"
)

// Mode selects how block sizes are drawn.
type Mode int

const (
	// ModeRandom draws widths and heights uniformly from [MinWidth, MaxWidth).
	// Heights use the width range as well; the height bounds are only
	// validated.
	ModeRandom Mode = iota
	// ModeFixedHeight draws random widths and gives every block MaxHeight.
	ModeFixedHeight
	// ModeLinear spaces widths and heights evenly from min to max inclusive.
	ModeLinear
)

var modeNames = map[Mode]string{
	ModeRandom:      "random",
	ModeFixedHeight: "fixed-height",
	ModeLinear:      "linear",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts a mode name or its number.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if s == name || s == fmt.Sprint(int(m)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown generator mode %q", s)
}

// GenConfig describes a batch of generated blocks.
type GenConfig struct {
	Count     int
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int
	Mode      Mode

	// Seed makes random modes reproducible. Zero picks a fresh seed.
	Seed uint64
}

var ErrInvalidConfig = errors.New("invalid generator config")

// Validate checks the count and the size ranges.
func (c GenConfig) Validate() error {
	switch {
	case c.Count <= 0:
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidConfig, c.Count)
	case c.MinWidth <= 0 || c.MinHeight <= 0:
		return fmt.Errorf("%w: minimum sizes must be positive", ErrInvalidConfig)
	case c.MaxWidth <= c.MinWidth:
		return fmt.Errorf("%w: max width %d must exceed min width %d", ErrInvalidConfig, c.MaxWidth, c.MinWidth)
	case c.MaxHeight <= c.MinHeight:
		return fmt.Errorf("%w: max height %d must exceed min height %d", ErrInvalidConfig, c.MaxHeight, c.MinHeight)
	}
	if _, ok := modeNames[c.Mode]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.Mode)
	}
	return nil
}

// Generate returns cfg.Count new unassigned blocks labelled "Block 1",
// "Block 2" and so on.
func Generate(cfg GenConfig) ([]model.Block, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))

	var widths, heights []int
	switch cfg.Mode {
	case ModeRandom:
		widths = uniform(rng, cfg.Count, cfg.MinWidth, cfg.MaxWidth)
		heights = uniform(rng, cfg.Count, cfg.MinWidth, cfg.MaxWidth)
	case ModeFixedHeight:
		widths = uniform(rng, cfg.Count, cfg.MinWidth, cfg.MaxWidth)
		heights = linspace(cfg.Count, cfg.MaxHeight, cfg.MaxHeight)
	case ModeLinear:
		widths = linspace(cfg.Count, cfg.MinWidth, cfg.MaxWidth)
		heights = linspace(cfg.Count, cfg.MinHeight, cfg.MaxHeight)
	}

	blocks := make([]model.Block, cfg.Count)
	for i := range blocks {
		blocks[i] = model.NewBlock(fmt.Sprintf("Block %d", i+1), widths[i], heights[i])
	}
	return blocks, nil
}

// uniform draws n values from [lo, hi).
func uniform(rng *rand.Rand, n, lo, hi int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = lo + rng.IntN(hi-lo)
	}
	return out
}

// linspace returns n values evenly spaced from lo to hi inclusive,
// truncated towards zero.
func linspace(n, lo, hi int) []int {
	out := make([]int, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := float64(hi-lo) / float64(n-1)
	for i := range out {
		out[i] = lo + int(float64(i)*step)
	}
	out[n-1] = hi
	return out
}
