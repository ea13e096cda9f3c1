package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BlockPack/internal/model"
	"github.com/piwi3910/BlockPack/internal/project"
)

// settingsFlags are the packing flags shared by pack and compare.
type settingsFlags struct {
	mode      string // growing or multibin
	binWidth  int    // fixed bin width
	binHeight int    // fixed bin height
	preset    string // bin preset name or ID
	sortKey   string // ordering applied before packing
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "packing mode: growing, multibin")
	cmd.Flags().IntVar(&f.binWidth, "bin-width", 0, "fixed bin width (multibin)")
	cmd.Flags().IntVar(&f.binHeight, "bin-height", 0, "fixed bin height (multibin)")
	cmd.Flags().StringVar(&f.preset, "preset", "", "bin preset name or ID (implies multibin)")
	cmd.Flags().StringVar(&f.sortKey, "sort", "", "sort key: width, height, area, max_side, none")
}

// resolve layers the settings: job file values, then preset, then explicit
// flags. Flags left at their zero value do not override.
func (f *settingsFlags) resolve(cmd *cobra.Command, base model.PackSettings, configDir string) (model.PackSettings, error) {
	s := base

	if f.preset != "" {
		presets, err := project.LoadPresets(presetsPath(configDir))
		if err != nil {
			return s, fmt.Errorf("load presets: %w", err)
		}
		p, ok := model.FindPreset(presets, f.preset)
		if !ok {
			return s, fmt.Errorf("unknown bin preset %q", f.preset)
		}
		p.ApplyToSettings(&s)
	}

	if cmd.Flags().Changed("mode") {
		mode, err := model.ParseMode(f.mode)
		if err != nil {
			return s, err
		}
		s.Mode = mode
	}
	if cmd.Flags().Changed("bin-width") {
		s.BinWidth = f.binWidth
	}
	if cmd.Flags().Changed("bin-height") {
		s.BinHeight = f.binHeight
	}
	if cmd.Flags().Changed("sort") {
		s.SortKey = f.sortKey
	}
	return s, nil
}

// configDirFrom returns the --config-dir value of cmd, falling back to the
// default directory.
func configDirFrom(cmd *cobra.Command) string {
	dir, err := cmd.Flags().GetString("config-dir")
	if err != nil || dir == "" {
		return project.DefaultConfigDir()
	}
	return dir
}

func configPath(dir string) string {
	return filepath.Join(dir, "config.json")
}

func presetsPath(dir string) string {
	return filepath.Join(dir, "presets.json")
}
