package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BlockPack/internal/model"
	"github.com/piwi3910/BlockPack/internal/project"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the configuration and bin presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration and bin presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	return cmd
}

func runConfigShow(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	dir := configDirFrom(cmd)

	cfg, err := project.LoadAppConfig(configPath(dir))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, StyleTitle.Render("Configuration"))
	printKeyValue(out, "File", configPath(dir))
	printKeyValue(out, "Mode", string(cfg.DefaultMode))
	printKeyValue(out, "Bin size", fmt.Sprintf("%dx%d", cfg.DefaultBinWidth, cfg.DefaultBinHeight))
	printKeyValue(out, "Sort", cfg.DefaultSortKey)
	printKeyValue(out, "Margin factor", strconv.FormatFloat(cfg.DefaultMarginFactor, 'g', -1, 64))
	printKeyValue(out, "Min free area", strconv.Itoa(cfg.DefaultMinOffcutArea))
	for _, j := range cfg.RecentJobs {
		printDetail(out, "recent: %s", j)
	}

	presets, err := project.LoadPresets(presetsPath(dir))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, StyleTitle.Render("Bin presets"))
	t := newTable("ID", "Name", "Size")
	for _, p := range presets {
		t.Row(p.ID, p.Name, fmt.Sprintf("%dx%d", p.Width, p.Height))
	}
	fmt.Fprintln(out, t.Render())
	return nil
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	out := cmd.OutOrStdout()
	dir := configDirFrom(cmd)

	files := []struct {
		path  string
		write func(string) error
	}{
		{configPath(dir), func(p string) error { return project.SaveAppConfig(p, model.DefaultAppConfig()) }},
		{presetsPath(dir), func(p string) error { return project.SavePresets(p, model.DefaultPresets()) }},
	}
	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil && !force {
			printInfo(out, "%s exists, keeping it (use --force to overwrite)", f.path)
			continue
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := f.write(f.path); err != nil {
			return err
		}
		printSuccess(out, "Wrote %s", f.path)
	}
	return nil
}
