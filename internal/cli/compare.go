package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BlockPack/internal/engine"
	"github.com/piwi3910/BlockPack/internal/model"
	"github.com/piwi3910/BlockPack/internal/project"
)

func newCompareCmd() *cobra.Command {
	var flags settingsFlags

	cmd := &cobra.Command{
		Use:   "compare [job|blocks-file]",
		Short: "Pack the same blocks under every sort key and both modes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.Context(), cmd, args[0], &flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func runCompare(ctx context.Context, cmd *cobra.Command, path string, flags *settingsFlags) error {
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()
	configDir := configDirFrom(cmd)

	cfg, err := project.LoadAppConfig(configPath(configDir))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	defaults := model.DefaultSettings()
	cfg.ApplyToSettings(&defaults)

	job, _, err := loadInput(path, defaults, logger)
	if err != nil {
		return err
	}
	base, err := flags.resolve(cmd, job.Settings, configDir)
	if err != nil {
		return err
	}

	scenarios := engine.BuildDefaultScenarios(base)
	prog := newProgress(logger)
	results := engine.CompareScenarios(scenarios, job.Expand(), engine.WithLogger(logger))
	prog.done(fmt.Sprintf("Compared %d scenarios", len(results)))

	best := engine.Best(results)
	printComparison(out, results, best)
	if best < 0 {
		return fmt.Errorf("every scenario failed")
	}
	printSuccess(out, "Best: %s", results[best].Scenario.Name)
	return nil
}
