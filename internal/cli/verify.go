package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BlockPack/internal/engine"
	"github.com/piwi3910/BlockPack/internal/project"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [snapshot]",
		Short: "Re-check the placements of a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), cmd, args[0])
		},
	}
}

func runVerify(ctx context.Context, cmd *cobra.Command, path string) error {
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	snap, err := project.LoadSnapshot(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded snapshot", "version", snap.Version, "created", snap.CreatedAt, "job", snap.Job.Name)

	violations := engine.Verify(snap.Result)
	if len(violations) > 0 {
		for _, msg := range engine.FormatViolations(violations) {
			printError(out, "%s", msg)
		}
		return fmt.Errorf("%s: %d violation(s)", path, len(violations))
	}

	printSuccess(out, "%d placements in %d bin(s) verified", snap.Result.PlacedCount(), snap.Result.BinCount())
	if n := len(snap.Result.Unplaced); n > 0 {
		printWarning(out, "%d block(s) were left unplaced", n)
	}
	return nil
}
