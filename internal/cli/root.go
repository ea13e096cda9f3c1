package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. It is
// called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCommand builds the blockpack command tree. Logging goes to the
// command's error stream at info level, or debug level with --verbose.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "blockpack",
		Short:         "BlockPack packs rectangles into bins",
		Long:          `BlockPack packs rectangular blocks into a single bin that grows on demand or into fixed-size bins, and exports the layout.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("blockpack %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().String("config-dir", "", "configuration directory (default ~/.blockpack)")

	root.AddCommand(newPackCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newConfigCmd())

	return root
}

// Execute runs the blockpack CLI with ctx and returns the first command error.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
