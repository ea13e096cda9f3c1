package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BlockPack/internal/engine"
	"github.com/piwi3910/BlockPack/internal/export"
	"github.com/piwi3910/BlockPack/internal/model"
	"github.com/piwi3910/BlockPack/internal/order"
	"github.com/piwi3910/BlockPack/internal/project"
)

// ErrIncomplete is returned by pack --strict when blocks were left unplaced.
var ErrIncomplete = errors.New("not every block was placed")

// packOpts holds the command-line flags for the pack command.
type packOpts struct {
	settingsFlags
	pdf      string // per-bin layout PDF
	stripPDF string // all bins side by side
	labels   string // QR label sheet
	xlsx     string // spreadsheet report
	json     string // JSON report, "-" for stdout
	snapshot string // job + result archive
	strict   bool   // fail when blocks are left unplaced

	search      bool   // run the genetic order search
	generations int    // search generations
	seed        uint64 // search seed, 0 picks one
}

func newPackCmd() *cobra.Command {
	var opts packOpts

	cmd := &cobra.Command{
		Use:   "pack [job|blocks-file]",
		Short: "Pack a job or block list and export the layout",
		Long: `Pack reads a job file (.toml, .json) or a block list (.csv, .xlsx, .dxf),
sorts the blocks and packs them into a growing bin or into fixed-size bins.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd.Context(), cmd, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "write a layout PDF")
	cmd.Flags().StringVar(&opts.stripPDF, "strip-pdf", "", "write all bins side by side to a PDF")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "write a QR label sheet PDF")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "write an XLSX report")
	cmd.Flags().StringVar(&opts.json, "json", "", "write a JSON report (- for stdout)")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "save job and result for later verification")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when blocks cannot be placed")
	cmd.Flags().BoolVar(&opts.search, "search", false, "search for a better packing order (genetic)")
	cmd.Flags().IntVar(&opts.generations, "generations", engine.DefaultGeneticConfig().Generations, "generations for --search")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for --search (0 picks one)")

	return cmd
}

func runPack(ctx context.Context, cmd *cobra.Command, path string, opts *packOpts) error {
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()
	configDir := configDirFrom(cmd)

	cfg, err := project.LoadAppConfig(configPath(configDir))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	defaults := model.DefaultSettings()
	cfg.ApplyToSettings(&defaults)

	job, isJob, err := loadInput(path, defaults, logger)
	if err != nil {
		return err
	}
	job.Settings, err = opts.resolve(cmd, job.Settings, configDir)
	if err != nil {
		return err
	}

	key, err := order.ParseKey(job.Settings.SortKey)
	if err != nil {
		return err
	}
	blocks := order.Sort(job.Expand(), key)
	logger.Debug("packing", "blocks", len(blocks), "mode", job.Settings.Mode, "sort", key)

	prog := newProgress(logger)
	var result model.PackResult
	if opts.search {
		cfg := engine.DefaultGeneticConfig()
		cfg.Generations = opts.generations
		cfg.Seed = opts.seed
		result, err = engine.SearchOrder(job.Settings, blocks, cfg, engine.WithLogger(logger))
	} else {
		result, err = engine.New(job.Settings, engine.WithLogger(logger)).Pack(blocks)
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Packed %d blocks into %d bin(s)", result.PlacedCount(), result.BinCount()))

	if violations := engine.Verify(result); len(violations) > 0 {
		for _, msg := range engine.FormatViolations(violations) {
			logger.Error(msg)
		}
		return fmt.Errorf("packing produced %d invalid placement(s)", len(violations))
	}

	if opts.json != "-" {
		printSummary(out, result)
	}
	if err := writeOutputs(cmd, job, result, opts); err != nil {
		return err
	}

	if isJob {
		cfg.AddRecentJob(path)
		if err := project.SaveAppConfig(configPath(configDir), cfg); err != nil {
			logger.Warn("could not update recent jobs", "err", err)
		}
	}

	if !result.Complete() {
		logger.Warn("blocks left unplaced", "count", len(result.Unplaced))
		if opts.strict {
			return fmt.Errorf("%w: %d unplaced", ErrIncomplete, len(result.Unplaced))
		}
	}
	return nil
}

// exportStep writes one output file.
type exportStep struct {
	path  string
	name  string
	write func(string) error
}

// writeOutputs runs every export that has a target path.
func writeOutputs(cmd *cobra.Command, job model.Job, result model.PackResult, opts *packOpts) error {
	out := cmd.OutOrStdout()

	if opts.json == "-" {
		if err := export.WriteJSON(out, result); err != nil {
			return err
		}
	}

	steps := []exportStep{
		{opts.pdf, "PDF", func(p string) error { return export.ExportPDF(p, result, job.Settings) }},
		{opts.stripPDF, "strip PDF", func(p string) error { return export.ExportStripPDF(p, result, job.Settings) }},
		{opts.labels, "labels", func(p string) error { return export.ExportLabels(p, result) }},
		{opts.xlsx, "XLSX", func(p string) error { return export.ExportXLSX(p, result) }},
		{opts.snapshot, "snapshot", func(p string) error { return project.SaveSnapshot(p, job, result) }},
	}
	if opts.json != "-" {
		steps = append(steps, exportStep{opts.json, "JSON", func(p string) error { return export.ExportJSON(p, result) }})
	}

	for _, step := range steps {
		if step.path == "" {
			continue
		}
		if err := step.write(step.path); err != nil {
			return fmt.Errorf("write %s: %w", step.name, err)
		}
		if opts.json != "-" {
			printFile(out, step.path)
		}
	}
	return nil
}

// ExitCode maps an error returned by Execute to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrIncomplete):
		return 2
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}
