package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/kisscoast/internal/app"
	"github.com/specialistvlad/kisscoast/internal/config"
)

const rootLong = `kisscoast - stop extruding a set distance before the end of each path.

Rewrites a KISSlicer G-code program so that every path ending in a
"Destring/Wipe/Jump Path" marker stops depositing filament a configurable
distance before its end. Prime pillar paths use their own coast distance.

The result is written to FILE_out, or over FILE with --overwrite. When the
argument is a directory, every *.gcode program below it is processed.

Settings are taken from the built-in defaults, then from --config (.hcl,
.yaml or .yml), then from flags given on the command line.

Exit codes:
  0  success
  1  unexpected failure
  2  invalid flags, arguments or configuration
  3  input not found
  4  input already coasted
  5  scratch area unavailable
  6  worker failure`

// options holds flag values for one command tree.
type options struct {
	flags      app.Config
	configPath string
	logW       io.Writer
}

// Execute runs the kisscoast command tree with args. Help and reports go to
// outW, logs to logW. Any failure is returned as an *ExitError.
func Execute(ctx context.Context, args []string, outW, logW io.Writer) error {
	cmd := NewCommand(outW, logW)
	cmd.SetArgs(args)
	return toExitError(cmd.ExecuteContext(ctx))
}

// NewCommand builds the kisscoast command tree.
func NewCommand(outW, logW io.Writer) *cobra.Command {
	o := &options{flags: app.DefaultConfig(), logW: logW}

	root := &cobra.Command{
		Use:           "kisscoast [flags] FILE|DIR",
		Short:         "Add coasting to KISSlicer G-code",
		Long:          rootLong,
		Args:          usageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				slog.Debug("No input provided, printing usage and exiting.")
				return cmd.Help()
			}
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			reports, err := a.Run(cmd.Context(), args[0])
			for _, r := range reports {
				printReport(cmd.OutOrStdout(), r)
			}
			return err
		},
	}
	root.SetOut(outW)
	root.SetErr(outW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := root.PersistentFlags()
	def := app.DefaultConfig()
	pf.StringVarP(&o.configPath, "config", "c", "", "Configuration file (.hcl, .yaml or .yml).")
	pf.Float64Var(&o.flags.CoastDistance, "coast", def.CoastDistance, "Distance in mm before the end of a path to stop extruding (0-100).")
	pf.Float64Var(&o.flags.PrimePillarCoastDistance, "prime-pillar-coast", def.PrimePillarCoastDistance, "Coast distance in mm for prime pillar paths (0-100).")
	pf.Float64Var(&o.flags.MinExtrusionLength, "min-extrusion", def.MinExtrusionLength, "Length in mm of every path that must keep extruding.")
	pf.StringVar(&o.flags.ExtrusionMode, "extrusion-mode", def.ExtrusionMode, "How E words are read. Options: 'absolute' or 'relative'.")
	pf.IntVarP(&o.flags.WorkerCount, "workers", "w", def.WorkerCount, "Number of concurrent workers (1-128). 1 disables partitioning.")
	pf.BoolVar(&o.flags.Backup, "backup", def.Backup, "Save a copy of the input as FILE_backup.")
	pf.BoolVar(&o.flags.Overwrite, "overwrite", def.Overwrite, "Replace the input instead of writing FILE_out.")
	pf.BoolVar(&o.flags.KeepIntermediateArtifacts, "keep-intermediate", def.KeepIntermediateArtifacts, "Keep per-chunk artifacts in a kisscoast_wd_<run-id> directory.")
	pf.StringVar(&o.flags.ScratchDir, "scratch-dir", def.ScratchDir, "Directory for per-chunk artifacts. Memory is used when empty.")
	pf.StringVar(&o.flags.MetricsFile, "metrics-file", def.MetricsFile, "Write run statistics to this file in Prometheus text format.")
	pf.BoolVarP(&o.flags.Verbose, "verbose", "v", def.Verbose, "Log every coasting decision (same as --log-level=debug).")
	pf.StringVar(&o.flags.LogLevel, "log-level", def.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&o.flags.LogFormat, "log-format", def.LogFormat, "Log output format. Options: 'text' or 'json'. Defaults to text on a terminal, json otherwise.")

	root.AddCommand(newWatchCommand(o))
	return root
}

func newWatchCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Coast every *.gcode program written to DIR until interrupted",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			return a.Watch(cmd.Context(), args[0])
		},
	}
	cmd.Flags().DurationVar(&o.flags.WatchDebounce, "debounce", app.DefaultWatchDebounce, "Quiet period before a changed program is processed.")
	return cmd
}

// newApp resolves the configuration for cmd and builds the App.
func (o *options) newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.resolve(cmd)
	if err != nil {
		return nil, err
	}
	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return app.NewApp(o.logW, cfg)
}

// resolve layers defaults, the configuration file and the flags that were
// set explicitly.
func (o *options) resolve(cmd *cobra.Command) (app.Config, error) {
	cfg := app.DefaultConfig()
	if o.configPath != "" {
		f, err := config.Load(cmd.Context(), o.configPath)
		if err != nil {
			return app.Config{}, fmt.Errorf("%w: %w", app.ErrConfig, err)
		}
		cfg = cfg.ApplyFile(f)
	}

	overrides := []struct {
		flag  string
		apply func(c *app.Config)
	}{
		{"coast", func(c *app.Config) { c.CoastDistance = o.flags.CoastDistance }},
		{"prime-pillar-coast", func(c *app.Config) { c.PrimePillarCoastDistance = o.flags.PrimePillarCoastDistance }},
		{"min-extrusion", func(c *app.Config) { c.MinExtrusionLength = o.flags.MinExtrusionLength }},
		{"extrusion-mode", func(c *app.Config) { c.ExtrusionMode = o.flags.ExtrusionMode }},
		{"workers", func(c *app.Config) { c.WorkerCount = o.flags.WorkerCount }},
		{"backup", func(c *app.Config) { c.Backup = o.flags.Backup }},
		{"overwrite", func(c *app.Config) { c.Overwrite = o.flags.Overwrite }},
		{"keep-intermediate", func(c *app.Config) { c.KeepIntermediateArtifacts = o.flags.KeepIntermediateArtifacts }},
		{"scratch-dir", func(c *app.Config) { c.ScratchDir = o.flags.ScratchDir }},
		{"metrics-file", func(c *app.Config) { c.MetricsFile = o.flags.MetricsFile }},
		{"verbose", func(c *app.Config) { c.Verbose = o.flags.Verbose }},
		{"log-level", func(c *app.Config) { c.LogLevel = o.flags.LogLevel }},
		{"log-format", func(c *app.Config) { c.LogFormat = o.flags.LogFormat }},
		{"debounce", func(c *app.Config) { c.WatchDebounce = o.flags.WatchDebounce }},
	}
	for _, ov := range overrides {
		if f := cmd.Flags().Lookup(ov.flag); f != nil && f.Changed {
			ov.apply(&cfg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return app.Config{}, err
	}
	return cfg, nil
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

func printReport(w io.Writer, r *app.Report) {
	fmt.Fprintf(w, "%s -> %s: regular %d coasted, %d skipped; prime pillar %d coasted, %d skipped\n",
		r.Input, r.Output,
		r.Stats.RegularCoasted, r.Stats.RegularSkipped,
		r.Stats.PrimeCoasted, r.Stats.PrimeSkipped,
	)
}
