package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/normbench/bench"
	"github.com/katalvlaran/normbench/internal/config"
	"github.com/katalvlaran/normbench/internal/logging"
	"github.com/katalvlaran/normbench/normalize"
	"github.com/katalvlaran/normbench/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var version = "dev"

// Process exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitDegenerate = 2
)

// errDegenerateOutput marks a completed run whose output contains NaN rows.
var errDegenerateOutput = errors.New("output contains non-finite rows")

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	debug      bool
	format     string
}

type rowsFlags struct {
	rows, cols       int
	passes           int
	seed             int64
	warmup           int
	workers          int
	policy           string
	kernel           string
	copyOut          bool
	stopOnDegenerate bool
}

type primesFlags struct {
	limit      int
	passes     int
	exhaustive bool
}

// cli wires the cobra commands to the benchmark packages.
type cli struct {
	stdout, stderr io.Writer

	global globalFlags
	rows   rowsFlags
	primes primesFlags
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	root := c.rootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	code := exitCode(err)
	if err != nil {
		fmt.Fprintf(stderr, "normbench: %v\n", err)
	}
	return code
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errDegenerateOutput), errors.Is(err, bench.ErrDegenerate):
		return exitDegenerate
	default:
		return exitError
	}
}

func (c *cli) rootCmd() *cobra.Command {
	cobra.EnableCommandSorting = false

	root := &cobra.Command{
		Use:   "normbench",
		Short: "row normalization micro-benchmark",
		Long: `Standardize every row of a random matrix (subtract the row mean, divide by
the row population standard deviation) several times in place and print the
average wall-clock seconds per pass.

Running normbench without a subcommand is the same as "normbench rows".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.runRows,
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&c.global.configPath, "config", "", "YAML config file (flags override it)")
	pf.BoolVar(&c.global.debug, "debug", false, "debug logging to stderr")
	pf.StringVar(&c.global.format, "format", string(report.FormatPlain), "report format: plain, table or yaml")
	c.addRowsFlags(root.Flags())

	rows := &cobra.Command{
		Use:   "rows",
		Short: "time in-place row normalization passes",
		Args:  cobra.NoArgs,
		RunE:  c.runRows,
	}
	c.addRowsFlags(rows.Flags())

	primes := &cobra.Command{
		Use:   "primes",
		Short: "time a trial-division prime sweep",
		Args:  cobra.NoArgs,
		RunE:  c.runPrimes,
	}
	primes.Flags().IntVar(&c.primes.limit, "limit", config.Default().Primes.Limit, "count primes below this bound")
	primes.Flags().IntVar(&c.primes.passes, "passes", config.DefaultPrimesPasses, "timed sweeps")
	primes.Flags().BoolVar(&c.primes.exhaustive, "exhaustive", false, "try every divisor instead of stopping at the first")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "output version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "normbench %s\n", version)
			fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
			fmt.Fprintf(out, "Host:       %s\n", report.Host())
		},
	}

	root.AddCommand(rows, primes, versionCmd)
	return root
}

func (c *cli) addRowsFlags(fs *pflag.FlagSet) {
	d := config.Default().Rows
	fs.IntVar(&c.rows.rows, "rows", d.Rows, "matrix rows")
	fs.IntVar(&c.rows.cols, "cols", d.Cols, "matrix columns")
	fs.IntVar(&c.rows.passes, "passes", d.Passes, "timed normalization passes")
	fs.Int64Var(&c.rows.seed, "seed", d.Seed, "random fill seed (0 selects the default)")
	fs.IntVar(&c.rows.warmup, "warmup", d.Warmup, "untimed passes before timing starts")
	fs.IntVar(&c.rows.workers, "workers", d.Workers, "goroutines splitting the rows of each pass")
	fs.StringVar(&c.rows.policy, "policy", d.Policy, "zero-variance rows: propagate, reject or skip")
	fs.StringVar(&c.rows.kernel, "kernel", d.Kernel, "row kernel: loop or floats")
	fs.BoolVar(&c.rows.copyOut, "copy-out", false, "normalize into a separate matrix instead of in place")
	fs.BoolVar(&c.rows.stopOnDegenerate, "stop-on-degenerate", false, "end the run at the first pass with degenerate rows")
}

// loadConfig reads --config, then overrides it with every flag set on the command line.
func (c *cli) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(c.global.configPath)
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("debug", func() { cfg.Debug = c.global.debug })
	set("format", func() { cfg.Format = c.global.format })

	if fs.Lookup("rows") != nil {
		set("rows", func() { cfg.Rows.Rows = c.rows.rows })
		set("cols", func() { cfg.Rows.Cols = c.rows.cols })
		set("passes", func() { cfg.Rows.Passes = c.rows.passes })
		set("seed", func() { cfg.Rows.Seed = c.rows.seed })
		set("warmup", func() { cfg.Rows.Warmup = c.rows.warmup })
		set("workers", func() { cfg.Rows.Workers = c.rows.workers })
		set("policy", func() { cfg.Rows.Policy = c.rows.policy })
		set("kernel", func() { cfg.Rows.Kernel = c.rows.kernel })
		set("copy-out", func() { cfg.Rows.CopyOut = c.rows.copyOut })
		set("stop-on-degenerate", func() { cfg.Rows.StopOnDegenerate = c.rows.stopOnDegenerate })
	}
	if fs.Lookup("limit") != nil {
		set("limit", func() { cfg.Primes.Limit = c.primes.limit })
		set("passes", func() { cfg.Primes.Passes = c.primes.passes })
		set("exhaustive", func() { cfg.Primes.Exhaustive = c.primes.exhaustive })
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the run logger on the command's stderr.
func (c *cli) newLogger(debug bool) (*zap.Logger, error) {
	if f, ok := c.stderr.(*os.File); ok && f == os.Stderr {
		return logging.New(debug)
	}
	return logging.NewTo(c.stderr, debug), nil
}

func (c *cli) runner(cfg *config.Config, logger *zap.Logger) *bench.Runner {
	return bench.NewRunner(
		bench.WithLogger(logger),
		bench.WithSeed(cfg.Rows.Seed),
		bench.WithWarmup(cfg.Rows.Warmup),
		bench.WithStopOnDegenerate(cfg.Rows.StopOnDegenerate),
		bench.WithHost(report.Host().String()),
	)
}

func (c *cli) runRows(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := c.newLogger(cfg.Debug)
	if err != nil {
		return errors.Wrap(err, "failed to create logger")
	}
	defer func() { _ = logger.Sync() }()

	n := normalize.New(cfg.Rows.NormalizerOptions()...)
	w := bench.NewRowsWorkload(cfg.Rows.Rows, cfg.Rows.Cols, n, cfg.Rows.CopyOut)
	logger.Debug("starting rows benchmark",
		zap.Int("rows", cfg.Rows.Rows), zap.Int("cols", cfg.Rows.Cols), zap.Int("passes", cfg.Rows.Passes),
		zap.Stringer("policy", n.Policy()), zap.Stringer("kernel", n.Kernel()), zap.Int("workers", n.Workers()))

	res, runErr := c.runner(cfg, logger).Run(cmd.Context(), w, cfg.Rows.Passes)
	if res != nil {
		if err := c.write(cmd, cfg, res); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}
	if res.DegenerateRows > 0 && n.Policy() == normalize.PolicyPropagate {
		return errors.Wrapf(errDegenerateOutput, "%d degenerate rows (first: row %d)", res.DegenerateRows, res.FirstDegenerate)
	}
	return nil
}

func (c *cli) runPrimes(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := c.newLogger(cfg.Debug)
	if err != nil {
		return errors.Wrap(err, "failed to create logger")
	}
	defer func() { _ = logger.Sync() }()

	w := bench.NewPrimesWorkload(cfg.Primes.Limit).Exhaustive(cfg.Primes.Exhaustive)
	res, err := c.runner(cfg, logger).Run(cmd.Context(), w, cfg.Primes.Passes)
	if err != nil {
		return err
	}
	logger.Debug("primes found", zap.Int("count", res.Items), zap.Int("limit", cfg.Primes.Limit))

	return c.write(cmd, cfg, res)
}

func (c *cli) write(cmd *cobra.Command, cfg *config.Config, res *bench.Result) error {
	f, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	return report.Write(cmd.OutOrStdout(), res, f)
}
