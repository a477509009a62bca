package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/remap"
	"github.com/hupe1980/remap/almanac"
	"github.com/hupe1980/remap/resource"
	"github.com/hupe1980/remap/snapshot"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose     bool
	jsonLogs    bool
	lookup      string
	strategy    string
	concurrency int
	ioLimit     int64
	store       string
	snapshot    string
	format      string
}

type app struct {
	flags   globalFlags
	logger  *remap.Logger
	metrics *remap.BasicMetricsCollector
	rc      *resource.Controller
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "remap",
		Short:         "Evaluate layered interval remapping pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&a.flags.jsonLogs, "json-logs", false, "log as JSON")
	pf.StringVar(&a.flags.lookup, "lookup", "sorted", "stage lookup: sorted|btree")
	pf.StringVar(&a.flags.strategy, "strategy", "exact", "range minimum: exact|bisect")
	pf.IntVar(&a.flags.concurrency, "concurrency", 0, "parallel range queries (0 = GOMAXPROCS)")
	pf.Int64Var(&a.flags.ioLimit, "io-limit", 0, "snapshot IO limit in bytes/sec (0 = unlimited)")
	pf.StringVar(&a.flags.store, "store", ".", "snapshot store: directory, s3://bucket/prefix or minio://bucket/prefix")

	root.AddCommand(
		newMinCmd(a),
		newTraceCmd(a),
		newPackCmd(a),
		newUnpackCmd(a),
		newListCmd(a),
	)

	return root
}

func (a *app) setup(stderr io.Writer) error {
	level := slog.LevelWarn
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if a.flags.jsonLogs {
		a.logger = remap.NewLogger(slog.NewJSONHandler(stderr, opts))
	} else {
		a.logger = remap.NewLogger(slog.NewTextHandler(stderr, opts))
	}

	if a.flags.concurrency < 0 {
		return fmt.Errorf("--concurrency must not be negative")
	}
	if a.flags.ioLimit < 0 {
		return fmt.Errorf("--io-limit must not be negative")
	}

	a.metrics = &remap.BasicMetricsCollector{}
	a.rc = resource.NewController(resource.Config{
		MaxWorkers:         int64(a.flags.concurrency),
		IOLimitBytesPerSec: a.flags.ioLimit,
	})
	return nil
}

// addSourceFlags registers the flags that choose where a definition is read from.
func (a *app) addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.flags.snapshot, "snapshot", "", "read the definition from a stored snapshot instead of a file")
	cmd.Flags().StringVar(&a.flags.format, "format", "", "input format: almanac|yaml|json (default from extension)")
}

// loadAlmanac reads the definition named by path, or the --snapshot if set.
// A path of "-" reads stdin.
func (a *app) loadAlmanac(cmd *cobra.Command, path string) (*almanac.Almanac, error) {
	if a.flags.snapshot != "" {
		store, err := openStore(cmd.Context(), a.flags.store)
		if err != nil {
			return nil, err
		}
		return snapshot.Load(cmd.Context(), store, a.flags.snapshot, a.snapshotOptions()...)
	}

	if path == "" {
		return nil, fmt.Errorf("an input file or --snapshot is required")
	}

	format := almanac.FormatFromPath(path)
	if a.flags.format != "" {
		f, err := almanac.ParseFormat(a.flags.format)
		if err != nil {
			return nil, err
		}
		format = f
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	return almanac.LoadDefinition(r, format)
}

// pipeline builds a pipeline honoring the global flags.
func (a *app) pipeline(def *almanac.Almanac) (*remap.Pipeline, error) {
	lookup, err := remap.ParseLookupStrategy(a.flags.lookup)
	if err != nil {
		return nil, err
	}
	strategy, err := remap.ParseRangeStrategy(a.flags.strategy)
	if err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	opts := []remap.Option{
		remap.WithRangeStrategy(strategy),
		remap.WithResourceController(a.rc),
		remap.WithLogger(a.logger),
		remap.WithMetricsCollector(a.metrics),
	}
	if a.flags.concurrency > 0 {
		opts = append(opts, remap.WithConcurrency(a.flags.concurrency))
	}

	return def.Builder().Lookup(lookup).With(opts...).Build()
}

func (a *app) snapshotOptions(extra ...snapshot.Option) []snapshot.Option {
	return append([]snapshot.Option{
		snapshot.WithResourceController(a.rc),
		snapshot.WithLogger(a.logger),
	}, extra...)
}

func (a *app) logStats() {
	s := a.metrics.GetStats()
	a.logger.Debug("pipeline stats",
		slog.Int64("builds", s.BuildCount),
		slog.Int64("apply_many", s.ApplyManyCount),
		slog.Int64("keys", s.ApplyManyKeys),
		slog.Int64("range_queries", s.RangeQueryCount),
		slog.Int64("range_pieces", s.RangeQueryPieces),
		slog.Int64("range_query_avg_ns", s.RangeQueryAvgNanos),
	)
}
