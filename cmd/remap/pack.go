package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/remap/almanac"
	"github.com/hupe1980/remap/snapshot"
)

func newPackCmd(a *app) *cobra.Command {
	var (
		name        string
		compression string
		codecName   string
	)

	cmd := &cobra.Command{
		Use:   "pack <file>",
		Short: "Store a definition as a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := snapshot.ParseCompression(compression)
			if err != nil {
				return err
			}
			cd, err := codecByName(codecName)
			if err != nil {
				return err
			}

			def, err := a.loadAlmanac(cmd, args[0])
			if err != nil {
				return err
			}
			// Reject definitions that would not load back as a pipeline.
			if _, err := a.pipeline(def); err != nil {
				return err
			}

			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}

			store, err := openStore(cmd.Context(), a.flags.store)
			if err != nil {
				return err
			}

			opts := a.snapshotOptions(snapshot.WithCompression(c), snapshot.WithCodec(cd))
			if err := snapshot.Save(cmd.Context(), store, name, def, opts...); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), snapshot.BlobName(name))
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "snapshot name (default: input file name)")
	cmd.Flags().StringVar(&compression, "compression", "zstd", "body compression: none|lz4|zstd")
	cmd.Flags().StringVar(&codecName, "codec", "go-json", "definition codec: json|go-json")
	cmd.Flags().StringVar(&a.flags.format, "format", "", "input format: almanac|yaml|json (default from extension)")
	return cmd
}

func newUnpackCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "unpack <name>",
		Short: "Print a stored definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := almanac.ParseFormat(format)
			if err != nil {
				return err
			}

			store, err := openStore(cmd.Context(), a.flags.store)
			if err != nil {
				return err
			}

			def, err := snapshot.Load(cmd.Context(), store, args[0], a.snapshotOptions()...)
			if err != nil {
				return err
			}

			return almanac.WriteDefinition(cmd.OutOrStdout(), def, f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "almanac", "output format: almanac|yaml|json")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context(), a.flags.store)
			if err != nil {
				return err
			}

			names, err := snapshot.List(cmd.Context(), store)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCOMPRESSION\tCODEC\tSIZE")
			for _, n := range names {
				info, err := snapshot.Stat(cmd.Context(), store, n, a.snapshotOptions()...)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", n, info.Compression, info.Codec, info.RawSize)
			}
			return tw.Flush()
		},
	}
}
