package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newTraceCmd(a *app) *cobra.Command {
	var rawKeys []string

	cmd := &cobra.Command{
		Use:   "trace [file]",
		Short: "Print the value of each key after every stage",
		Long: `Prints one line per key: the key followed by its value after each stage.
Keys default to the seeds of the definition.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := a.loadAlmanac(cmd, firstArg(args))
			if err != nil {
				return err
			}
			p, err := a.pipeline(def)
			if err != nil {
				return err
			}

			keys := def.Seeds
			if len(rawKeys) > 0 {
				keys = make([]uint64, len(rawKeys))
				for i, rk := range rawKeys {
					if keys[i], err = strconv.ParseUint(rk, 10, 64); err != nil {
						return fmt.Errorf("invalid --key %q: %w", rk, err)
					}
				}
			}

			out := cmd.OutOrStdout()
			for _, k := range keys {
				values := p.Trace(k)
				parts := make([]string, len(values))
				for i, v := range values {
					parts[i] = strconv.FormatUint(v, 10)
				}
				if _, err := fmt.Fprintln(out, strings.Join(parts, " -> ")); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&rawKeys, "key", "k", nil, "keys to trace (default: the seeds)")
	a.addSourceFlags(cmd)
	return cmd
}
