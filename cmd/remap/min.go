package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMinCmd(a *app) *cobra.Command {
	var ranges bool

	cmd := &cobra.Command{
		Use:   "min [file]",
		Short: "Print the lowest value any seed maps to",
		Long: `Runs every seed through the pipeline and prints the lowest result.

With --ranges the seeds are read as (start, length) pairs and the minimum is
taken over every key of every range without enumerating them.`,
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
			defer a.logStats()

			var lowest uint64
			if ranges {
				rs, err := def.SeedRanges()
				if err != nil {
					return err
				}
				lowest, err = p.MinOverRanges(cmd.Context(), rs)
				if err != nil {
					return err
				}
			} else {
				lowest, err = p.ApplyMany(def.Seeds)
				if err != nil {
					return err
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), lowest)
			return err
		},
	}

	cmd.Flags().BoolVar(&ranges, "ranges", false, "treat seeds as (start, length) pairs")
	a.addSourceFlags(cmd)
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
