package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Skufu/maternalrisk/internal/observation"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "List the model inputs in feature order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FEATURE\tFLAG\tUNIT\tMIN\tMAX\tDEFAULT")
			for _, f := range observation.Fields() {
				fmt.Fprintf(tw, "%s\t--%s\t%s\t%s\t%s\t%s\n", f.Name, f.Key, f.Unit, num(f.Min), num(f.Max), num(f.Default))
			}
			return tw.Flush()
		},
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
