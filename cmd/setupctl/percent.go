package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accsetupsviewer/server/internal/ranges"
)

func newPercentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "percent <label> <value>",
		Short:       "Place a displayed setup value within its known range",
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{"offline": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			label, value := args[0], args[1]
			r, known := ranges.Infer(label, value)
			pct, ok := ranges.Percent(label, value)

			if a.jsonOut {
				out := map[string]any{"label": label, "value": value, "known": ok, "percent": pct}
				if known {
					out["range"] = r
				}
				return printJSON(cmd.OutOrStdout(), out)
			}

			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no range for %q\n", label, value)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %.1f%% of %s..%s\n",
				label, value, pct, ranges.FormatValue(r.Min), ranges.FormatValue(r.Max))
			return nil
		},
	}
}
