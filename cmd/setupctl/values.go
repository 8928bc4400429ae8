package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/accsetupsviewer/server/internal/i18n"
	"github.com/accsetupsviewer/server/internal/setupview"
)

func newValuesCmd(a *app) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "values <path>",
		Short: "Download a setup file, convert it through GoSetups and print its values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := a.setups.FetchConvertedValues(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			messages := i18n.For(i18n.Normalize(lang))
			details := setupview.Build(values).Localize(messages)

			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"path":         args[0],
					"final_values": values,
					"details":      details,
				})
			}

			if details.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), messages.NoValues)
				return nil
			}
			return printDetails(cmd.OutOrStdout(), details)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "en", "Language for section titles (en, it, es, de, fr)")
	return cmd
}

func printDetails(out io.Writer, d setupview.Details) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, section := range d.Sections {
		fmt.Fprintf(w, "%s\n", section.Title)
		for _, block := range section.Blocks {
			indent := "  "
			if block.Title != "" {
				fmt.Fprintf(w, "  %s\n", block.Title)
				indent = "    "
			}
			for _, item := range block.Items {
				bar := ""
				if item.Percent != nil {
					bar = fmt.Sprintf("%3.0f%%", *item.Percent)
				}
				fmt.Fprintf(w, "%s%s\t%s\t%s\n", indent, item.Label, item.Value, bar)
			}
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
