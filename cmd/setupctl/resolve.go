package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/accsetupsviewer/server/internal/catalog"
	"github.com/accsetupsviewer/server/internal/domain"
)

func newResolveCmd(a *app) *cobra.Command {
	var req catalog.SelectionRequest

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a car, track, class and file selection against the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ix, err := a.catalog.Index(cmd.Context())
			if err != nil {
				return err
			}

			sel := catalog.Resolve(ix, req)
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"car":           sel.Car,
					"track":         sel.Track,
					"car_class":     sel.CarClass,
					"has_primary":   sel.HasPrimary(),
					"entries":       sel.FilteredEntries,
					"groups":        sel.Groups(),
					"selected_file": sel.SelectedFile,
				})
			}

			printSelection(cmd.OutOrStdout(), sel)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Car, "car", "", "Car key or folder name")
	cmd.Flags().StringVar(&req.Track, "track", "", "Track key or folder name")
	cmd.Flags().StringVar(&req.CarClass, "class", "", "Car class tab")
	cmd.Flags().StringVar(&req.File, "file", "", "Setup file path")
	return cmd
}

func printSelection(w io.Writer, sel catalog.Selection) {
	fmt.Fprintf(w, "car:   %s\ntrack: %s\nclass: %s\n", orDash(sel.Car), orDash(sel.Track), sel.CarClass)

	if !sel.HasPrimary() {
		fmt.Fprintln(w, "\nselect a car or a track to list setups")
		return
	}

	if groups := sel.Groups(); groups != nil {
		for _, g := range groups {
			fmt.Fprintf(w, "\n%s\n", g.Label)
			printEntries(w, g.Entries, sel.SelectedFile)
		}
	} else {
		fmt.Fprintln(w)
		printEntries(w, sel.FilteredEntries, sel.SelectedFile)
	}

	fmt.Fprintf(w, "\nselected: %s\n", orDash(sel.SelectedFile))
}

func printEntries(w io.Writer, entries []domain.SetupEntry, selected string) {
	for _, e := range entries {
		marker := " "
		if e.Path == selected {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %s\n", marker, e.Path)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
