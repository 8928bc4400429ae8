package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/accsetupsviewer/server/internal/domain"
)

func newCatalogCmd(a *app) *cobra.Command {
	var class, query string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the cars and tracks found in the setups repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ix, err := a.catalog.Index(cmd.Context())
			if err != nil {
				return err
			}

			cars := ix.Cars
			if class != "" {
				cars = ix.VisibleCars(domain.CarCategory(class), query)
			}
			tracks := ix.Tracks
			if query != "" {
				tracks = ix.VisibleTracks(query)
			}

			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"cars":         cars,
					"tracks":       tracks,
					"class_by_car": ix.ClassByCar,
					"tabs":         ix.Tabs(),
					"total":        len(ix.Entries),
				})
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "CAR\tCLASS\tKEY\n")
			for _, c := range cars {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.Label, ix.ClassByCar[c.Key], c.Key)
			}
			fmt.Fprintf(w, "\nTRACK\t\tKEY\n")
			for _, t := range tracks {
				fmt.Fprintf(w, "%s\t\t%s\n", t.Label, t.Key)
			}
			fmt.Fprintf(w, "\n%d setups, %d cars, %d tracks\n", len(ix.Entries), len(ix.Cars), len(ix.Tracks))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "Only cars of this class (gt3, gt4, gt2, cup, challenge, st, other)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only cars and tracks whose label contains this text")
	return cmd
}
