package main

import (
	"fmt"

	"backend-vietrip/internal/catalog"

	"github.com/spf13/cobra"
)

func (a *app) catalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{Use: "catalog", Short: "Inspect the bundled city and place catalog"}

	catalogCmd.AddCommand(&cobra.Command{
		Use:   "cities",
		Short: "List curated cities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printJSON(catalog.Cities())
		},
	})

	catalogCmd.AddCommand(&cobra.Command{
		Use:   "places CITY",
		Short: "List curated places of a city",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := catalog.CityByID(args[0]); !ok {
				return fmt.Errorf("unknown city %q", args[0])
			}
			return a.printJSON(catalog.PlacesByCity(args[0]))
		},
	})

	catalogCmd.AddCommand(&cobra.Command{
		Use:   "search QUERY",
		Short: "Search curated places by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printJSON(catalog.Search(args[0]))
		},
	})

	return catalogCmd
}
