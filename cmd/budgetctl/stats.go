package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trip_budget/internal/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats <city>",
	Short: "Show catalog statistics for one destination",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

var compareCmd = &cobra.Command{
	Use:   "compare <city> [city...]",
	Short: "Compare destinations, cheapest first",
	Long:  "Compare destinations by average daily cost. Unknown names are skipped.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(statsCmd, compareCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	p, err := loadPredictor(cmd.Context())
	if err != nil {
		return err
	}
	cs := p.CityStatistics(args[0])
	if cs == nil {
		return fmt.Errorf("%w: %q", domain.ErrDestinationNotFound, args[0])
	}
	return printJSON(cmd.OutOrStdout(), cs)
}

func runCompare(cmd *cobra.Command, args []string) error {
	p, err := loadPredictor(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), p.CompareCities(args))
}
