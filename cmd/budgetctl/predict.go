package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"trip_budget/internal/domain"
)

var (
	flagStart string
	flagEnd   string
)

var predictCmd = &cobra.Command{
	Use:     "predict <city>",
	Short:   "Predict a budget breakdown for a trip",
	Example: "  budgetctl predict Paris --start 2024-07-01 --end 2024-07-08 -c catalog.json",
	Args:    cobra.ExactArgs(1),
	RunE:    runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&flagStart, "start", "", "Start date (YYYY-MM-DD)")
	predictCmd.Flags().StringVar(&flagEnd, "end", "", "End date (YYYY-MM-DD)")
	_ = predictCmd.MarkFlagRequired("start")
	_ = predictCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	start, err := time.Parse(time.DateOnly, flagStart)
	if err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	end, err := time.Parse(time.DateOnly, flagEnd)
	if err != nil {
		return fmt.Errorf("--end: %w", err)
	}
	p, err := loadPredictor(cmd.Context())
	if err != nil {
		return err
	}
	pred, err := p.Predict(domain.Trip{DestinationCity: args[0], StartDate: start, EndDate: end})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), pred)
}
