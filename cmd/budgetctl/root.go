package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"trip_budget/internal/adapters/observability"
	"trip_budget/internal/budget"
	"trip_budget/internal/domain"
	"trip_budget/internal/shared"
	"trip_budget/internal/storage/jsonfile"
	mysqlrepo "trip_budget/internal/storage/mysql"
)

var (
	flagCatalog  string
	flagDSN      string
	flagCompact  bool
	flagReversed bool
)

var rootCmd = &cobra.Command{
	Use:           "budgetctl",
	Short:         "Trip budget predictions from the command line",
	Long:          "Train the budget model on a destination catalog and query it without running the API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	cfg := shared.Load()
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	log.Logger = observability.NewLogger(cfg.AppEnv, level).Output(os.Stderr)

	rootCmd.PersistentFlags().StringVarP(&flagCatalog, "catalog", "c", cfg.CatalogFile, "JSON catalog file (wins over --dsn)")
	rootCmd.PersistentFlags().StringVar(&flagDSN, "dsn", cfg.MySQLDSN, "MySQL DSN to read the catalog from")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "Print single-line JSON")
	rootCmd.PersistentFlags().BoolVar(&flagReversed, "allow-reversed-dates", cfg.AllowReversedDates, "Accept an end date before the start date")
}

// loadPredictor is the shared loading path: read the catalog, train once.
func loadPredictor(ctx context.Context) (*budget.Predictor, error) {
	var reader domain.CatalogReader
	if flagCatalog != "" {
		reader = jsonfile.New(flagCatalog)
	} else {
		db, err := sql.Open("mysql", flagDSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		defer db.Close()
		reader = mysqlrepo.New(db)
	}
	recs, err := reader.ListDestinations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogLoad, err)
	}
	p := budget.New(recs, budget.Options{AllowReversedDates: flagReversed})
	log.Debug().Int("destinations", p.Catalog().Len()).Float64("final_mse", p.Report().FinalMSE).Msg("model trained")
	return p, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if !flagCompact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
