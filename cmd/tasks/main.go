// Command tasks runs scheduled maintenance jobs against the shipment
// pipeline database.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	appfba "github.com/stcadmin/backend/internal/application/fba"
	"github.com/stcadmin/backend/internal/infrastructure/amazon"
	"github.com/stcadmin/backend/internal/infrastructure/config"
	"github.com/stcadmin/backend/internal/infrastructure/logger"
	"github.com/stcadmin/backend/internal/infrastructure/persistence"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Scheduled maintenance jobs for the shipment pipeline",
	}
	rootCmd.AddCommand(updateFBAProfitCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func updateFBAProfitCmd() *cobra.Command {
	var (
		feesFile   string
		importDate string
	)

	cmd := &cobra.Command{
		Use:   "update-fba-profit",
		Short: "Rebuild FBA profit snapshots from a fee estimate report",
		Long: `Reads an Amazon fee estimate report and recomputes the profit snapshot
for every listed product against its most recently fulfilled order.
Safe to run multiple times for the same date; re-runs replace the
previous import.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			log, err := logger.New(&logger.Config{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				Output: cfg.Log.Output,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = log.Sync()
			}()

			date := time.Now().Truncate(24 * time.Hour)
			if importDate != "" {
				date, err = time.Parse("2006-01-02", importDate)
				if err != nil {
					return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD: %w", importDate, err)
				}
			}

			db, err := persistence.NewDatabase(&cfg.Database)
			if err != nil {
				log.Error("Error updating FBA profit", zap.Error(err))
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			service := appfba.NewProfitService(
				persistence.NewGormFBAOrderRepository(db.DB),
				persistence.NewGormRegionRepository(db.DB),
				persistence.NewGormProfitRepository(db.DB),
				log,
			)

			count, err := service.UpdateProfit(cmd.Context(), date, amazon.NewFeeReportFile(feesFile))
			if err != nil {
				log.Error("Error updating FBA profit", zap.Error(err))
				return err
			}

			log.Info("FBA profit import complete",
				zap.Time("import_date", date),
				zap.Int("snapshots", count),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&feesFile, "fees-file", "", "Path to the fee estimate report (tab separated)")
	cmd.Flags().StringVar(&importDate, "date", "", "Import date as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("fees-file")

	return cmd
}
