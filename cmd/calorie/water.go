package calorie

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chshwong/calorie-sub012/internal/service"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track water intake",
}

var (
	waterAmount float64
	waterUnit   string
	waterDate   string
	waterTime   string
)

var waterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log water in any volume unit",
	RunE: func(cmd *cobra.Command, args []string) error {
		loggedAt, err := parseDateTimeOrNow(waterDate, waterTime)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddWater(sqldb, service.AddWaterInput{
				Amount:   waterAmount,
				Unit:     waterUnit,
				LoggedAt: loggedAt,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged water %d\n", id)
			return nil
		})
	},
}

var waterListDate string

var waterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a day's water logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateOrToday(waterListDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			logs, err := service.ListWater(sqldb, date)
			if err != nil {
				return err
			}
			total, err := service.WaterTotalML(sqldb, date)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTIME\tML")
			for _, w := range logs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%g\n", w.ID, w.LoggedAt.Local().Format("15:04"), w.AmountML)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %g ml\n", total)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterAddCmd, waterListCmd)

	waterAddCmd.Flags().Float64Var(&waterAmount, "amount", 0, "Amount of water")
	waterAddCmd.Flags().StringVar(&waterUnit, "unit", "ml", "Volume unit (ml, l, fl oz, cup, tbsp, tsp)")
	waterAddCmd.Flags().StringVar(&waterDate, "date", "", "Date in YYYY-MM-DD")
	waterAddCmd.Flags().StringVar(&waterTime, "time", "", "Time in HH:MM")
	_ = waterAddCmd.MarkFlagRequired("amount")

	waterListCmd.Flags().StringVar(&waterListDate, "date", "", "Date YYYY-MM-DD (default today)")
}
