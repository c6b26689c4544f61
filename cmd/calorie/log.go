package calorie

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chshwong/calorie-sub012/internal/service"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log foods eaten",
}

var (
	logServing  string
	logUnit     string
	logQuantity float64
	logMeal     string
	logDate     string
	logTime     string
	logNotes    string
)

var logAddCmd = &cobra.Command{
	Use:   "add <food>",
	Short: "Log a food by serving, unit, or its default",
	Long:  "Log a quantity of a food. Use --serving to log a named serving, --unit to log a raw amount (g, oz, cup, ...), or neither to log the food's default serving.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loggedAt, err := parseDateTimeOrNow(logDate, logTime)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.LogFood(sqldb, service.LogFoodInput{
				Food:     args[0],
				Serving:  logServing,
				Unit:     logUnit,
				Quantity: logQuantity,
				Meal:     logMeal,
				LoggedAt: loggedAt,
				Notes:    logNotes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged entry %d\n", id)
			return nil
		})
	},
}

var (
	logListDate  string
	logListMeal  string
	logListLimit int
)

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List log entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			entries, err := service.ListLogEntries(sqldb, service.ListLogEntriesFilter{
				Date:  logListDate,
				Meal:  logListMeal,
				Limit: logListLimit,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTIME\tMEAL\tFOOD\tQTY\tKCAL\tP\tC\tF")
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%g %s\t%d\t%s\t%s\t%s\n",
					e.ID,
					e.LoggedAt.Local().Format("2006-01-02 15:04"),
					e.Meal,
					e.FoodName,
					e.Quantity,
					e.UnitLabel,
					int(e.CaloriesKcal),
					formatNullable(e.ProteinG),
					formatNullable(e.CarbsG),
					formatNullable(e.FatG),
				)
			}
			return nil
		})
	},
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a log entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("log entry id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteLogEntry(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logAddCmd, logListCmd, logDeleteCmd)

	logAddCmd.Flags().StringVar(&logServing, "serving", "", "Named serving to log (id or name)")
	logAddCmd.Flags().StringVar(&logUnit, "unit", "", "Raw unit to log (g, kg, oz, lb, ml, l, fl oz, cup, tbsp, tsp)")
	logAddCmd.Flags().Float64Var(&logQuantity, "quantity", 0, "Quantity in the chosen serving or unit")
	logAddCmd.Flags().StringVar(&logMeal, "meal", "", "Meal: breakfast, lunch, dinner, or snack")
	logAddCmd.Flags().StringVar(&logDate, "date", "", "Date in YYYY-MM-DD")
	logAddCmd.Flags().StringVar(&logTime, "time", "", "Time in HH:MM")
	logAddCmd.Flags().StringVar(&logNotes, "notes", "", "Optional notes")
	_ = logAddCmd.MarkFlagRequired("meal")

	logListCmd.Flags().StringVar(&logListDate, "date", "", "Filter by date YYYY-MM-DD")
	logListCmd.Flags().StringVar(&logListMeal, "meal", "", "Filter by meal")
	logListCmd.Flags().IntVar(&logListLimit, "limit", 50, "Result limit")
}
