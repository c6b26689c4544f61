package calorie

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chshwong/calorie-sub012/internal/service"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show a day's intake, water, exercise, and goal progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateOrToday(todayDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			summary, err := service.SummarizeDay(sqldb, date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", summary.Date)
			fmt.Fprintf(out, "Intake: %d kcal (%d entries)\n", int(summary.Consumed.CaloriesKcal), len(summary.Entries))
			fmt.Fprintf(out, "Macros: P %s | C %s | F %s\n", formatNullable(summary.Consumed.ProteinG), formatNullable(summary.Consumed.CarbsG), formatNullable(summary.Consumed.FatG))
			fmt.Fprintf(out, "Exercise: %d kcal\n", summary.ExerciseBurn)
			fmt.Fprintf(out, "Water: %g ml\n", summary.WaterML)
			fmt.Fprintf(out, "Net: %d kcal\n", int(summary.NetCalories))
			if summary.Goal != nil {
				fmt.Fprintf(out, "Goal: %d kcal | P %.1fg | C %.1fg | F %.1fg\n", summary.Goal.CaloriesKcal, summary.Goal.ProteinG, summary.Goal.CarbsG, summary.Goal.FatG)
				fmt.Fprintf(out, "Remaining: %d kcal\n", int(*summary.RemainingKcal))
			} else {
				fmt.Fprintln(out, "Goal: not set")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
}
