package calorie

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chshwong/calorie-sub012/internal/service"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage daily nutrition goals",
}

var (
	goalCalories      int
	goalProtein       float64
	goalCarbs         float64
	goalFat           float64
	goalEffectiveDate string
)

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the daily goal from an effective date",
	Long:  "Goals are versioned by effective date: setting a goal starts a new version from that date without rewriting history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			err := service.SetGoal(sqldb, service.SetGoalInput{
				CaloriesKcal:  goalCalories,
				ProteinG:      goalProtein,
				CarbsG:        goalCarbs,
				FatG:          goalFat,
				EffectiveDate: goalEffectiveDate,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Goal set")
			return nil
		})
	},
}

var goalShowDate string

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the goal in effect on a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateOrToday(goalShowDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			goal, err := service.GoalForDate(sqldb, date)
			if err != nil {
				return err
			}
			if goal == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No goal set")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Effective: %s\n", goal.EffectiveDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Calories: %d\n", goal.CaloriesKcal)
			fmt.Fprintf(cmd.OutOrStdout(), "Protein: %.1f\nCarbs: %.1f\nFat: %.1f\n", goal.ProteinG, goal.CarbsG, goal.FatG)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd, goalShowCmd)

	goalSetCmd.Flags().IntVar(&goalCalories, "calories", 0, "Daily calorie target")
	goalSetCmd.Flags().Float64Var(&goalProtein, "protein", 0, "Daily protein grams")
	goalSetCmd.Flags().Float64Var(&goalCarbs, "carbs", 0, "Daily carb grams")
	goalSetCmd.Flags().Float64Var(&goalFat, "fat", 0, "Daily fat grams")
	goalSetCmd.Flags().StringVar(&goalEffectiveDate, "effective", "", "Effective date YYYY-MM-DD (default today)")
	_ = goalSetCmd.MarkFlagRequired("calories")

	goalShowCmd.Flags().StringVar(&goalShowDate, "date", "", "Date YYYY-MM-DD (default today)")
}
