package calorie

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chshwong/calorie-sub012/internal/provider/fitbit"
	"github.com/chshwong/calorie-sub012/internal/service"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Track exercise and calorie burn",
}

var (
	exerciseType     string
	exerciseCalories int
	exerciseDuration int
	exerciseDate     string
	exerciseTime     string
	exerciseNotes    string
)

var exerciseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log an exercise session",
	RunE: func(cmd *cobra.Command, args []string) error {
		performedAt, err := parseDateTimeOrNow(exerciseDate, exerciseTime)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			in := service.AddExerciseInput{
				ExerciseType:   exerciseType,
				CaloriesBurned: exerciseCalories,
				PerformedAt:    performedAt,
				Notes:          exerciseNotes,
			}
			if cmd.Flags().Changed("duration") {
				in.DurationMin = &exerciseDuration
			}
			id, err := service.AddExercise(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged exercise %d\n", id)
			return nil
		})
	},
}

var exerciseListDate string

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a day's exercise logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateOrToday(exerciseListDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			logs, err := service.ListExercise(sqldb, date)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTIME\tTYPE\tKCAL\tMIN\tSOURCE")
			for _, e := range logs {
				duration := "-"
				if e.DurationMin != nil {
					duration = fmt.Sprintf("%d", *e.DurationMin)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d\t%s\t%s\n", e.ID, e.PerformedAt.Local().Format("15:04"), e.ExerciseType, e.CaloriesBurned, duration, e.Source)
			}
			return nil
		})
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an exercise log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("exercise log id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteExercise(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted exercise %d\n", id)
			return nil
		})
	},
}

var (
	fitbitToken string
	fitbitDays  int
)

var exerciseSyncFitbitCmd = &cobra.Command{
	Use:   "sync-fitbit",
	Short: "Pull daily activity summaries from Fitbit",
	Long:  "Fetches Fitbit daily activity summaries for the trailing window and records one exercise log per day. Re-running refreshes existing days instead of duplicating them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := fitbit.NewClient(fitbitToken)
		return withDB(func(sqldb *sql.DB) error {
			result, err := service.SyncFitbit(cmd.Context(), sqldb, client, service.SyncFitbitInput{Days: fitbitDays})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d days, skipped %d\n", result.Synced, result.Skipped)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseAddCmd, exerciseListCmd, exerciseDeleteCmd, exerciseSyncFitbitCmd)

	exerciseAddCmd.Flags().StringVar(&exerciseType, "type", "", "Exercise type, e.g. running")
	exerciseAddCmd.Flags().IntVar(&exerciseCalories, "calories", 0, "Calories burned")
	exerciseAddCmd.Flags().IntVar(&exerciseDuration, "duration", 0, "Duration in minutes")
	exerciseAddCmd.Flags().StringVar(&exerciseDate, "date", "", "Date in YYYY-MM-DD")
	exerciseAddCmd.Flags().StringVar(&exerciseTime, "time", "", "Time in HH:MM")
	exerciseAddCmd.Flags().StringVar(&exerciseNotes, "notes", "", "Optional notes")
	_ = exerciseAddCmd.MarkFlagRequired("type")
	_ = exerciseAddCmd.MarkFlagRequired("calories")

	exerciseListCmd.Flags().StringVar(&exerciseListDate, "date", "", "Date YYYY-MM-DD (default today)")

	exerciseSyncFitbitCmd.Flags().StringVar(&fitbitToken, "token", "", "Fitbit API access token")
	exerciseSyncFitbitCmd.Flags().IntVar(&fitbitDays, "days", 1, "Number of trailing days to sync (max 31)")
	_ = exerciseSyncFitbitCmd.MarkFlagRequired("token")
}
