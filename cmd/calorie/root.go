package calorie

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "calorie",
	Short: "calorie tracks food, water, and exercise from your terminal",
	Long:  "calorie is a local-first nutrition tracking CLI with a food catalog, named servings, meal bundles, water and exercise logs, and daily goals.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
