package calorie

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chshwong/calorie-sub012/internal/service"
)

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Manage reusable food bundles",
	Long:  "Bundles group foods eaten together (a recipe or a repeated meal) so they can be logged in one step.",
}

var bundleNotes string

var bundleCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreateBundle(sqldb, args[0], bundleNotes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created bundle %s\n", id)
			return nil
		})
	},
}

var (
	bundleItemServing  string
	bundleItemUnit     string
	bundleItemQuantity float64
)

var bundleAddItemCmd = &cobra.Command{
	Use:   "add-item <bundle> <food>",
	Short: "Add a food to a bundle",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddBundleItem(sqldb, service.AddBundleItemInput{
				Bundle:   args[0],
				Food:     args[1],
				Serving:  bundleItemServing,
				Unit:     bundleItemUnit,
				Quantity: bundleItemQuantity,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added item %d\n", id)
			return nil
		})
	},
}

var bundleRemoveItemCmd = &cobra.Command{
	Use:   "remove-item <bundle> <item-id>",
	Short: "Remove an item from a bundle",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := parseInt64Arg("bundle item id", args[1])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.RemoveBundleItem(sqldb, args[0], itemID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed item %d\n", itemID)
			return nil
		})
	},
}

var bundleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bundles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			bundles, err := service.ListBundles(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tNOTES")
			for _, b := range bundles {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", b.ID, b.Name, b.Notes)
			}
			return nil
		})
	},
}

var bundleShowCmd = &cobra.Command{
	Use:   "show <bundle>",
	Short: "Show a bundle's items and nutrient rollup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			summary, err := service.Summary(sqldb, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Bundle: %s\n", summary.Bundle.Name)
			if summary.Bundle.Notes != "" {
				fmt.Fprintf(out, "Notes: %s\n", summary.Bundle.Notes)
			}
			fmt.Fprintln(out, "Items:")
			for _, item := range summary.Items {
				fmt.Fprintf(out, "  %d\t%s\t%g %s\n", item.ID, item.FoodName, item.Quantity, item.UnitLabel)
			}
			fmt.Fprintf(out, "Total: %d kcal | P %s | C %s | F %s\n",
				int(summary.Nutrients.CaloriesKcal),
				formatNullable(summary.Nutrients.ProteinG),
				formatNullable(summary.Nutrients.CarbsG),
				formatNullable(summary.Nutrients.FatG),
			)
			return nil
		})
	},
}

var (
	bundleLogMeal  string
	bundleLogDate  string
	bundleLogTime  string
	bundleLogNotes string
)

var bundleLogCmd = &cobra.Command{
	Use:   "log <bundle>",
	Short: "Log every item in a bundle as entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loggedAt, err := parseDateTimeOrNow(bundleLogDate, bundleLogTime)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			ids, err := service.LogBundle(sqldb, service.LogBundleInput{
				Bundle:   args[0],
				Meal:     bundleLogMeal,
				LoggedAt: loggedAt,
				Notes:    bundleLogNotes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %d entries\n", len(ids))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(bundleCmd)
	bundleCmd.AddCommand(bundleCreateCmd, bundleAddItemCmd, bundleRemoveItemCmd, bundleListCmd, bundleShowCmd, bundleLogCmd)

	bundleCreateCmd.Flags().StringVar(&bundleNotes, "notes", "", "Optional notes")

	bundleAddItemCmd.Flags().StringVar(&bundleItemServing, "serving", "", "Named serving for the item (id or name)")
	bundleAddItemCmd.Flags().StringVar(&bundleItemUnit, "unit", "", "Raw unit for the item")
	bundleAddItemCmd.Flags().Float64Var(&bundleItemQuantity, "quantity", 1, "Quantity in the chosen serving or unit")

	bundleLogCmd.Flags().StringVar(&bundleLogMeal, "meal", "", "Meal: breakfast, lunch, dinner, or snack")
	bundleLogCmd.Flags().StringVar(&bundleLogDate, "date", "", "Date in YYYY-MM-DD")
	bundleLogCmd.Flags().StringVar(&bundleLogTime, "time", "", "Time in HH:MM")
	bundleLogCmd.Flags().StringVar(&bundleLogNotes, "notes", "", "Optional notes applied to every entry")
	_ = bundleLogCmd.MarkFlagRequired("meal")
}
