package calorie

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chshwong/calorie-sub012/internal/nutrition"
	"github.com/chshwong/calorie-sub012/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage the food catalog",
}

var (
	foodName        string
	foodBrand       string
	foodServingSize float64
	foodServingUnit string
	foodCalories    float64
	foodProtein     float64
	foodCarbs       float64
	foodFat         float64
	foodSatFat      float64
	foodTransFat    float64
	foodSugar       float64
	foodFiber       float64
	foodSodium      float64
)

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a food to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreateFood(sqldb, service.CreateFoodInput{
				Name:          foodName,
				Brand:         foodBrand,
				ServingSize:   foodServingSize,
				ServingUnit:   foodServingUnit,
				CaloriesKcal:  foodCalories,
				ProteinG:      nullableFlag(cmd, "protein", foodProtein),
				CarbsG:        nullableFlag(cmd, "carbs", foodCarbs),
				FatG:          nullableFlag(cmd, "fat", foodFat),
				SaturatedFatG: nullableFlag(cmd, "saturated-fat", foodSatFat),
				TransFatG:     nullableFlag(cmd, "trans-fat", foodTransFat),
				SugarG:        nullableFlag(cmd, "sugar", foodSugar),
				FiberG:        nullableFlag(cmd, "fiber", foodFiber),
				SodiumMg:      nullableFlag(cmd, "sodium", foodSodium),
				IsCustom:      true,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added food %s\n", id)
			return nil
		})
	},
}

var (
	foodSearchQuery string
	foodSearchLimit int
)

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List foods in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			foods, err := service.SearchFoods(sqldb, foodSearchQuery, foodSearchLimit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tBRAND\tSERVING\tKCAL")
			for _, f := range foods {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%g %s\t%g\n", f.ID, f.Name, f.Brand, f.ServingSize, f.ServingUnit, f.CaloriesKcal)
			}
			return nil
		})
	},
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			foods, err := service.SearchFoods(sqldb, args[0], foodSearchLimit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tBRAND\tSERVING\tKCAL")
			for _, f := range foods {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%g %s\t%g\n", f.ID, f.Name, f.Brand, f.ServingSize, f.ServingUnit, f.CaloriesKcal)
			}
			return nil
		})
	},
}

var foodShowCmd = &cobra.Command{
	Use:   "show <food>",
	Short: "Show a food, its servings, and its default serving",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			food, err := service.ResolveFood(sqldb, args[0])
			if err != nil {
				return err
			}
			servings, err := service.ListServings(sqldb, food.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %s\n", food.ID)
			fmt.Fprintf(out, "Name: %s\n", food.Name)
			if food.Brand != "" {
				fmt.Fprintf(out, "Brand: %s\n", food.Brand)
			}
			fmt.Fprintf(out, "Canonical serving: %g %s\n", food.ServingSize, food.ServingUnit)
			fmt.Fprintf(out, "Calories: %g\n", food.CaloriesKcal)
			fmt.Fprintf(out, "Protein: %s\nCarbs: %s\nFat: %s\n", formatNullable(food.ProteinG), formatNullable(food.CarbsG), formatNullable(food.FatG))
			fmt.Fprintf(out, "Saturated fat: %s\nTrans fat: %s\nSugar: %s\nFiber: %s\nSodium: %s\n",
				formatNullable(food.SaturatedFatG), formatNullable(food.TransFatG), formatNullable(food.SugarG), formatNullable(food.FiberG), formatNullable(food.SodiumMg))

			d := nutrition.ResolveDefaultServing(food, servings)
			fmt.Fprintf(out, "Default: %s\n", nutrition.FormatDefault(d))

			options := nutrition.BuildServingOptions(food, servings)
			fmt.Fprintln(out, "Serving options:")
			for _, o := range options {
				if o.IsSaved() {
					fmt.Fprintf(out, "  %s (saved, id %s)\n", o.Label(), o.Saved.ID)
					continue
				}
				fmt.Fprintf(out, "  %s\n", o.Label())
			}
			return nil
		})
	},
}

var foodUpdateCmd = &cobra.Command{
	Use:   "update <food>",
	Short: "Update a food's nutrition record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			err := service.UpdateFood(sqldb, args[0], service.UpdateFoodInput{
				Name:          foodName,
				Brand:         foodBrand,
				ServingSize:   foodServingSize,
				ServingUnit:   foodServingUnit,
				CaloriesKcal:  foodCalories,
				ProteinG:      nullableFlag(cmd, "protein", foodProtein),
				CarbsG:        nullableFlag(cmd, "carbs", foodCarbs),
				FatG:          nullableFlag(cmd, "fat", foodFat),
				SaturatedFatG: nullableFlag(cmd, "saturated-fat", foodSatFat),
				TransFatG:     nullableFlag(cmd, "trans-fat", foodTransFat),
				SugarG:        nullableFlag(cmd, "sugar", foodSugar),
				FiberG:        nullableFlag(cmd, "fiber", foodFiber),
				SodiumMg:      nullableFlag(cmd, "sodium", foodSodium),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated food %s\n", args[0])
			return nil
		})
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete <food>",
	Short: "Delete a food and its servings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteFood(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted food %s\n", args[0])
			return nil
		})
	},
}

func addFoodFields(cmd *cobra.Command) {
	cmd.Flags().StringVar(&foodName, "name", "", "Food name")
	cmd.Flags().StringVar(&foodBrand, "brand", "", "Brand name")
	cmd.Flags().Float64Var(&foodServingSize, "serving-size", 0, "Canonical serving size")
	cmd.Flags().StringVar(&foodServingUnit, "serving-unit", "", "Canonical serving unit (g, kg, oz, lb, ml, l, fl oz, cup, tbsp, tsp, or an opaque label like slice)")
	cmd.Flags().Float64Var(&foodCalories, "calories", 0, "Calories per canonical serving")
	cmd.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams")
	cmd.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carbs grams")
	cmd.Flags().Float64Var(&foodFat, "fat", 0, "Fat grams")
	cmd.Flags().Float64Var(&foodSatFat, "saturated-fat", 0, "Saturated fat grams")
	cmd.Flags().Float64Var(&foodTransFat, "trans-fat", 0, "Trans fat grams")
	cmd.Flags().Float64Var(&foodSugar, "sugar", 0, "Sugar grams")
	cmd.Flags().Float64Var(&foodFiber, "fiber", 0, "Fiber grams")
	cmd.Flags().Float64Var(&foodSodium, "sodium", 0, "Sodium milligrams")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("serving-size")
	_ = cmd.MarkFlagRequired("serving-unit")
	_ = cmd.MarkFlagRequired("calories")
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddCmd, foodListCmd, foodSearchCmd, foodShowCmd, foodUpdateCmd, foodDeleteCmd, servingCmd)

	addFoodFields(foodAddCmd)
	addFoodFields(foodUpdateCmd)

	foodListCmd.Flags().StringVar(&foodSearchQuery, "query", "", "Filter by name substring")
	foodListCmd.Flags().IntVar(&foodSearchLimit, "limit", 50, "Result limit")
	foodSearchCmd.Flags().IntVar(&foodSearchLimit, "limit", 50, "Result limit")
}
