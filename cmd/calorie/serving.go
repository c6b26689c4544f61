package calorie

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chshwong/calorie-sub012/internal/service"
)

var servingCmd = &cobra.Command{
	Use:   "serving",
	Short: "Manage a food's named servings",
}

var (
	servingName      string
	servingWeight    float64
	servingVolume    float64
	servingSortOrder int64
	servingDefault   bool
)

var servingAddCmd = &cobra.Command{
	Use:   "add <food>",
	Short: "Add a named serving to a food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			in := service.AddServingInput{
				Food:        args[0],
				ServingName: servingName,
				IsDefault:   servingDefault,
			}
			if cmd.Flags().Changed("weight") {
				in.WeightG = &servingWeight
			}
			if cmd.Flags().Changed("volume") {
				in.VolumeML = &servingVolume
			}
			if cmd.Flags().Changed("sort-order") {
				in.SortOrder = &servingSortOrder
			}
			id, err := service.AddServing(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added serving %s\n", id)
			return nil
		})
	},
}

var servingListCmd = &cobra.Command{
	Use:   "list <food>",
	Short: "List a food's named servings",
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
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tWEIGHT_G\tVOLUME_ML\tDEFAULT")
			for _, s := range servings {
				def := ""
				if s.IsDefault {
					def = "yes"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", s.ID, s.ServingName, formatNullable(s.WeightG), formatNullable(s.VolumeML), def)
			}
			return nil
		})
	},
}

var servingSetDefaultCmd = &cobra.Command{
	Use:   "set-default <food> <serving>",
	Short: "Mark a serving as the food's default",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetDefaultServing(sqldb, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default serving for %s is now %s\n", args[0], args[1])
			return nil
		})
	},
}

var servingDeleteCmd = &cobra.Command{
	Use:   "delete <food> <serving>",
	Short: "Delete a named serving",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteServing(sqldb, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted serving %s\n", args[1])
			return nil
		})
	},
}

func init() {
	servingCmd.AddCommand(servingAddCmd, servingListCmd, servingSetDefaultCmd, servingDeleteCmd)

	servingAddCmd.Flags().StringVar(&servingName, "name", "", "Serving name, e.g. \"1 slice\"")
	servingAddCmd.Flags().Float64Var(&servingWeight, "weight", 0, "Serving weight in grams")
	servingAddCmd.Flags().Float64Var(&servingVolume, "volume", 0, "Serving volume in millilitres")
	servingAddCmd.Flags().Int64Var(&servingSortOrder, "sort-order", 0, "Display sort order")
	servingAddCmd.Flags().BoolVar(&servingDefault, "default", false, "Make this the food's default serving")
	_ = servingAddCmd.MarkFlagRequired("name")
}
