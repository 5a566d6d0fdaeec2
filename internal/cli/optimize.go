package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pickfloor/scheduler/internal/pipeline"
)

func init() {
	optimizeCmd.Flags().Int("timeout", 60, "solve time budget in seconds")
	optimizeCmd.Flags().Float64("min-coverage", 80, "minimum acceptable demand coverage percent")

	generateCmd.Flags().Int("timeout", 60, "solve time budget in seconds")
	generateCmd.Flags().Float64("min-coverage", 80, "minimum acceptable demand coverage percent")
	generateCmd.Flags().String("created-by", "cli", "attribution for the generated draft schedule")

	optimizerCmd.AddCommand(optimizeCmd, templatesCmd)
	rootCmd.AddCommand(optimizerCmd, generateCmd)
}

var optimizerCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Constraint Optimizer: solve a weekly shift assignment",
}

var optimizeCmd = &cobra.Command{
	Use:   "run STORE_ID MONDAY",
	Short: "Solve a weekly shift assignment without persisting it (optimize)",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		storeID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		monday, err := parseDate(args[1])
		if err != nil {
			return err
		}
		timeout, _ := cmd.Flags().GetInt("timeout")
		minCoverage, _ := cmd.Flags().GetFloat64("min-coverage")

		result, err := a.optimizerSvc.Optimize(context.Background(), a.db, storeID, monday, timeout, minCoverage, nil, nil)
		if err != nil {
			return err
		}
		return printJSON(result)
	}),
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the fixed shift-template catalog (shift_templates)",
	Args:  cobra.NoArgs,
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		return printJSON(a.optimizerSvc.ShiftTemplates())
	}),
}

var generateCmd = &cobra.Command{
	Use:   "generate STORE_ID MONDAY",
	Short: "Run the full forecast -> requirements -> solve -> apply pipeline for one week",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		storeID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		monday, err := parseDate(args[1])
		if err != nil {
			return err
		}
		timeout, _ := cmd.Flags().GetInt("timeout")
		minCoverage, _ := cmd.Flags().GetFloat64("min-coverage")
		createdBy, _ := cmd.Flags().GetString("created-by")

		result, err := a.pipeline.Generate(context.Background(), storeID, monday, pipeline.GenerateOptions{
			TimeoutSeconds: timeout, MinCoveragePercent: minCoverage, CreatedBy: createdBy,
		})
		if err != nil {
			return err
		}
		fmt.Printf("schedule %d: %d shifts, %.1f%% coverage (%s)\n",
			result.ScheduleID, len(result.Shifts), result.OptimizeResult.CoveragePercent, result.OptimizeResult.Status)
		return printJSON(result)
	}),
}
