package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	laborCmd.AddCommand(hourlyRequirementsCmd, weeklySummaryCmd, estimateStaffingCmd)
	rootCmd.AddCommand(laborCmd)
}

var laborCmd = &cobra.Command{
	Use:   "labor",
	Short: "Labor-Standards Bridge: translate demand into picker-hour requirements",
}

var hourlyRequirementsCmd = &cobra.Command{
	Use:   "hourly-requirements STORE_ID DATE",
	Short: "Per-hour required pickers for one day (hourly_requirements)",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		storeID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		date, err := parseDate(args[1])
		if err != nil {
			return err
		}
		result, err := a.bridge.HourlyRequirements(storeID, date)
		if err != nil {
			return err
		}
		return printJSON(result)
	}),
}

var weeklySummaryCmd = &cobra.Command{
	Use:   "weekly-summary STORE_ID MONDAY",
	Short: "Total/average/peak staffing requirements for a week (weekly_summary)",
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
		result, err := a.bridge.WeeklySummaryFor(storeID, monday)
		if err != nil {
			return err
		}
		return printJSON(result)
	}),
}

var estimateStaffingCmd = &cobra.Command{
	Use:   "estimate-staffing STORE_ID DATE",
	Short: "Pickers needed at 8h/9h shift templates for one day (estimate_staffing_for_day)",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		storeID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		date, err := parseDate(args[1])
		if err != nil {
			return err
		}
		result, err := a.bridge.EstimateStaffingForDay(storeID, date)
		if err != nil {
			return err
		}
		return printJSON(result)
	}),
}
