package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	complianceCmd.AddCommand(validateScheduleCmd, employeeStatusCmd)
	rootCmd.AddCommand(complianceCmd)
}

var complianceCmd = &cobra.Command{
	Use:   "compliance",
	Short: "Compliance Engine: validate shifts and schedules against labor rules",
}

var validateScheduleCmd = &cobra.Command{
	Use:   "validate-schedule SCHEDULE_ID",
	Short: "Validate every shift in a schedule (validate_schedule)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		scheduleID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		shifts, err := a.db.ShiftsForSchedule(scheduleID)
		if err != nil {
			return err
		}
		result, err := a.complianceEngine.ValidateSchedule(shifts)
		if err != nil {
			return err
		}
		return printJSON(result)
	}),
}

var employeeStatusCmd = &cobra.Command{
	Use:   "employee-status EMPLOYEE_ID MONDAY",
	Short: "An employee's hours/days standing for a week (employee_status)",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		employeeID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		monday, err := parseDate(args[1])
		if err != nil {
			return err
		}
		status, err := a.complianceEngine.EmployeeStatus(employeeID, monday)
		if err != nil {
			return err
		}
		return printJSON(status)
	}),
}
