package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	assignReplacementCmd.Flags().Bool("force", false, "override the projected-weekly-hours cap")

	calloutCmd.AddCommand(markCalloutCmd, findReplacementsCmd, assignReplacementCmd, revertCalloutCmd)
	rootCmd.AddCommand(calloutCmd)
}

var calloutCmd = &cobra.Command{
	Use:   "callout",
	Short: "Shift Lifecycle: call-outs and replacement selection",
}

var markCalloutCmd = &cobra.Command{
	Use:   "mark SHIFT_ID REASON",
	Short: "Mark a scheduled shift called out (mark_callout)",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		shiftID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		result, err := a.lifecycleMgr.MarkCallout(shiftID, args[1])
		if err != nil {
			return err
		}
		return printJSON(result)
	}),
}

var findReplacementsCmd = &cobra.Command{
	Use:   "find-replacements SHIFT_ID",
	Short: "Rank eligible replacement candidates for a call-out shift (find_replacements)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		shiftID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		candidates, err := a.lifecycleMgr.FindReplacements(shiftID)
		if err != nil {
			return err
		}
		return printJSON(candidates)
	}),
}

var assignReplacementCmd = &cobra.Command{
	Use:   "assign SHIFT_ID EMPLOYEE_ID",
	Short: "Assign a replacement to a call-out shift (assign_replacement)",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		shiftID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		employeeID, err := parseInt64(args[1])
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		result, err := a.lifecycleMgr.AssignReplacement(shiftID, employeeID, force)
		if err != nil {
			return err
		}
		return printJSON(result)
	}),
}

var revertCalloutCmd = &cobra.Command{
	Use:   "revert SHIFT_ID",
	Short: "Revert a called-out shift back to its original employee (revert_callout)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		shiftID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		shift, err := a.lifecycleMgr.RevertCallout(shiftID)
		if err != nil {
			return err
		}
		return printJSON(shift)
	}),
}
