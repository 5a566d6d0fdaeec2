package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	publishCmd.Flags().Bool("force", false, "publish despite compliance warnings")

	scheduleCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule lifecycle: publish",
}

var publishCmd = &cobra.Command{
	Use:   "publish SCHEDULE_ID",
	Short: "Validate and publish a draft schedule (publish)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		scheduleID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		result, err := a.lifecycleMgr.Publish(scheduleID, force)
		if err != nil {
			return err
		}
		return printJSON(result)
	}),
}
