package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	approveSwapCmd.Flags().String("approved-by", "", "manager identifier recorded on approval")

	swapCmd.AddCommand(swapCreateCmd, swapAcceptCmd, approveSwapCmd, swapDenyCmd, swapCancelCmd)
	rootCmd.AddCommand(swapCmd)
}

var swapCmd = &cobra.Command{
	Use:   "swap",
	Short: "Shift-swap state machine: create/accept/approve/deny/cancel",
}

var swapCreateCmd = &cobra.Command{
	Use:   "create REQUESTER_SHIFT_ID REQUESTER_EMPLOYEE_ID",
	Short: "Open a swap request for a future shift the requester owns (swap create)",
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
		swap, err := a.lifecycleMgr.CreateSwap(shiftID, employeeID)
		if err != nil {
			return err
		}
		return printJSON(swap)
	}),
}

var swapAcceptCmd = &cobra.Command{
	Use:   "accept SWAP_ID ACCEPTER_SHIFT_ID",
	Short: "Attach an accepting shift to a pending swap (swap accept)",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		swapID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		accepterShiftID, err := parseInt64(args[1])
		if err != nil {
			return err
		}
		swap, err := a.lifecycleMgr.AcceptSwap(swapID, accepterShiftID)
		if err != nil {
			return err
		}
		return printJSON(swap)
	}),
}

var approveSwapCmd = &cobra.Command{
	Use:   "approve SWAP_ID",
	Short: "Approve an accepted swap, exchanging the two shifts' employees (swap approve)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		swapID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		approvedBy, _ := cmd.Flags().GetString("approved-by")
		swap, err := a.lifecycleMgr.ApproveSwap(swapID, approvedBy)
		if err != nil {
			return err
		}
		return printJSON(swap)
	}),
}

var swapDenyCmd = &cobra.Command{
	Use:   "deny SWAP_ID",
	Short: "Deny a pending or accepted swap (swap deny)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		swapID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		swap, err := a.lifecycleMgr.DenySwap(swapID)
		if err != nil {
			return err
		}
		return printJSON(swap)
	}),
}

var swapCancelCmd = &cobra.Command{
	Use:   "cancel SWAP_ID REQUESTER_EMPLOYEE_ID",
	Short: "Cancel a swap; restricted to the requester (swap cancel)",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		swapID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		requesterID, err := parseInt64(args[1])
		if err != nil {
			return err
		}
		swap, err := a.lifecycleMgr.CancelSwap(swapID, requesterID)
		if err != nil {
			return err
		}
		return printJSON(swap)
	}),
}
