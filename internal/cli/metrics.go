package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pickfloor/scheduler/internal/infra/observability"
)

func init() {
	rootCmd.AddCommand(metricsCmd)
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print a Prometheus text-format snapshot of process metrics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := observability.Snapshot()
		if err != nil {
			return err
		}
		fmt.Fprint(cmdOut, text)
		return nil
	},
}
