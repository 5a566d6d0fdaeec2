package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// cmdOut is where subcommands write their JSON output; swappable in tests.
var cmdOut = os.Stdout

// withApp adapts a function needing a wired app into a cobra RunE,
// opening and closing the database around each invocation.
func withApp(fn func(a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := newApp()
		if err != nil {
			return err
		}
		defer closeFn()
		return fn(a, cmd, args)
	}
}
