// Command scheduler is the entrypoint binary wiring configuration,
// persistence, and the CLI command tree together.
package main

import (
	"github.com/pickfloor/scheduler/internal/cli"
)

func main() {
	cli.Execute()
}
