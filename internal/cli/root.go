// Package cli exposes the §6 external-interface operations as subcommands
// of a single binary, grounded on the teacher's cobra-based command tree
// (internal/cli/agent.go): one root command, nouns as subcommand groups,
// flags for every operation's parameters.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pickfloor/scheduler/internal/compliance"
	"github.com/pickfloor/scheduler/internal/config"
	"github.com/pickfloor/scheduler/internal/forecast"
	"github.com/pickfloor/scheduler/internal/infra/sqlite"
	"github.com/pickfloor/scheduler/internal/laborstandards"
	"github.com/pickfloor/scheduler/internal/lifecycle"
	"github.com/pickfloor/scheduler/internal/optimizer"
	"github.com/pickfloor/scheduler/internal/pipeline"
)

var dbPath string
var configPath string

var rootCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Weekly staff scheduling for order-picking stores",
	Long: `scheduler turns historical order volume into a weekly staff schedule:
forecast demand, derive picker-hour requirements, solve a constrained
shift assignment, validate it against labor rules, and publish it.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "scheduler.db", "path to the SQLite database file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to an optional TOML config file overlaying defaults")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app bundles every wired service a subcommand might need. Built once per
// invocation from --db/--config.
type app struct {
	db             *sqlite.DB
	cfg            config.Config
	forecasts      *forecast.Service
	bridge         *laborstandards.Bridge
	complianceEngine *compliance.Engine
	optimizerSvc   *optimizer.Service
	lifecycleMgr   *lifecycle.Manager
	pipeline       *pipeline.Pipeline
}

// logNotifier is the minimal domain.Notifier used by the CLI: it logs
// rather than delivering, since outbound delivery is out of scope (§1).
type logNotifier struct{}

func (logNotifier) Notify(employeeID int64, message string) {
	fmt.Fprintf(os.Stderr, "[notify] employee=%d: %s\n", employeeID, message)
}

func newApp() (*app, func(), error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	forecasts := forecast.NewService(db, db, db, cfg.Forecast.LookbackWeeks)
	bridge := laborstandards.NewBridge(db, forecasts)
	engine := compliance.NewEngine(db, cfg.Labor)
	optimizerSvc := optimizer.NewService(db, db, db, db, bridge, cfg.Labor)
	lifecycleMgr := lifecycle.NewManager(db, db, db, db, db, engine, logNotifier{}, cfg.Labor)
	pipe := pipeline.New(forecasts, optimizerSvc, db, cfg.Solver)

	a := &app{
		db: db, cfg: cfg, forecasts: forecasts, bridge: bridge,
		complianceEngine: engine, optimizerSvc: optimizerSvc, lifecycleMgr: lifecycleMgr, pipeline: pipe,
	}
	return a, func() { db.Close() }, nil
}
