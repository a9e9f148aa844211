package cli

import (
	"fmt"

	"github.com/alexanderramin/casewalk/internal/repository"
	"github.com/alexanderramin/casewalk/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services used by CLI commands.
type App struct {
	Progress service.ProgressService
	// History is nil when the configured backend keeps no snapshots.
	History repository.SaveHistoryRepo

	// Interactive reports whether stdin and stdout are a terminal. Prompts and
	// the chapter picker are only offered when it returns true.
	Interactive func() bool

	// Bootstrap fills in Progress and History from the config file named by
	// --config. It runs once before the first subcommand and is skipped when
	// Progress is already set.
	Bootstrap func(configPath string) error
}

func (a *App) interactive() bool {
	return a.Interactive != nil && a.Interactive()
}

// NewRootCmd creates the top-level "casewalk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "casewalk",
		Short:         "Clinical case walkthrough progress tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipBootstrap(cmd) || app.Progress != nil || app.Bootstrap == nil {
				return nil
			}
			if err := app.Bootstrap(configPath); err != nil {
				return err
			}
			if app.Progress == nil {
				return fmt.Errorf("progress store not configured")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file path")

	root.AddCommand(
		newPlayerCmd(app),
		newChapterCmd(app),
		newScoreCmd(app),
		newSelectCmd(app),
		newHistoryCmd(app),
		newConfigCmd(&configPath),
	)

	return root
}
