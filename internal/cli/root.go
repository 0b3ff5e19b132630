package cli

import (
	"github.com/alexanderramin/growthmap/internal/catalog"
	"github.com/alexanderramin/growthmap/internal/config"
	"github.com/spf13/cobra"
)

// App holds the configuration and hooks used by CLI commands.
type App struct {
	Config *config.Config

	// Starter runs when "Start lesson" is pressed. Optional.
	Starter LessonStarter

	// IsInteractive reports whether stdin is a terminal. When false the map
	// is printed once instead of starting the TUI.
	IsInteractive func() bool

	// OpenSource overrides catalog selection; tests use it to inject lessons.
	OpenSource func(catalogPath, dbPath string) (catalog.Source, func() error, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) openSource() (catalog.Source, func() error, error) {
	open := a.OpenSource
	if open == nil {
		open = catalog.Open
	}
	return open(a.Config.CatalogPath, a.Config.DBPath)
}

// NewRootCmd creates the top-level "growthmap" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.Config == nil {
		app.Config = &config.Config{}
	}

	root := &cobra.Command{
		Use:           "growthmap",
		Short:         "Walk your lesson growth map",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.Config.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(cmd, app, 0)
		},
	}
	app.Config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newShowCmd(app),
		newLessonsCmd(app),
		newCatalogCmd(app),
	)

	return root
}
