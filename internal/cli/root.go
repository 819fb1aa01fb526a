package cli

import (
	"github.com/alexanderramin/opsmap/internal/config"
	"github.com/alexanderramin/opsmap/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// App holds the services and terminal hooks used by CLI commands.
type App struct {
	Maps service.MapService
	Tree service.TreeService

	// DefaultMap is used when --map is not given.
	DefaultMap string

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// browser refuse to start otherwise.
	IsInteractive func() bool
	// RunForm runs a huh form to completion.
	RunForm func(*huh.Form) error
	// RunProgram runs a bubbletea model to completion.
	RunProgram func(tea.Model) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runForm(f *huh.Form) error {
	if a.RunForm != nil {
		return a.RunForm(f)
	}
	return f.Run()
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewRootCmd creates the top-level "opsmap" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.DefaultMap == "" {
		app.DefaultMap = config.DefaultMap
	}

	root := &cobra.Command{
		Use:           "opsmap",
		Short:         "Organization chart and operations inventory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("map", "", "Map to operate on (default $OPSMAP_MAP or \""+app.DefaultMap+"\")")

	root.AddCommand(
		newMapCmd(app),
		newNodeCmd(app),
		newTaskCmd(app),
		newGraphCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newBrowseCmd(app),
	)

	return root
}
