package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/opsmap/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newMapCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Manage org maps",
	}

	cmd.AddCommand(
		newMapCreateCmd(app),
		newMapListCmd(app),
		newMapRemoveCmd(app),
	)

	return cmd
}

func newMapCreateCmd(app *App) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.Maps.Create(context.Background(), args[0], seed)
			if err != nil {
				return err
			}
			suffix := ""
			if seed {
				suffix = " with the starter hierarchy"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created map %s%s\n", m.Name, suffix)
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Start from the Headquarters starter hierarchy")
	return cmd
}

func newMapListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List maps",
		RunE: func(cmd *cobra.Command, args []string) error {
			maps, err := app.Maps.List(context.Background())
			if err != nil {
				return err
			}
			if len(maps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No maps found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMapList(maps, mapName(cmd, app)))
			return nil
		},
	}
}

func newMapRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Delete a map and its whole tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Maps.Delete(context.Background(), args[0]); err != nil {
				return explainMapError(args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed map %s\n", args[0])
			return nil
		},
	}
}
