package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/opsmap/internal/cli/formatter"
	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/tree"
	"github.com/spf13/cobra"
)

func newNodeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage departments and tasks",
	}

	cmd.AddCommand(
		newNodeAddCmd(app),
		newNodeRemoveCmd(app),
		newNodeRenameCmd(app),
		newNodeShowCmd(app),
		newNodeListCmd(app),
	)

	return cmd
}

func newNodeAddCmd(app *App) *cobra.Command {
	var parent string
	var asTask, overwrite bool
	var tf taskFlags

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a department, or a task with --task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			parentPath := parsePath(parent)

			var child *tree.Node
			if asTask || tf.anyChanged(cmd.Flags()) {
				rec := domain.DefaultTaskRecord()
				if err := tf.overlay(cmd.Flags(), &rec); err != nil {
					return err
				}
				child = tree.Task(name, rec)
			} else {
				child = tree.Branch(name)
			}

			m := mapName(cmd, app)
			if err := app.Tree.AddChild(context.Background(), m, parentPath, child, overwrite); err != nil {
				return explainMapError(m, err)
			}

			kind := "department"
			if child.IsTask() {
				kind = "task"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", kind, domain.EncodePath(parentPath.Child(name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent department path, e.g. Headquarters/Accounting (default: top level)")
	cmd.Flags().BoolVar(&asTask, "task", false, "Create a task instead of a department")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing sibling with the same name")
	tf.register(cmd.Flags())
	return cmd
}

func newNodeRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PATH",
		Short: "Remove a node and everything beneath it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := mapName(cmd, app)
			path := parsePath(args[0])
			if err := app.Tree.Delete(context.Background(), m, path); err != nil {
				return explainMapError(m, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", path.String())
			return nil
		},
	}
}

func newNodeRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename PATH NEW_NAME",
		Short: "Rename a node in place",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := mapName(cmd, app)
			path := parsePath(args[0])
			if err := app.Tree.Rename(context.Background(), m, path, args[1]); err != nil {
				return explainMapError(m, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", path.String(), path.Parent().Child(args[1]).String())
			return nil
		},
	}
}

func newNodeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [PATH]",
		Short: "Show a task record or a department summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := mapName(cmd, app)
			store, err := app.Tree.Load(context.Background(), m)
			if err != nil {
				return explainMapError(m, err)
			}
			var path domain.Path
			if len(args) == 1 {
				path = parsePath(args[0])
			}
			out, err := renderNode(store, path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// renderNode formats the task record or department summary at path.
func renderNode(store *tree.Store, path domain.Path) (string, error) {
	n, ok := store.Get(path)
	if !ok {
		return "", fmt.Errorf("node %q: %w", path.String(), tree.ErrNotFound)
	}
	if rec, isTask := n.Record(); isTask {
		return formatter.FormatTaskRecord(path, rec), nil
	}
	r, err := store.Rollup(path)
	if err != nil {
		return "", err
	}
	return formatter.FormatDepartment(path, n, r), nil
}

func newNodeListCmd(app *App) *cobra.Command {
	var pathsOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the org chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := mapName(cmd, app)
			store, err := app.Tree.Load(context.Background(), m)
			if err != nil {
				return explainMapError(m, err)
			}
			if pathsOnly {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPaths(store))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMapTree(m, store))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pathsOnly, "paths", false, "Print one path per line")
	return cmd
}
