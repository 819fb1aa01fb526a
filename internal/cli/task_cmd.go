package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/opsmap/internal/cli/formatter"
	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/tree"
	"github.com/spf13/cobra"
)

// errNotInteractive is returned when a form or the browser is requested
// without a terminal.
var errNotInteractive = errors.New("an interactive terminal is required")

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Edit task records",
	}
	cmd.AddCommand(newTaskEditCmd(app))
	return cmd
}

func newTaskEditCmd(app *App) *cobra.Command {
	var useForm bool
	var tf taskFlags

	cmd := &cobra.Command{
		Use:   "edit PATH",
		Short: "Save a task record; a childless department becomes a task",
		Long: `Save the task record at PATH. Flags overlay the current record and the
whole record is then saved. With --form the record is edited in an
interactive form instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m := mapName(cmd, app)
			path := parsePath(args[0])

			store, err := app.Tree.Load(ctx, m)
			if err != nil {
				return explainMapError(m, err)
			}
			rec, err := currentRecord(store, path)
			if err != nil {
				return err
			}
			if err := tf.overlay(cmd.Flags(), &rec); err != nil {
				return err
			}

			if useForm {
				if !app.interactive() {
					return fmt.Errorf("--form: %w", errNotInteractive)
				}
				values := newTaskFormValues(rec)
				if err := app.runForm(taskForm(path.String(), values)); err != nil {
					return err
				}
				if rec, err = values.record(); err != nil {
					return err
				}
			}

			if err := app.Tree.SaveTask(ctx, m, path, rec); err != nil {
				return explainMapError(m, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskRecord(path, rec))
			return nil
		},
	}

	cmd.Flags().BoolVar(&useForm, "form", false, "Edit the record in an interactive form")
	tf.register(cmd.Flags())
	return cmd
}

// currentRecord returns the record to start editing from: the task's own
// record, or the defaults for a childless department.
func currentRecord(store *tree.Store, path domain.Path) (domain.TaskRecord, error) {
	if path.IsRoot() {
		return domain.TaskRecord{}, tree.ErrRootPath
	}
	n, ok := store.Get(path)
	if !ok {
		return domain.TaskRecord{}, fmt.Errorf("node %q: %w", path.String(), tree.ErrNotFound)
	}
	if rec, isTask := n.Record(); isTask {
		return rec, nil
	}
	if n.Len() > 0 {
		return domain.TaskRecord{}, fmt.Errorf("department %q: %w", path.String(), tree.ErrHasChildren)
	}
	return domain.DefaultTaskRecord(), nil
}
