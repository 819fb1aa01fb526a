package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the map as a nested JSON tree file",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := mapName(cmd, app)
			if out == "" || out == "-" {
				if err := app.Tree.Export(context.Background(), m, cmd.OutOrStdout()); err != nil {
					return explainMapError(m, err)
				}
				return nil
			}

			// Render fully before touching the file so a failed export keeps it.
			var buf bytes.Buffer
			if err := app.Tree.Export(context.Background(), m, &buf); err != nil {
				return explainMapError(m, err)
			}
			if err := writeFileAtomic(out, buf.Bytes()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported map %s to %s\n", m, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load a JSON tree file into the map",
		Long: `Load a nested JSON tree file into the map, creating the map if needed.
A map that already holds nodes is only replaced with --replace. Files
written by the original prototype, with Japanese field names, are
accepted. Use "-" to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := mapName(cmd, app)
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}

			res, err := app.Tree.Import(context.Background(), m, r, replace)
			if err != nil {
				return err
			}
			verb := "Imported"
			switch {
			case res.Created:
				verb = "Created map " + res.Map.Name + " and imported"
			case res.Replaced:
				verb = "Replaced map " + res.Map.Name + " with"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d departments and %d tasks\n", verb, res.BranchCount, res.TaskCount)
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace a map that already holds nodes")
	return cmd
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
