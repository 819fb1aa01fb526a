package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/graph"
	"github.com/alexanderramin/opsmap/internal/tree"
	"github.com/spf13/cobra"
)

func newGraphCmd(app *App) *cobra.Command {
	var format, selectID string
	var undirected, flat bool

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the org chart as a node/edge graph",
		Long: `Print the org chart as a node/edge graph. Vertex ids are encoded paths;
--select ID shows the node behind one vertex, as clicking it would.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := mapName(cmd, app)
			store, err := app.Tree.Load(context.Background(), m)
			if err != nil {
				return explainMapError(m, err)
			}
			g := graph.Project(store)

			if selectID != "" {
				v, ok := g.Node(selectID)
				if !ok {
					return fmt.Errorf("vertex %q: %w", selectID, tree.ErrNotFound)
				}
				out, err := renderNode(store, domain.DecodePath(v.ID))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			switch format {
			case "json":
				return graph.WriteJSON(cmd.OutOrStdout(), g)
			case "dot":
				opts := graph.DefaultOptions()
				opts.Directed = !undirected
				opts.Hierarchical = !flat
				return graph.WriteDOT(cmd.OutOrStdout(), g, opts)
			default:
				return fmt.Errorf("unknown format %q (use json or dot)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format (json|dot)")
	cmd.Flags().BoolVar(&undirected, "undirected", false, "Draw edges without direction (dot only)")
	cmd.Flags().StringVar(&selectID, "select", "", "Show the node behind a vertex id instead of the graph")
	cmd.Flags().BoolVar(&flat, "flat", false, "Disable the top-down hierarchical layout (dot only)")
	return cmd
}
