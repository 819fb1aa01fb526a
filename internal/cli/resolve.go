package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/repository"
	"github.com/spf13/cobra"
)

// mapName returns the --map flag value, falling back to the app default.
func mapName(cmd *cobra.Command, app *App) string {
	if name, _ := cmd.Flags().GetString("map"); strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	return app.DefaultMap
}

// parsePath decodes a user-supplied path. Surrounding delimiters are
// ignored, so "/Sales/" and "Sales" address the same node; "" and "/" are
// the root.
func parsePath(arg string) domain.Path {
	trimmed := strings.Trim(strings.TrimSpace(arg), domain.PathDelimiter)
	return domain.DecodePath(trimmed)
}

// explainMapError adds a hint when the map itself is missing.
func explainMapError(name string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("map %q not found (create it with: opsmap map create %s --seed): %w", name, name, err)
	}
	return err
}
