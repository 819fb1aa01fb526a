package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the process-level settings of the opsmap binary.
type Config struct {
	// DBPath is the SQLite file. ":memory:" keeps everything in process.
	DBPath string
	// Map is the map used when --map is not given.
	Map string
	// LogUseCases enables structured use-case logging on stderr.
	LogUseCases bool
}

const DefaultMap = "default"

// DefaultConfig returns the defaults rooted at home.
func DefaultConfig(home string) Config {
	return Config{
		DBPath: filepath.Join(home, ".opsmap", "opsmap.db"),
		Map:    DefaultMap,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset values. The home directory is only needed when
// OPSMAP_DB is unset.
func Load() (Config, error) {
	var cfg Config
	if v := strings.TrimSpace(os.Getenv("OPSMAP_DB")); v != "" {
		cfg = DefaultConfig("")
		cfg.DBPath = v
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg = DefaultConfig(home)
	}

	if v := strings.TrimSpace(os.Getenv("OPSMAP_MAP")); v != "" {
		cfg.Map = v
	}
	if v := os.Getenv("OPSMAP_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	return cfg, nil
}
