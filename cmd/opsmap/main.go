package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/opsmap/internal/cli"
	"github.com/alexanderramin/opsmap/internal/config"
	"github.com/alexanderramin/opsmap/internal/db"
	"github.com/alexanderramin/opsmap/internal/repository"
	"github.com/alexanderramin/opsmap/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	mapRepo := repository.NewSQLiteMapRepo(database)
	nodeRepo := repository.NewSQLiteNodeRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Maps:       service.NewMapService(mapRepo, uow, observer),
		Tree:       service.NewTreeService(mapRepo, nodeRepo, uow, observer),
		DefaultMap: cfg.Map,
	}

	// Forms and the browser need a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
