package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/leadtime/internal/cli"
	"github.com/alexanderramin/leadtime/internal/config"
	"github.com/alexanderramin/leadtime/internal/db"
	"github.com/alexanderramin/leadtime/internal/repository"
	"github.com/alexanderramin/leadtime/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.MustConfig()
	log := setupLogger(cfg.Env, cfg.LogLevel)

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	programRepo := repository.NewSQLiteProgramRepo(database)
	partRepo := repository.NewSQLitePartRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	observer := service.NewSlogUseCaseObserver(log)

	app := &cli.App{
		Programs: service.NewProgramService(programRepo, uow),
		Parts:    service.NewPartService(partRepo, uow),
		Schedule: service.NewScheduleService(programRepo, partRepo, policy, log, observer),
		Import:   service.NewImportService(uow, observer),
		Config:   cfg,
		Logger:   log,
	}

	// Detect interactive terminal for prompts and the timeline viewer.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// setupLogger writes to stderr so command output on stdout stays clean.
// Local runs get readable text, dev and prod get JSON.
func setupLogger(env, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	var handler slog.Handler
	switch env {
	case config.EnvDev:
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	case config.EnvProd:
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	default:
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	}
	return slog.New(handler)
}
