package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/casewalk/internal/cli"
	"github.com/alexanderramin/casewalk/internal/config"
	"github.com/alexanderramin/casewalk/internal/db"
	"github.com/alexanderramin/casewalk/internal/repository"
	"github.com/alexanderramin/casewalk/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{}
	closeStore := func() error { return nil }

	app.Bootstrap = func(configPath string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		closeStore = st.close

		opts := []service.ProgressOption{}
		if cfg.Logging.Enabled {
			level, _ := cfg.LogLevel()
			opts = append(opts, service.WithObserver(service.NewLogUseCaseObserver(os.Stderr, level)))
		}

		app.Progress = service.NewProgressService(st.saves, opts...)
		app.History = st.history
		return nil
	}

	app.Interactive = func() bool {
		in, out := os.Stdin.Fd(), os.Stdout.Fd()
		return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
			(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
	}

	rootCmd := cli.NewRootCmd(app)
	err := rootCmd.Execute()
	if cerr := closeStore(); cerr != nil && err == nil {
		err = fmt.Errorf("closing store: %w", cerr)
	}
	return err
}

// store is the opened storage backend. history is nil for backends that
// keep no snapshots.
type store struct {
	saves   repository.SaveRepo
	history repository.SaveHistoryRepo
	close   func() error
}

func openStore(cfg *config.Config) (store, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return store{
			saves: repository.NewFileSaveRepo(cfg.Storage.Path),
			close: func() error { return nil },
		}, nil

	case config.BackendSQLite:
		database, err := db.OpenDB(cfg.Storage.Path)
		if err != nil {
			return store{}, fmt.Errorf("opening database: %w", err)
		}
		uow := db.NewSQLiteUnitOfWork(database)
		repo := repository.NewSQLiteSaveRepo(uow, cfg.Storage.RecordKey, cfg.Storage.HistoryLimit)
		return store{saves: repo, history: repo, close: database.Close}, nil

	default:
		return store{}, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
