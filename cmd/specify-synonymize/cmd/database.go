package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"specifytools/internal/adapters/specifydb"
	"specifytools/internal/adapters/tui"
	"specifytools/internal/application"
	"specifytools/internal/config"
	"specifytools/internal/logging"
)

// resolveDatabase loads connection settings. When no --config was given and the
// default file is missing, the configure form runs on a terminal and its
// answers are saved for later runs.
func resolveDatabase(explicit string) (*config.Database, error) {
	path := explicit
	if path == "" {
		path = config.ConfigPath()
	}

	if config.Exists(path) {
		return config.Load(path)
	}
	if explicit != "" {
		return nil, &application.InputError{Path: explicit, Reason: "config file not found"}
	}
	if os.Getenv("SPECIFY_DATABASE") != "" || os.Getenv("SPECIFY_DSN") != "" {
		return config.Load("")
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return nil, &application.InputError{
			Path:   path,
			Reason: "config file not found; run specify-synonymize configure or pass --config",
		}
	}

	db, err := tui.RunConfigure(config.Database{Driver: config.DefaultDriver, Host: config.DefaultHost}, path)
	if err != nil {
		return nil, err
	}
	if err := config.Save(path, db); err != nil {
		return nil, err
	}
	printer.Success(fmt.Sprintf("Saved connection settings to %s", path))
	return config.Load(path)
}

// openStore resolves settings and connects
func openStore(ctx context.Context, explicit string) (*specifydb.Store, *config.Database, error) {
	db, err := resolveDatabase(explicit)
	if err != nil {
		return nil, nil, err
	}

	store, err := specifydb.Open(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	logging.FromContext(ctx).Info().
		Str("driver", db.Driver).
		Str("database", db.Database).
		Str("host", db.Host).
		Msg("connected")
	return store, db, nil
}
