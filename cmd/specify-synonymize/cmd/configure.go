package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"specifytools/internal/adapters/tui"
	"specifytools/internal/application"
	"specifytools/internal/config"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Save database connection settings",
	Long: `Ask for the Specify database name, username, password and host, and save
them as JSON. Existing settings are used as defaults.

Examples:
  specify-synonymize configure
  specify-synonymize configure -c other_config.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.ConfigPath()
		}

		defaults := config.Database{Driver: config.DefaultDriver, Host: config.DefaultHost}
		if config.Exists(path) {
			if existing, err := config.Load(path); err == nil {
				defaults = *existing
			}
		}

		db, err := tui.RunConfigure(defaults, path)
		if errors.Is(err, application.ErrCanceled) {
			printer.Warn("Canceled; nothing saved")
			return nil
		}
		if err != nil {
			return err
		}
		if err := config.Save(path, db); err != nil {
			return err
		}
		printer.Success(fmt.Sprintf("Saved connection settings to %s", path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
}
