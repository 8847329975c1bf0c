package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/ytlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes the config template if missing and initializes the history database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := r.configPath
	if configPath == "" {
		configPath = "config.toml"
	}

	config := r.config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return err
		}
		if config, err = shared.LoadConfig(configPath); err != nil {
			return fmt.Errorf("failed to load created config: %w", err)
		}
		if err := r.writePlain("Config written to %s\n", configPath); err != nil {
			return err
		}
	}

	if !config.HistoryEnabled() {
		return r.writePlain("History disabled (database.path is empty); nothing else to do.\n")
	}

	r.logger.Info("initializing database", "path", config.Database.Path)
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return r.writePlain("History database ready at %s\n", config.Database.Path)
}
