package main

import (
	"context"
	"os"

	"github.com/harish2111/freshchat-migrations/internal/services"
	"github.com/harish2111/freshchat-migrations/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var source, dest *services.Client

	if config.Source.Domain != "" && config.Source.APIToken != "" {
		source = services.NewClient("source", config.Source.Domain, config.Source.APIToken, nil)
		source.SetPageSize(config.Migration.ItemsPerPage)
	}
	if config.Destination.Domain != "" && config.Destination.APIToken != "" {
		dest = services.NewClient("destination", config.Destination.Domain, config.Destination.APIToken, nil)
		dest.SetPageSize(config.Migration.ItemsPerPage)
	}

	opts := RunnerOpts{
		Config: config,
		Logger: logger,
	}
	if source != nil {
		opts.Source = source
		opts.SourceAPI = source
	}
	if dest != nil {
		opts.Dest = dest
		opts.DestAPI = dest
	}

	runner := NewRunner(opts)

	app := &cli.Command{
		Name:     "fcmigrate",
		Usage:    "Migrate contacts & conversations between messaging tenants",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
