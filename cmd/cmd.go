// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func platformFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "platform",
		Aliases: []string{"p"},
		Usage:   "Tenant to target (source or destination)",
		Value:   "source",
	}
}

// setupCommand initializes the local database and configuration
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize database and run migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.SetupDatabase,
	}
}

// migrateCommand handles migration runs
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate contacts and conversations to the destination tenant",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Migrate every contact in the roster",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "roster",
						Usage: "Roster file listing contacts to migrate (.xlsx or .csv)",
					},
					&cli.StringFlag{
						Name:  "registry",
						Usage: "Registry file recording migrated contacts (.xlsx or .csv)",
					},
				},
				Action: r.MigrateRun,
			},
			{
				Name:  "user",
				Usage: "Migrate a single contact from the roster",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "alias",
						Usage:    "Source alias of the contact to migrate",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "roster",
						Usage: "Roster file listing contacts to migrate (.xlsx or .csv)",
					},
					&cli.StringFlag{
						Name:  "registry",
						Usage: "Registry file recording migrated contacts (.xlsx or .csv)",
					},
				},
				Action: r.MigrateUser,
			},
		},
	}
}

// directoryCommand inspects tenant directories
func directoryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "directory",
		Aliases: []string{"dir"},
		Usage:   "Inspect tenant agent and channel directories",
		Commands: []*cli.Command{
			{
				Name:  "agents",
				Usage: "List the agent directory of a tenant",
				Flags: []cli.Flag{
					platformFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.DirectoryAgents,
			},
			{
				Name:  "channels",
				Usage: "List the channels of a tenant",
				Flags: []cli.Flag{
					platformFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.DirectoryChannels,
			},
			{
				Name:   "map",
				Usage:  "Show how source agents map onto destination agents",
				Action: r.DirectoryMap,
			},
		},
	}
}

// registryCommand inspects migration bookkeeping
func registryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "registry",
		Aliases: []string{"reg"},
		Usage:   "Inspect the migration registry and run ledger",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the registry of migrated contacts",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "registry",
						Usage: "Registry file to read (.xlsx or .csv)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.RegistryShow,
			},
			{
				Name:  "runs",
				Usage: "List recorded migration runs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter by run status (pending, running, completed, failed)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.RegistryRuns,
			},
		},
	}
}

// apiCommand handles direct tenant API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to a tenant",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to a tenant API, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					platformFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					platformFlag(),
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// tuiCommand launches the interactive terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Interactive migration workflow",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "roster",
				Usage: "Roster file listing contacts to migrate (.xlsx or .csv)",
			},
			&cli.StringFlag{
				Name:  "registry",
				Usage: "Registry file recording migrated contacts (.xlsx or .csv)",
			},
		},
		Action: r.TUI,
	}
}
