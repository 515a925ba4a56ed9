// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// App builds the root command. Without a subcommand it starts the TUI.
func (r *Runner) App() *cli.Command {
	return &cli.Command{
		Name:    "liftlog",
		Usage:   "Log powerlifting sessions, upload training videos & review your history",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Optional .env file with LIFTLOG_* overrides",
				Value: ".env",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.Configure,
		Action:   r.TUI,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		tuiCommand(r),
		liftsCommand(r),
		videoCommand(r),
		statsCommand(r),
		configCommand(r),
		serveCommand(r),
		apiCommand(r),
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive terminal UI",
		Action: r.TUI,
	}
}

// liftsCommand groups the lift history and log-lift flows
func liftsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "lifts",
		Aliases: []string{"l"},
		Usage:   "Lift history operations",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List logged lifts",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
					},
				},
				Action: r.LiftsList,
			},
			{
				Name:  "log",
				Usage: "Log a single lift",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Lift type (squat, bench, deadlift)",
						Value:   "squat",
					},
					&cli.StringFlag{
						Name:     "weight",
						Aliases:  []string{"w"},
						Usage:    "Weight in kg",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "reps",
						Aliases:  []string{"r"},
						Usage:    "Number of repetitions",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "date",
						Aliases: []string{"d"},
						Usage:   "Date as YYYY-MM-DD (default: today)",
					},
				},
				Action: r.LiftsLog,
			},
			{
				Name:  "export",
				Usage: "Export lift history to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (csv, markdown, txt, json)",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path, - for stdout (default: lifts.{ext})",
					},
				},
				Action: r.LiftsExport,
			},
			{
				Name:  "import",
				Usage: "Import lifts from a CSV file through the log-lift endpoint",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "CSV file with Lift Type, Weight, Reps and optional Date columns",
						Required: true,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Submissions per second (default: import.rate_limit)",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Validate rows without submitting",
					},
				},
				Action: r.LiftsImport,
			},
		},
	}
}

func videoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "video",
		Aliases: []string{"v"},
		Usage:   "Training video operations",
		Commands: []*cli.Command{
			{
				Name:  "upload",
				Usage: "Upload a training video (MP4, AVI, MOV, WMV or WEBM)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "ai",
						Usage: "Request AI analysis (default: upload.enable_ai)",
					},
				},
				Action: r.VideoUpload,
			},
		},
	}
}

func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show dashboard statistics",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Stats,
	}
}

func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file operations",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write the default configuration to --config",
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration as TOML",
				Action: r.ConfigShow,
			},
		},
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the in-memory stub backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (default: server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (default: server.port)",
			},
		},
		Action: r.Serve,
	}
}
