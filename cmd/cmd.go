// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// listCommand runs a channel listing
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "Write a CSV of every video on a channel",
		ArgsUsage: "<channel-url>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "url"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory to save into; the CSV lands in <output>/<channel>/ (defaults to output.default_dir)",
			},
			&cli.BoolFlag{
				Name:  "transient",
				Usage: "Write to a fresh temporary directory instead and print its path",
			},
			&cli.BoolFlag{
				Name:  "stdout",
				Usage: "Print the CSV to stdout and keep no file; the status message goes to the log",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the result as JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
		},
		Action: r.List,
	}
}

// resolveCommand prints the channel name derived from a URL
func resolveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Print the channel name a URL resolves to",
		ArgsUsage: "<channel-url>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "url"},
		},
		Action: r.Resolve,
	}
}

// serveCommand starts the web interface
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the web form and HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to listen on (defaults to server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (defaults to server.port)",
			},
		},
		Action: r.Serve,
	}
}

// historyCommand shows recorded runs
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent listing runs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of runs to show",
				Value:   20,
			},
			&cli.StringFlag{
				Name:  "channel",
				Usage: "Only show runs for this channel name",
			},
			&cli.BoolFlag{
				Name:  "failed",
				Usage: "Only show failed runs",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.History,
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Write a default config file and initialize the history database",
		Action: r.Setup,
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Interactive terminal form",
		Action: r.TUI,
	}
}
