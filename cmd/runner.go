package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlist/internal/repositories"
	"github.com/desertthunder/ytlist/internal/services"
	"github.com/desertthunder/ytlist/internal/shared"
	"github.com/desertthunder/ytlist/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	lister     services.Lister
	injected   bool // lister supplied by the caller, kept across reconfiguration
	db         *sql.DB
	history    *repositories.ListingRepository
	pipeline   *tasks.ListingPipeline
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Lister     services.Lister // defaults to yt-dlp as configured
	DB         *sql.DB         // history database; opened from config on demand when nil
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		lister:     opts.Lister,
		injected:   opts.Lister != nil,
		db:         opts.DB,
	}
	if r.db != nil {
		r.history = repositories.NewListingRepository(r.db)
	}
	r.wire()
	return r
}

// SetLogger swaps the logger used by the runner and everything it builds.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.wire()
}

// Close releases the history database, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db, r.history = nil, nil
	return err
}

// wire rebuilds the lister and pipeline from the current config.
func (r *Runner) wire() {
	if !r.injected {
		r.lister = services.NewYtdlpLister(services.YtdlpOpts{
			Path:       r.config.Tool.Path,
			Timeout:    r.config.Tool.Timeout,
			HideWindow: r.config.Tool.HideWindow,
			ExtraArgs:  r.config.Tool.ExtraArgs,
			Logger:     r.logger,
		})
	}

	opts := tasks.PipelineOpts{
		Lister:        r.lister,
		TransientRoot: r.config.Output.TransientRoot(),
		Logger:        r.logger,
	}
	if r.history != nil {
		opts.Recorder = r.history
	}
	r.pipeline = tasks.NewListingPipeline(opts)
}

// configure is the root Before hook: it loads the config named by --config (defaults when the file is
// missing), applies the log level and opens run history.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	r.configPath = path

	config, err := shared.LoadConfigOrDefault(path)
	if err != nil {
		return ctx, err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		r.logger.Debug("config file not found, using defaults", "path", path)
	}
	r.config = config

	level := r.config.Log.Level
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	if err := shared.SetLogLevel(r.logger, level); err != nil {
		return ctx, err
	}

	if r.db == nil && r.config.HistoryEnabled() {
		db, err := shared.OpenHistory(r.config.Database)
		if err != nil {
			r.logger.Warn("run history unavailable", "path", r.config.Database.Path, "error", err)
		} else {
			r.db = db
			r.history = repositories.NewListingRepository(db)
		}
	}

	r.wire()
	return ctx, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		listCommand, resolveCommand, serveCommand, historyCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "ytlist",
		Usage:   "List every video of a YouTube channel into a CSV file",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Before:   r.configure,
		Commands: r.register(),
	}
}

// requireHistory reports why run history cannot be used, if it cannot.
func (r *Runner) requireHistory() error {
	switch {
	case r.history != nil:
		return nil
	case !r.config.HistoryEnabled():
		return fmt.Errorf("%w: database.path is empty", shared.ErrHistoryDisabled)
	default:
		return fmt.Errorf("%w: could not open %s", shared.ErrHistoryDisabled, r.config.Database.Path)
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
