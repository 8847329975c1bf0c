package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/desertthunder/ytlist/internal/server"
	"github.com/desertthunder/ytlist/internal/shared"
	"github.com/desertthunder/ytlist/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Serve starts the HTTP interface and the transient sweeper, and blocks until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	addr := r.config.Server.Addr()
	if cmd.IsSet("host") || cmd.IsSet("port") {
		host, port := r.config.Server.Host, r.config.Server.Port
		if cmd.IsSet("host") {
			host = cmd.String("host")
		}
		if cmd.IsSet("port") {
			port = cmd.Int("port")
		}
		if port <= 0 || port > 65535 {
			return fmt.Errorf("%w: port %d out of range", shared.ErrInvalidArgument, port)
		}
		addr = net.JoinHostPort(host, strconv.Itoa(port))
	}

	root := r.pipeline.TransientRoot()
	retention := r.config.Output.Retention

	sweeper := tasks.NewSweeper(root, retention, r.logger)
	if n, err := sweeper.Sweep(); err != nil {
		r.logger.Warn("initial transient sweep failed", "error", err)
	} else if n > 0 {
		r.logger.Info("removed stale transient entries", "count", n)
	}
	if err := sweeper.Start(r.config.Output.SweepInterval); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		sweeper.Stop(stopCtx)
	}()

	opts := server.Options{
		Pipeline:  r.pipeline,
		Artifacts: tasks.NewArtifactStore(root, retention, r.logger),
		Logger:    r.logger,
		RateLimit: r.config.Server.RateLimit,
		Burst:     r.config.Server.Burst,
	}
	if r.history != nil {
		opts.History = r.history
	}

	srv, err := server.New(addr, opts)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := r.writePlain("Serving on http://%s (Ctrl+C to stop)\n", addr); err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}
