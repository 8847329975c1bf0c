package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/desertthunder/ytlist/internal/formatter"
	"github.com/desertthunder/ytlist/internal/models"
	"github.com/desertthunder/ytlist/internal/shared"
	"github.com/desertthunder/ytlist/internal/tasks"
	"github.com/urfave/cli/v3"
)

// List runs the listing pipeline for one channel URL.
//
// The status message is always printed (logged with --stdout); a failed listing returns [shared.ErrListingFailed].
// With --stdout the CSV itself is printed, the listing runs in transient mode and its folder is removed afterwards.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	toStdout := cmd.Bool("stdout")
	if toStdout && cmd.Bool("json") {
		return fmt.Errorf("%w: --stdout and --json are mutually exclusive", shared.ErrInvalidArgument)
	}

	mode := models.ModeSave
	if cmd.Bool("transient") || toStdout {
		mode = models.ModeTransient
	}

	dest := cmd.String("output")
	if dest == "" {
		dest = r.config.Output.DefaultDir
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := r.pipeline.Run(ctx, tasks.ListingRequest{
		ChannelURL:     cmd.StringArg("url"),
		DestinationDir: dest,
		Mode:           mode,
	})

	var err error
	switch {
	case toStdout:
		err = r.writeCSV(result)
	case cmd.Bool("json"):
		err = r.writeJSON(result, cmd.Bool("pretty"))
	default:
		err = r.writePlain("%s\n", result.StatusMessage)
		if err == nil && result.ArtifactPath != "" {
			err = r.writePlain("%s\n", result.ArtifactPath)
		}
	}
	if err != nil {
		return err
	}

	if !result.OK() {
		return fmt.Errorf("%w: %s", shared.ErrListingFailed, result.Kind)
	}
	return nil
}

// writeCSV prints a transient listing's records as CSV and removes its folder.
func (r *Runner) writeCSV(result models.ListingResult) error {
	if !result.OK() {
		r.logger.Error(result.StatusMessage)
		return nil
	}
	r.logger.Info(result.StatusMessage)

	defer func() {
		if err := os.RemoveAll(filepath.Dir(result.ArtifactPath)); err != nil {
			r.logger.Warn("failed to remove transient folder", "path", result.ArtifactPath, "error", err)
		}
	}()

	data, err := formatter.ExportVideosToCSV(result.Records)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Resolve prints the channel name a URL resolves to.
func (r *Runner) Resolve(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: channel URL", shared.ErrMissingArgument)
	}

	name, ok := r.pipeline.Resolve(url)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrNameExtraction, url)
	}
	return r.writePlain("%s\n", name)
}
