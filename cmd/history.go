package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/desertthunder/ytlist/internal/models"
	"github.com/desertthunder/ytlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// History prints recent listing runs, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireHistory(); err != nil {
		return err
	}

	limit := cmd.Int("limit")
	if limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", shared.ErrInvalidArgument, limit)
	}

	criteria := map[string]any{"limit": limit}
	if channel := cmd.String("channel"); channel != "" {
		criteria["channel_name"] = channel
	}
	if cmd.Bool("failed") {
		criteria["succeeded"] = false
	}

	runs, err := r.history.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if cmd.Bool("json") {
		out := make([]models.ListingRunJSON, 0, len(runs))
		for _, run := range runs {
			out = append(out, run.JSON())
		}
		return r.writeJSON(out, cmd.Bool("pretty"))
	}

	if len(runs) == 0 {
		return r.writePlain("No runs recorded.\n")
	}

	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tWHEN\tCHANNEL\tMODE\tVIDEOS\tRESULT")
	for _, run := range runs {
		status := "ok"
		if !run.Succeeded() {
			status = string(run.Kind())
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
			run.Sequence(),
			run.CreatedAt().Local().Format("2006-01-02 15:04"),
			orDash(run.ChannelName()),
			run.Mode(),
			run.VideoCount(),
			status,
		)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
