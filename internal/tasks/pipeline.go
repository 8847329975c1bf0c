package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlist/internal/formatter"
	"github.com/desertthunder/ytlist/internal/models"
	"github.com/desertthunder/ytlist/internal/services"
	"github.com/desertthunder/ytlist/internal/shared"
)

var youtubeURL = regexp.MustCompile(`(?i)^https?://(www\.)?youtube\.com/`)

// Recorder persists a finished run.
type Recorder interface {
	Record(run *models.ListingRun) error
}

// ListingRequest is a single channel listing request.
type ListingRequest struct {
	ChannelURL     string
	DestinationDir string // required in [models.ModeSave], ignored otherwise
	Mode           models.Mode
}

// PipelineOpts configures a [ListingPipeline].
type PipelineOpts struct {
	Lister        services.Lister
	TransientRoot string   // parent of per-request transient directories; defaults to $TMPDIR/ytlist
	Recorder      Recorder // optional
	Logger        *log.Logger
	ToolName      string // used in status messages; defaults to yt-dlp
}

// ListingPipeline validates listing requests, runs the listing tool and writes the CSV artifact.
//
// It holds no per-request state and is safe for concurrent use.
type ListingPipeline struct {
	lister        services.Lister
	transientRoot string
	recorder      Recorder
	logger        *log.Logger
	toolName      string
	locks         *pathLocks
}

// NewListingPipeline creates a pipeline, filling in defaults for unset options.
func NewListingPipeline(opts PipelineOpts) *ListingPipeline {
	if opts.TransientRoot == "" {
		opts.TransientRoot = filepath.Join(os.TempDir(), "ytlist")
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.ToolName == "" {
		opts.ToolName = services.DefaultToolPath
	}

	return &ListingPipeline{
		lister:        opts.Lister,
		transientRoot: opts.TransientRoot,
		recorder:      opts.Recorder,
		logger:        opts.Logger,
		toolName:      opts.ToolName,
		locks:         newPathLocks(),
	}
}

// TransientRoot returns the directory transient listings are written under.
func (p *ListingPipeline) TransientRoot() string {
	return p.transientRoot
}

// Resolve extracts the filesystem-safe channel name from a channel URL.
func (p *ListingPipeline) Resolve(channelURL string) (string, bool) {
	return services.ResolveChannelName(channelURL)
}

// Run executes one listing request. It never fails with an error; the outcome is carried in the result.
func (p *ListingPipeline) Run(ctx context.Context, req ListingRequest) models.ListingResult {
	logger := shared.WithLogger(p.logger, "url", req.ChannelURL, "mode", req.Mode)
	logger.Info("processing listing request")

	result := p.run(ctx, logger, req)
	if result.OK() {
		logger.Info("listing complete", "channel", result.ChannelName, "count", result.Count)
	} else {
		logger.Error("listing failed", "kind", result.Kind, "message", result.StatusMessage)
	}

	p.record(logger, req, result)
	return result
}

func (p *ListingPipeline) run(ctx context.Context, logger *log.Logger, req ListingRequest) models.ListingResult {
	if req.ChannelURL == "" {
		return models.Failure(models.KindInvalidInput, "Error: Please provide a Channel URL.")
	}
	if req.Mode == models.ModeSave && req.DestinationDir == "" {
		return models.Failure(models.KindInvalidInput, "Error: Please provide an Output Directory.")
	}
	if !youtubeURL.MatchString(req.ChannelURL) {
		return models.Failure(models.KindInvalidInput, "Error: Invalid YouTube URL format. Must start with http(s)://youtube.com/")
	}

	name, ok := p.Resolve(req.ChannelURL)
	if !ok {
		return models.Failure(models.KindNameExtractionFailed,
			"Error: Could not extract a usable channel name from the URL: %s", req.ChannelURL)
	}

	if req.Mode != models.ModeSave && req.Mode != models.ModeTransient {
		res := models.Failure(models.KindInvalidInput, "Error: Unknown output option %q.", string(req.Mode))
		res.ChannelName = name
		return res
	}

	logger = shared.WithLogger(logger, "channel", name)
	folder, err := p.prepareFolder(req, name)
	if err != nil {
		res := models.Failure(models.KindDirectoryCreationFailed, "Error creating directory '%s': %v", folder, err)
		res.ChannelName = name
		return res
	}
	logger.Debug("using folder", "path", folder)

	result := p.list(ctx, logger, req, filepath.Join(folder, formatter.ArtifactName(name)))
	result.ChannelName = name

	if !result.OK() && req.Mode == models.ModeTransient {
		if err := os.RemoveAll(folder); err != nil {
			logger.Warn("failed to remove transient folder", "path", folder, "error", err)
		}
	}
	return result
}

// prepareFolder returns the folder the artifact is written into, creating it if needed.
func (p *ListingPipeline) prepareFolder(req ListingRequest, name string) (string, error) {
	if req.Mode == models.ModeSave {
		folder := filepath.Join(req.DestinationDir, name)
		return folder, os.MkdirAll(folder, 0755)
	}

	if err := os.MkdirAll(p.transientRoot, 0755); err != nil {
		return p.transientRoot, err
	}
	folder, err := os.MkdirTemp(p.transientRoot, name+"-*")
	if err != nil {
		return p.transientRoot, err
	}
	return folder, nil
}

func (p *ListingPipeline) list(ctx context.Context, logger *log.Logger, req ListingRequest, csvPath string) models.ListingResult {
	logger.Info("running listing tool", "tool", p.toolName)

	out, err := p.lister.List(ctx, req.ChannelURL)
	switch {
	case errors.Is(err, shared.ErrToolNotFound):
		return models.Failure(models.KindToolNotFound,
			"Error: '%s' command not found. Make sure %s is installed and in your system's PATH.", p.toolName, p.toolName)
	case errors.Is(err, shared.ErrToolTimeout):
		return models.Failure(models.KindToolTimeout, "Error: %s timed out before finishing the listing.", p.toolName)
	case err != nil:
		return models.Failure(models.KindToolProducedNoOutput, "Error: %s could not be run: %v", p.toolName, err)
	}

	stderr := strings.TrimSpace(out.Stderr)
	if out.ExitCode != 0 {
		logger.Warn("listing tool exited with non-zero status", "code", out.ExitCode, "stderr", stderr)
	}

	if out.Empty() {
		var res models.ListingResult
		if stderr != "" {
			res = models.Failure(models.KindToolProducedNoOutput, "Error: %s failed.\nstderr: %s", p.toolName, stderr)
		} else {
			res = models.Failure(models.KindToolProducedNoOutput,
				"Error: %s produced no output. Check channel URL and %s installation.", p.toolName, p.toolName)
		}
		res.ExitCode = out.ExitCode
		return res
	}

	records, skipped := services.ParseListing(out.Stdout)
	for _, d := range skipped {
		logger.Debug("skipped tool output line", "line", d.Line, "reason", d.Reason, "text", d.Text)
	}

	if len(records) == 0 {
		msg := fmt.Sprintf("Error: No valid video data extracted. %s output might be empty or in an unexpected format.", p.toolName)
		if stderr != "" {
			msg += "\nstderr: " + stderr
		}
		res := models.Failure(models.KindNoValidRecordsParsed, "%s", msg)
		res.Skipped = skipped
		res.ExitCode = out.ExitCode
		return res
	}

	unlock := p.locks.Lock(csvPath)
	err = formatter.WriteVideoCSV(records, csvPath)
	unlock()
	if err != nil {
		res := models.Failure(models.KindFileWriteFailed, "Error writing to CSV file '%s': %v", csvPath, err)
		res.Skipped = skipped
		res.ExitCode = out.ExitCode
		return res
	}

	result := models.ListingResult{
		OutputPath: csvPath,
		Count:      len(records),
		Records:    records,
		Skipped:    skipped,
		ExitCode:   out.ExitCode,
	}
	if req.Mode == models.ModeSave {
		result.StatusMessage = fmt.Sprintf("Success! %d videos saved to: %s", len(records), csvPath)
	} else {
		result.StatusMessage = fmt.Sprintf("Success! %d videos processed.", len(records))
		result.ArtifactPath = csvPath
	}
	return result
}

func (p *ListingPipeline) record(logger *log.Logger, req ListingRequest, result models.ListingResult) {
	if p.recorder == nil || req.ChannelURL == "" {
		return
	}

	run := models.NewListingRun(req.ChannelURL, req.Mode, result)
	if err := run.Validate(); err != nil {
		logger.Debug("run not recorded", "error", err)
		return
	}
	if err := p.recorder.Record(run); err != nil {
		logger.Warn("failed to record listing run", "error", err)
	}
}
