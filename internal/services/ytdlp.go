package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlist/internal/shared"
)

const (
	DefaultToolPath     = "yt-dlp"
	defaultYtdlpTimeout = 10 * time.Minute
	killWaitDelay       = 5 * time.Second
)

// YtdlpOpts configures a [YtdlpLister].
type YtdlpOpts struct {
	Path       string        // executable name or path, defaults to "yt-dlp"
	Timeout    time.Duration // zero means the default of 10 minutes
	HideWindow bool          // hide the console window on Windows
	ExtraArgs  []string      // inserted before the channel URL
	Logger     *log.Logger
}

// YtdlpLister implements [Lister] by running yt-dlp as a subprocess.
type YtdlpLister struct {
	path       string
	timeout    time.Duration
	hideWindow bool
	extraArgs  []string
	logger     *log.Logger
}

// NewYtdlpLister creates a lister from opts, filling in defaults.
func NewYtdlpLister(opts YtdlpOpts) *YtdlpLister {
	if opts.Path == "" {
		opts.Path = DefaultToolPath
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultYtdlpTimeout
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &YtdlpLister{
		path:       opts.Path,
		timeout:    opts.Timeout,
		hideWindow: opts.HideWindow,
		extraArgs:  opts.ExtraArgs,
		logger:     opts.Logger,
	}
}

// Path returns the executable the lister launches.
func (y *YtdlpLister) Path() string {
	return y.path
}

// Args returns the full argument list used to list channelURL.
func (y *YtdlpLister) Args(channelURL string) []string {
	args := []string{
		"--ignore-errors",
		"--skip-download",
		"--flat-playlist",
		"--print", PrintTemplate,
	}
	args = append(args, y.extraArgs...)
	return append(args, channelURL)
}

// List runs yt-dlp against channelURL and captures its output.
func (y *YtdlpLister) List(ctx context.Context, channelURL string) (*ToolOutput, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	args := y.Args(channelURL)
	cmd := exec.CommandContext(cmdCtx, y.path, args...)
	cmd.WaitDelay = killWaitDelay
	configureProcess(cmd, y.hideWindow)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	y.logger.Debug("running listing tool", "path", y.path, "args", strings.Join(args, " "))
	started := time.Now()
	err := cmd.Run()

	out := &ToolOutput{
		Stdout: strings.ToValidUTF8(stdout.String(), ""),
		Stderr: strings.ToValidUTF8(stderr.String(), ""),
	}

	if err == nil {
		y.logger.Debug("listing tool finished", "elapsed", time.Since(started), "stdout_bytes", stdout.Len())
		return out, nil
	}

	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrToolNotFound, y.path, err)
	case errors.Is(cmdCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		return out, fmt.Errorf("%w after %s", shared.ErrToolTimeout, y.timeout)
	case ctx.Err() != nil:
		return out, fmt.Errorf("listing canceled: %w", ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}

	return nil, fmt.Errorf("failed to run %s: %w", y.path, err)
}
