package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/ytlist/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	err := runner.app().Run(context.Background(), os.Args)
	if cerr := runner.Close(); cerr != nil {
		logger.Warn("failed to close history database", "error", cerr)
	}

	switch {
	case err == nil:
	case errors.Is(err, shared.ErrListingFailed):
		os.Exit(1)
	default:
		logger.Fatalf("application error: %v", err)
	}
}
