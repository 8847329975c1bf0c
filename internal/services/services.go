// package services wraps the external listing tool and the pure helpers around it
package services

import (
	"context"
)

// Lister retrieves the raw "title;url" listing of a channel.
//
// Implementations return [shared.ErrToolNotFound] when the tool cannot be launched and [shared.ErrToolTimeout]
// when it does not finish in time. A non-zero exit status is not an error: it is reported in [ToolOutput.ExitCode].
type Lister interface {
	List(ctx context.Context, channelURL string) (*ToolOutput, error)
}

// ToolOutput is what the listing tool wrote before exiting.
type ToolOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Empty reports whether the tool wrote nothing to standard output.
func (o *ToolOutput) Empty() bool {
	return o == nil || o.Stdout == ""
}
