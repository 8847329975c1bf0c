package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// Listing errors
	ErrNameExtraction  = fmt.Errorf("could not extract channel name")
	ErrToolNotFound    = fmt.Errorf("listing tool not found")
	ErrToolTimeout     = fmt.Errorf("listing tool timed out")
	ErrListingFailed   = fmt.Errorf("listing failed")
	ErrArtifactMissing = fmt.Errorf("artifact not found")

	// Persistence errors
	ErrHistoryDisabled = fmt.Errorf("run history is disabled")
	ErrRunNotFound     = fmt.Errorf("listing run not found")
)
