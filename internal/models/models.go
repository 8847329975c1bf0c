// package models defines the data model for the channel listing service
package models

import (
	"fmt"
	"strings"
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Mode selects where a listing's CSV ends up.
type Mode string

const (
	ModeSave      Mode = "save"      // written under a caller-chosen directory
	ModeTransient Mode = "transient" // written to a fresh temporary directory handed back to the caller
)

// ParseMode maps user-facing option names to a [Mode].
//
// "download" is accepted as an alias for [ModeTransient]; an empty option means [ModeSave].
func ParseMode(option string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(option)) {
	case "", "save":
		return ModeSave, nil
	case "transient", "download":
		return ModeTransient, nil
	default:
		return "", fmt.Errorf("unknown output option %q", option)
	}
}

// ErrorKind classifies why a listing request failed. The zero value means success.
type ErrorKind string

const (
	KindNone                    ErrorKind = ""
	KindInvalidInput            ErrorKind = "invalid_input"
	KindNameExtractionFailed    ErrorKind = "name_extraction_failed"
	KindDirectoryCreationFailed ErrorKind = "directory_creation_failed"
	KindToolNotFound            ErrorKind = "tool_not_found"
	KindToolTimeout             ErrorKind = "tool_timeout"
	KindToolProducedNoOutput    ErrorKind = "tool_produced_no_output"
	KindNoValidRecordsParsed    ErrorKind = "no_valid_records_parsed"
	KindFileWriteFailed         ErrorKind = "file_write_failed"
)

// VideoRecord is a single video of a channel listing.
type VideoRecord struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Diagnostic describes a line of tool output that did not become a [VideoRecord].
type Diagnostic struct {
	Line   int    `json:"line"` // 1-based line number in the tool's standard output
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// ListingResult is the outcome of one listing request.
//
// ArtifactPath is only set for successful transient requests; the caller owns the file from then on.
// OutputPath is where the CSV was written in either mode.
type ListingResult struct {
	StatusMessage string        `json:"message"`
	ArtifactPath  string        `json:"artifact_path,omitempty"`
	OutputPath    string        `json:"output_path,omitempty"`
	Kind          ErrorKind     `json:"kind,omitempty"`
	ChannelName   string        `json:"channel_name,omitempty"`
	Count         int           `json:"count"`
	ExitCode      int           `json:"exit_code"`
	Records       []VideoRecord `json:"-"`
	Skipped       []Diagnostic  `json:"skipped,omitempty"`
}

// OK reports whether the request produced a CSV.
func (r ListingResult) OK() bool {
	return r.Kind == KindNone
}

// Failure builds a failed [ListingResult].
func Failure(kind ErrorKind, format string, args ...any) ListingResult {
	return ListingResult{Kind: kind, StatusMessage: fmt.Sprintf(format, args...)}
}
