package models

import (
	"fmt"
	"time"
)

// ListingRun is the persisted record of one listing request.
type ListingRun struct {
	id            string
	sequence      int
	channelURL    string
	channelName   string
	mode          Mode
	kind          ErrorKind
	statusMessage string
	videoCount    int
	artifactPath  string
	createdAt     time.Time
	updatedAt     time.Time
	deletedAt     *time.Time
}

// NewListingRun builds a run record from a request and its result.
func NewListingRun(channelURL string, mode Mode, result ListingResult) *ListingRun {
	now := time.Now().UTC()
	return &ListingRun{
		channelURL:    channelURL,
		channelName:   result.ChannelName,
		mode:          mode,
		kind:          result.Kind,
		statusMessage: result.StatusMessage,
		videoCount:    result.Count,
		artifactPath:  result.ArtifactPath,
		createdAt:     now,
		updatedAt:     now,
	}
}

// RestoreListingRun rebuilds a run from stored columns.
func RestoreListingRun(
	id string, sequence int, channelURL, channelName string, mode Mode, kind ErrorKind,
	statusMessage string, videoCount int, artifactPath string,
	createdAt, updatedAt time.Time, deletedAt *time.Time,
) *ListingRun {
	return &ListingRun{
		id:            id,
		sequence:      sequence,
		channelURL:    channelURL,
		channelName:   channelName,
		mode:          mode,
		kind:          kind,
		statusMessage: statusMessage,
		videoCount:    videoCount,
		artifactPath:  artifactPath,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		deletedAt:     deletedAt,
	}
}

func (r *ListingRun) ID() string            { return r.id }
func (r *ListingRun) Sequence() int         { return r.sequence }
func (r *ListingRun) ChannelURL() string    { return r.channelURL }
func (r *ListingRun) ChannelName() string   { return r.channelName }
func (r *ListingRun) Mode() Mode            { return r.mode }
func (r *ListingRun) Kind() ErrorKind       { return r.kind }
func (r *ListingRun) StatusMessage() string { return r.statusMessage }
func (r *ListingRun) VideoCount() int       { return r.videoCount }
func (r *ListingRun) ArtifactPath() string  { return r.artifactPath }
func (r *ListingRun) CreatedAt() time.Time  { return r.createdAt }
func (r *ListingRun) UpdatedAt() time.Time  { return r.updatedAt }
func (r *ListingRun) DeletedAt() *time.Time { return r.deletedAt }
func (r *ListingRun) Succeeded() bool       { return r.kind == KindNone }

func (r *ListingRun) SetID(id string)          { r.id = id }
func (r *ListingRun) SetSequence(seq int)      { r.sequence = seq }
func (r *ListingRun) SetUpdatedAt(t time.Time) { r.updatedAt = t }

// Validate checks required fields.
func (r *ListingRun) Validate() error {
	if r.channelURL == "" {
		return fmt.Errorf("channel URL is required")
	}
	switch r.mode {
	case ModeSave, ModeTransient:
	default:
		return fmt.Errorf("invalid mode %q", r.mode)
	}
	if r.videoCount < 0 {
		return fmt.Errorf("video count must not be negative")
	}
	return nil
}

// ListingRunJSON is the wire form of a [ListingRun].
type ListingRunJSON struct {
	ID            string    `json:"id"`
	Sequence      int       `json:"sequence"`
	ChannelURL    string    `json:"channel_url"`
	ChannelName   string    `json:"channel_name"`
	Mode          Mode      `json:"mode"`
	Kind          ErrorKind `json:"kind,omitempty"`
	StatusMessage string    `json:"message"`
	VideoCount    int       `json:"video_count"`
	ArtifactPath  string    `json:"artifact_path,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// JSON returns the wire form of r.
func (r *ListingRun) JSON() ListingRunJSON {
	return ListingRunJSON{
		ID:            r.id,
		Sequence:      r.sequence,
		ChannelURL:    r.channelURL,
		ChannelName:   r.channelName,
		Mode:          r.mode,
		Kind:          r.kind,
		StatusMessage: r.statusMessage,
		VideoCount:    r.videoCount,
		ArtifactPath:  r.artifactPath,
		CreatedAt:     r.createdAt,
	}
}
