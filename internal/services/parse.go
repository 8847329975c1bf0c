package services

import (
	"strings"

	"github.com/desertthunder/ytlist/internal/models"
)

const (
	// WatchURLPrefix is the canonical per-video URL shape every record must carry.
	WatchURLPrefix = "https://www.youtube.com/watch?v="

	// PrintTemplate is the yt-dlp output template producing one "title;url" line per video.
	PrintTemplate = "%(title)s;%(webpage_url)s"

	fieldSeparator = ";"
)

// Reasons attached to skipped lines.
const (
	ReasonNoSeparator = "missing ';' separator"
	ReasonNotWatchURL = "url is not a watch URL"
)

// ParseListing turns the tool's standard output into records, preserving emission order.
//
// Lines without a separator or without a watch URL are returned as diagnostics instead of records.
// Titles may contain ';', so each line is split on its last separator.
func ParseListing(stdout string) ([]models.VideoRecord, []models.Diagnostic) {
	var (
		records []models.VideoRecord
		skipped []models.Diagnostic
	)

	for i, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		idx := strings.LastIndex(line, fieldSeparator)
		if idx < 0 {
			skipped = append(skipped, models.Diagnostic{Line: i + 1, Text: line, Reason: ReasonNoSeparator})
			continue
		}

		title := strings.TrimSpace(line[:idx])
		url := strings.TrimSpace(line[idx+len(fieldSeparator):])
		if !strings.HasPrefix(url, WatchURLPrefix) {
			skipped = append(skipped, models.Diagnostic{Line: i + 1, Text: line, Reason: ReasonNotWatchURL})
			continue
		}

		records = append(records, models.VideoRecord{Title: title, URL: url})
	}

	return records, skipped
}
