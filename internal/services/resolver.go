package services

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// channelPatterns are tried in order; handle URLs come first because they are by far the most common shape.
var channelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)youtube\.com/(@[\p{L}\p{N}_.-]+)`),
	regexp.MustCompile(`(?i)youtube\.com/c/([\p{L}\p{N}_.-]+)`),
	regexp.MustCompile(`(?i)youtube\.com/user/([\p{L}\p{N}_.-]+)`),
	regexp.MustCompile(`(?i)youtube\.com/channel/([\p{L}\p{N}_.-]+)`),
}

var (
	unsafeRuns    = regexp.MustCompile(`[<>:"/\\|?*]+`)
	separatorRuns = regexp.MustCompile(`[_ ]+`)
)

// ResolveChannelName derives a filesystem-safe channel name from a channel URL.
//
// The second return value is false when no usable name could be extracted.
func ResolveChannelName(rawURL string) (string, bool) {
	candidate := matchChannelPattern(rawURL)
	if candidate == "" {
		candidate = lastPathSegment(rawURL)
	}
	if candidate == "" {
		return "", false
	}

	name := SanitizeChannelName(strings.TrimPrefix(candidate, "@"))
	if name == "" || strings.Trim(name, ".") == "" {
		return "", false
	}
	return name, true
}

// SanitizeChannelName replaces characters that are unsafe in a path segment and collapses separators.
//
// SanitizeChannelName(SanitizeChannelName(s)) == SanitizeChannelName(s) for every s.
func SanitizeChannelName(s string) string {
	s = unsafeRuns.ReplaceAllString(s, "_")
	s = separatorRuns.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

func matchChannelPattern(rawURL string) string {
	for _, re := range channelPatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}
	return ""
}

// lastPathSegment is the fallback for URL shapes none of the patterns know.
// Segments carrying query-string characters are rejected.
func lastPathSegment(rawURL string) string {
	parts := strings.Split(strings.Trim(rawURL, "/"), "/")
	last := parts[len(parts)-1]
	if utf8.RuneCountInString(last) <= 2 || strings.ContainsAny(last, "=&?") {
		return ""
	}
	return last
}
