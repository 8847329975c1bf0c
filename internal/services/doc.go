// Package services contains the channel-facing building blocks of a listing request.
//
// # Name Resolution
//
// [ResolveChannelName] turns a channel URL into a name that is safe to use as a directory and file name.
// Four URL shapes are recognized, in priority order: handle (youtube.com/@name), legacy custom
// (youtube.com/c/name), legacy user (youtube.com/user/name) and channel id (youtube.com/channel/id).
// Anything else falls back to the last path segment, unless it looks like a query string.
//
// # Listing Tool
//
// [YtdlpLister] implements [Lister] by running yt-dlp in flat-playlist mode with a "%(title)s;%(webpage_url)s"
// print template. Launch details that only matter on one platform (hiding the console window on Windows) are
// options on the lister, not branches in the pipeline.
//
// # Output Parsing
//
// [ParseListing] converts the tool's standard output into [models.VideoRecord] values. Lines that are not
// "title;watch-url" pairs are returned as [models.Diagnostic] values so callers can report them.
package services
