// Package tasks runs channel listing requests end to end.
//
// # Listing Pipeline
//
// [ListingPipeline.Run] takes a [ListingRequest] through a fixed sequence and stops at the first failure:
//
//  1. Validate the request: URL present, destination present in save mode, URL on youtube.com
//  2. Resolve the channel name ([services.ResolveChannelName])
//  3. Create the destination folder: {dest}/{channel} in save mode, a fresh temporary directory in transient mode
//  4. Run the listing tool through a [services.Lister]
//  5. Parse its output ([services.ParseListing]); zero records is a failure, never an empty listing
//  6. Write {channel}_video_list.csv atomically, serialized per path
//
// Run never returns an error. Every failure is reported as a [models.ListingResult] with a
// [models.ErrorKind] and a human-readable status message.
//
// # Transient Artifacts
//
// Transient listings live under a dedicated root. [ArtifactStore] hands out opaque tokens for them and
// deletes an artifact's directory when its token is released or expires. [Sweeper] periodically removes
// anything under the root older than the retention window, catching directories orphaned by a crash.
//
// # Run History
//
// An optional [Recorder] receives a [models.ListingRun] for every request that carried a URL.
// Recording failures are logged and do not affect the result.
package tasks
