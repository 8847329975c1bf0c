// Package server exposes the listing pipeline over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [BasicRouter] keeps a method table per path on top of [http.ServeMux] and wraps the whole mux in its
// [Middleware] stack, so unmatched requests are logged too.
//
// Custom handlers implement [Handler], which wraps the stdlib handler interface and adds the routes it
// serves; the embedded front end registers "/" and "/static/" this way.
//
// # Endpoints
//
//	GET  /              single-page form
//	POST /download      {channel_url, output_dir, output_option} runs a listing
//	GET  /download_csv  ?token= fetches a CSV written by an earlier save request
//	GET  /history       ?limit=&channel= recent runs, when history is enabled
//	GET  /health
//
// A transient ("download") request answers with the CSV as an attachment and deletes it once sent.
// Everything else answers with JSON; failed listings use [StatusForKind] to pick the status code.
//
// # Middleware
//
// [Recovery], [RequestID] and [Logging] wrap every request. [RateLimit] guards POST /download only,
// bounding how often the listing tool is started.
package server
