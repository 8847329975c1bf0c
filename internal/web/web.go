// Package web holds the browser front end served by the HTTP server.
//
// The page posts to /download as JSON. A transient request answers with the CSV itself, which the
// page saves through a blob URL. A save request answers with JSON; its token, when present, is
// turned into a /download_csv link for the file that was written on the server.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// IndexPath is the page served at the site root, relative to [Assets].
const IndexPath = "index.html"

// Assets returns the embedded static files rooted at the static directory.
func Assets() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
