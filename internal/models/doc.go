// Package models defines the domain types for the ytlist channel listing service.
//
// The package contains two categories of types:
//
// 1. Value types produced by a single listing request
//   - [VideoRecord] : one parsed "title;url" line from the listing tool
//   - [Diagnostic] : a tool output line that was skipped, with the reason
//   - [ListingResult] : the outcome of a request (status message, artifact path, error kind)
//   - [Mode] : whether the CSV is saved to a chosen folder or handed back as a transient file
//
// 2. Persistent entities
//   - [ListingRun] : the recorded outcome of one request, stored in the run history
//
// Persistent entities implement the [Model] interface and are accessed through [Repository].
package models
