// Package repositories implements SQLite persistence for listing history.
//
// [ListingRepository] implements models.Repository[*models.ListingRun] and doubles as the pipeline's
// recorder. Rows are soft deleted via deleted_at and excluded from queries by default.
//
// Sequence numbers give runs a stable, human-readable order independent of UUIDs and timestamps.
// [NextSequence] atomically increments the per-table counter in a dedicated sequence table.
package repositories
