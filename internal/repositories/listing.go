package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytlist/internal/models"
	"github.com/desertthunder/ytlist/internal/shared"
)

const listingColumns = `id, sequence, channel_url, channel_name, mode, kind, status_message, video_count, artifact_path, created_at, updated_at, deleted_at`

var _ models.Repository[*models.ListingRun] = (*ListingRepository)(nil)

// ListingRepository implements [models.Repository] for run history.
type ListingRepository struct {
	db *sql.DB
}

// NewListingRepository creates a new ListingRepository with the given database connection
func NewListingRepository(db *sql.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create inserts a run with a generated ID and sequence.
func (r *ListingRepository) Create(run *models.ListingRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "listing_runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	run.SetID(shared.GenerateID())
	run.SetSequence(sequence)

	query := `
		INSERT INTO listing_runs (id, sequence, channel_url, channel_name, mode, kind, status_message, video_count, artifact_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		run.ID(),
		run.Sequence(),
		run.ChannelURL(),
		run.ChannelName(),
		string(run.Mode()),
		string(run.Kind()),
		run.StatusMessage(),
		run.VideoCount(),
		sql.NullString{String: run.ArtifactPath(), Valid: run.ArtifactPath() != ""},
		run.CreatedAt(),
		run.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert listing run: %w", err)
	}
	return nil
}

// Record stores a finished run. It satisfies the pipeline's recorder contract.
func (r *ListingRepository) Record(run *models.ListingRun) error {
	return r.Create(run)
}

// Get retrieves a run by ID, excluding soft-deleted runs
func (r *ListingRepository) Get(id string) (*models.ListingRun, error) {
	query := `SELECT ` + listingColumns + ` FROM listing_runs WHERE id = ? AND deleted_at IS NULL`

	run, err := scanListingRun(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrRunNotFound, id)
	}
	return run, err
}

// Delete soft-deletes a run by ID
func (r *ListingRepository) Delete(id string) error {
	now := time.Now().UTC()

	result, err := r.db.Exec(`UPDATE listing_runs SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`, now, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrRunNotFound, id)
	}
	return nil
}

// List returns runs newest first.
//
// Supported criteria:
//   - "channel_name" (string): exact channel name
//   - "mode" (string or [models.Mode])
//   - "succeeded" (bool): only successful or only failed runs
//   - "limit" (int): maximum number of rows; zero or less means no limit
func (r *ListingRepository) List(criteria map[string]any) ([]*models.ListingRun, error) {
	query := `SELECT ` + listingColumns + ` FROM listing_runs WHERE deleted_at IS NULL`
	args := []any{}

	if name, ok := criteria["channel_name"].(string); ok && name != "" {
		query += " AND channel_name = ?"
		args = append(args, name)
	}

	switch mode := criteria["mode"].(type) {
	case models.Mode:
		query += " AND mode = ?"
		args = append(args, string(mode))
	case string:
		if mode != "" {
			query += " AND mode = ?"
			args = append(args, mode)
		}
	}

	if succeeded, ok := criteria["succeeded"].(bool); ok {
		if succeeded {
			query += " AND kind = ''"
		} else {
			query += " AND kind != ''"
		}
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.ListingRun
	for rows.Next() {
		run, err := scanListingRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return runs, nil
}

func scanListingRun(row scanner) (*models.ListingRun, error) {
	var (
		id, channelURL, channelName string
		mode, kind, statusMessage   string
		sequence, videoCount        int
		artifactPath                sql.NullString
		createdAt, updatedAt        time.Time
		deletedAt                   sql.NullTime
	)

	err := row.Scan(&id, &sequence, &channelURL, &channelName, &mode, &kind, &statusMessage, &videoCount,
		&artifactPath, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan listing run: %w", err)
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}

	return models.RestoreListingRun(
		id, sequence, channelURL, channelName, models.Mode(mode), models.ErrorKind(kind),
		statusMessage, videoCount, artifactPath.String, createdAt, updatedAt, deleted,
	), nil
}
