// package formatter serializes channel listings to CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/desertthunder/ytlist/internal/models"
)

// Header is the first row of every listing CSV.
var Header = []string{"title", "url"}

// ArtifactName returns the CSV file name used for a channel's listing.
func ArtifactName(channelName string) string {
	return channelName + "_video_list.csv"
}

// ExportVideosToCSV converts records to CSV with a "title,url" header, preserving order.
func ExportVideosToCSV(records []models.VideoRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCSV(w io.Writer, records []models.VideoRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, rec := range records {
		if err := writer.Write([]string{rec.Title, rec.URL}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

// WriteVideoCSV writes records to path without ever exposing a partially written file.
//
// The CSV goes to a temporary file in the same directory which is renamed over path once complete.
// On failure the temporary file is removed and any existing file at path is left untouched.
func WriteVideoCSV(records []models.VideoRecord, path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ytlist-*.csv.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = writeCSV(tmp, records); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync CSV file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close CSV file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set CSV permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move CSV into place: %w", err)
	}
	return nil
}

// ReadVideoCSV parses a listing CSV written by [WriteVideoCSV].
func ReadVideoCSV(r io.Reader) ([]models.VideoRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Header)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty CSV: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if header[0] != Header[0] || header[1] != Header[1] {
		return nil, fmt.Errorf("unexpected CSV header %q", header)
	}

	var records []models.VideoRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		records = append(records, models.VideoRecord{Title: row[0], URL: row[1]})
	}
	return records, nil
}

// ReadVideoCSVFile opens path and parses it with [ReadVideoCSV].
func ReadVideoCSVFile(path string) ([]models.VideoRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()
	return ReadVideoCSV(f)
}
