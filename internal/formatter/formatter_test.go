package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/ytlist/internal/models"
	th "github.com/desertthunder/ytlist/internal/testing"
)

var sampleRecords = []models.VideoRecord{
	{Title: "Video One", URL: "https://www.youtube.com/watch?v=AAA"},
	{Title: "Commas, quotes \"and\" semicolons; oh my", URL: "https://www.youtube.com/watch?v=BBB"},
	{Title: "Multi\nline", URL: "https://www.youtube.com/watch?v=CCC"},
	{Title: " leading space", URL: "https://www.youtube.com/watch?v=DDD"},
	{Title: "", URL: "https://www.youtube.com/watch?v=EEE"},
}

func TestExportVideosToCSV(t *testing.T) {
	t.Run("header and rows", func(t *testing.T) {
		data, err := ExportVideosToCSV(sampleRecords[:2])
		if err != nil {
			t.Fatalf("ExportVideosToCSV failed: %v", err)
		}

		want := "title,url\n" +
			"Video One,https://www.youtube.com/watch?v=AAA\n" +
			`"Commas, quotes ""and"" semicolons; oh my",https://www.youtube.com/watch?v=BBB` + "\n"
		if string(data) != want {
			t.Errorf("unexpected CSV:\n%s\nwant:\n%s", data, want)
		}
	})

	t.Run("no records still writes header", func(t *testing.T) {
		data, err := ExportVideosToCSV(nil)
		if err != nil {
			t.Fatalf("ExportVideosToCSV failed: %v", err)
		}
		if string(data) != "title,url\n" {
			t.Errorf("unexpected CSV %q", data)
		}
	})
}

func TestWriteVideoCSV(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ArtifactName("testchan"))

		if err := WriteVideoCSV(sampleRecords, path); err != nil {
			t.Fatalf("WriteVideoCSV failed: %v", err)
		}
		th.AssertFileExists(t, path)

		got, err := ReadVideoCSVFile(path)
		if err != nil {
			t.Fatalf("ReadVideoCSVFile failed: %v", err)
		}
		if len(got) != len(sampleRecords) {
			t.Fatalf("expected %d records, got %d", len(sampleRecords), len(got))
		}
		for i := range sampleRecords {
			if got[i] != sampleRecords[i] {
				t.Errorf("record %d = %+v, want %+v", i, got[i], sampleRecords[i])
			}
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		if err := WriteVideoCSV(sampleRecords[:1], path); err != nil {
			t.Fatalf("WriteVideoCSV failed: %v", err)
		}

		content := th.MustReadFile(t, path)
		if strings.Contains(content, "stale") || !strings.HasPrefix(content, "title,url\n") {
			t.Errorf("file not replaced: %q", content)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.csv")
		if err := WriteVideoCSV(sampleRecords, path); err == nil {
			t.Fatal("expected error for missing directory")
		}
	})

	t.Run("failed rename leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "taken.csv")
		if err := os.Mkdir(target, 0755); err != nil {
			t.Fatalf("failed to create blocking directory: %v", err)
		}

		if err := WriteVideoCSV(sampleRecords, target); err == nil {
			t.Fatal("expected error when target is a directory")
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("failed to read dir: %v", err)
		}
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".tmp") {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	})
}

func TestReadVideoCSV(t *testing.T) {
	tt := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "header only", input: "title,url\n", want: 0},
		{name: "two rows", input: "title,url\na,https://www.youtube.com/watch?v=1\nb,https://www.youtube.com/watch?v=2\n", want: 2},
		{name: "empty", input: "", wantErr: true},
		{name: "wrong header", input: "name,link\n", wantErr: true},
		{name: "short row", input: "title,url\nonly-one\n", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadVideoCSV(strings.NewReader(tc.input))
			if (err != nil) != tc.wantErr {
				t.Fatalf("ReadVideoCSV() error = %v, wantErr %v", err, tc.wantErr)
			}
			if len(got) != tc.want {
				t.Errorf("ReadVideoCSV() returned %d records, want %d", len(got), tc.want)
			}
		})
	}
}

func TestArtifactName(t *testing.T) {
	if got := ArtifactName("testchan"); got != "testchan_video_list.csv" {
		t.Errorf("ArtifactName() = %q", got)
	}
}
