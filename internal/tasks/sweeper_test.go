package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	th "github.com/desertthunder/ytlist/internal/testing"
)

func TestSweeper_Sweep(t *testing.T) {
	t.Run("removes only stale entries", func(t *testing.T) {
		root := t.TempDir()
		stale := writeArtifact(t, root, "stale-1")
		fresh := writeArtifact(t, root, "fresh-1")

		old := time.Now().Add(-2 * time.Hour)
		if err := os.Chtimes(filepath.Dir(stale), old, old); err != nil {
			t.Fatal(err)
		}

		s := NewSweeper(root, time.Hour, th.Logger())
		n, err := s.Sweep()
		if err != nil {
			t.Fatalf("Sweep() error: %v", err)
		}
		if n != 1 {
			t.Errorf("Sweep() removed %d, want 1", n)
		}
		th.AssertNotExists(t, filepath.Dir(stale))
		th.AssertFileExists(t, fresh)
	})

	t.Run("uses injected clock", func(t *testing.T) {
		root := t.TempDir()
		writeArtifact(t, root, "a-1")
		writeArtifact(t, root, "b-2")

		s := NewSweeper(root, time.Minute, th.Logger())
		s.now = func() time.Time { return time.Now().Add(time.Hour) }

		n, err := s.Sweep()
		if err != nil {
			t.Fatalf("Sweep() error: %v", err)
		}
		if n != 2 {
			t.Errorf("Sweep() removed %d, want 2", n)
		}
	})

	t.Run("leaves unrelated entries in a shared root", func(t *testing.T) {
		root := t.TempDir()
		notes := filepath.Join(root, "notes.txt")
		report := filepath.Join(root, "report-2024")
		if err := os.WriteFile(notes, []byte("keep"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(report, []byte("keep"), 0644); err != nil {
			t.Fatal(err)
		}
		cacheFile := writeArtifact(t, root, "cache")
		listing := writeArtifact(t, root, "testchan-123456")

		old := time.Now().Add(-2 * time.Hour)
		for _, path := range []string{notes, report, filepath.Dir(cacheFile), filepath.Dir(listing)} {
			if err := os.Chtimes(path, old, old); err != nil {
				t.Fatal(err)
			}
		}

		n, err := NewSweeper(root, time.Hour, th.Logger()).Sweep()
		if err != nil {
			t.Fatalf("Sweep() error: %v", err)
		}
		if n != 1 {
			t.Errorf("Sweep() removed %d, want 1", n)
		}
		th.AssertNotExists(t, filepath.Dir(listing))
		th.AssertFileExists(t, notes)
		th.AssertFileExists(t, report)
		th.AssertFileExists(t, cacheFile)
	})

	t.Run("missing root", func(t *testing.T) {
		s := NewSweeper(filepath.Join(t.TempDir(), "absent"), time.Minute, th.Logger())
		n, err := s.Sweep()
		if err != nil || n != 0 {
			t.Errorf("Sweep() = %d, %v, want 0, nil", n, err)
		}
	})
}

func TestSweeper_Start(t *testing.T) {
	t.Run("rejects non-positive interval", func(t *testing.T) {
		s := NewSweeper(t.TempDir(), time.Minute, th.Logger())
		if err := s.Start(0); err == nil {
			t.Error("Start(0) should fail")
		}
	})

	t.Run("runs on schedule", func(t *testing.T) {
		root := t.TempDir()
		stale := writeArtifact(t, root, "stale-3")
		old := time.Now().Add(-time.Hour)
		if err := os.Chtimes(filepath.Dir(stale), old, old); err != nil {
			t.Fatal(err)
		}

		s := NewSweeper(root, time.Minute, th.Logger())
		if err := s.Start(time.Second); err != nil {
			t.Fatalf("Start() error: %v", err)
		}
		defer s.Stop(context.Background())

		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			if _, err := os.Stat(filepath.Dir(stale)); os.IsNotExist(err) {
				return
			}
			time.Sleep(50 * time.Millisecond)
		}
		t.Error("scheduled sweep did not remove the stale entry")
	})

	t.Run("stop without start", func(t *testing.T) {
		NewSweeper(t.TempDir(), time.Minute, th.Logger()).Stop(context.Background())
	})
}
