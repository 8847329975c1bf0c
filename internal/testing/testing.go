// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlist/internal/services"
)

// MockLister is a test double for [services.Lister]
type MockLister struct {
	Output *services.ToolOutput
	Err    error

	mu    sync.Mutex
	calls []string
}

// NewMockLister returns a lister that prints the given lines on standard output.
func NewMockLister(lines ...string) *MockLister {
	stdout := ""
	for _, l := range lines {
		stdout += l + "\n"
	}
	return &MockLister{Output: &services.ToolOutput{Stdout: stdout}}
}

func (m *MockLister) List(ctx context.Context, channelURL string) (*services.ToolOutput, error) {
	m.mu.Lock()
	m.calls = append(m.calls, channelURL)
	m.mu.Unlock()
	return m.Output, m.Err
}

// Calls returns the channel URLs the lister was invoked with.
func (m *MockLister) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Logger returns a logger that discards everything.
func Logger() *log.Logger {
	return log.New(io.Discard)
}

// WriteFakeTool writes an executable shell script standing in for the listing tool and returns its path.
//
// Skips the test on platforms without a POSIX shell.
func WriteFakeTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake listing tool requires a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "yt-dlp")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("Failed to write fake tool: %v", err)
	}
	return path
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("Path should not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
