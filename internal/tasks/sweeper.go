package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlist/internal/shared"
	"github.com/robfig/cron/v3"
)

// transientDirName matches the folders prepareFolder creates with os.MkdirTemp(root, name+"-*").
var transientDirName = regexp.MustCompile(`^.+-[0-9]+$`)

// Sweeper removes stale transient folders from the transient root on a schedule.
//
// Only directories named like the pipeline's per-request folders are touched, so a root
// shared with other programs keeps their files.
type Sweeper struct {
	root   string
	maxAge time.Duration
	logger *log.Logger
	now    func() time.Time
	cron   *cron.Cron
}

// NewSweeper creates a sweeper that deletes transient folders under root last modified more than maxAge ago.
func NewSweeper(root string, maxAge time.Duration, logger *log.Logger) *Sweeper {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Sweeper{root: root, maxAge: maxAge, logger: logger, now: time.Now}
}

// Sweep performs one pass and returns how many entries were removed.
//
// A missing root is not an error.
func (s *Sweeper) Sweep() (int, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return 0, nil
	} else if err != nil {
		return 0, fmt.Errorf("failed to read transient root: %w", err)
	}

	cutoff := s.now().Add(-s.maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() || !transientDirName.MatchString(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(s.root, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			s.logger.Warn("failed to remove stale transient entry", "path", path, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

// Start schedules [Sweeper.Sweep] every interval on a background cron.
func (s *Sweeper) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: sweep interval must be positive", shared.ErrInvalidConfig)
	}

	c := cron.New()
	if _, err := c.AddFunc("@every "+interval.String(), s.run); err != nil {
		return fmt.Errorf("failed to schedule sweeper: %w", err)
	}
	s.cron = c
	c.Start()

	s.logger.Info("transient sweeper started", "root", s.root, "interval", interval, "max_age", s.maxAge)
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish or ctx to end.
func (s *Sweeper) Stop(ctx context.Context) {
	if s.cron == nil {
		return
	}
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Sweeper) run() {
	n, err := s.Sweep()
	if err != nil {
		s.logger.Error("transient sweep failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("removed stale transient entries", "count", n)
	}
}
