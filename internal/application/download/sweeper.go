package download

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultRetention is how long artifacts are kept on disk.
const DefaultRetention = time.Hour

const defaultSweepInterval = 10 * time.Minute

// Sweeper deletes artifacts older than the retention window. It does not
// touch job records.
type Sweeper struct {
	store     ArtifactStore
	retention time.Duration
	logger    *log.Logger
	now       func() time.Time

	startOnce sync.Once
}

// NewSweeper creates a retention sweeper over store.
func NewSweeper(store ArtifactStore, retention time.Duration, logger *log.Logger) *Sweeper {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Sweeper{store: store, retention: retention, logger: logger, now: time.Now}
}

// Sweep removes expired artifacts. Errors are ignored.
func (s *Sweeper) Sweep() {
	artifacts, err := s.store.ListArtifacts()
	if err != nil {
		return
	}

	now := s.now()
	removed := 0
	for _, artifact := range artifacts {
		if now.Sub(artifact.ModifiedAt) <= s.retention {
			continue
		}
		if err := s.store.RemoveArtifact(artifact.Name); err == nil {
			removed++
		}
	}
	if removed > 0 {
		s.logger.Printf("Retention sweep removed %d artifact(s)", removed)
	}
}

// Start sweeps once, then again on every interval until ctx is done.
func (s *Sweeper) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	s.startOnce.Do(func() {
		s.logger.Printf("Retention sweep enabled: retention=%s interval=%s", s.retention, interval)
		go s.loop(ctx, interval)
	})
}

func (s *Sweeper) loop(ctx context.Context, interval time.Duration) {
	s.Sweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
