package cache

import (
	"context"
	"time"

	"OrgSettings/internal/logger"

	"github.com/benbjohnson/clock"
)

// Sweeper periodically purges expired entries from a cache.
// Reads are correct without it; it only reclaims memory held by entries that are never read again.
type Sweeper struct {
	target   Sweepable
	logger   logger.Service
	interval time.Duration
	clock    clock.Clock
}

// NewSweeper creates a sweeper that runs target.Cleanup every interval
func NewSweeper(target Sweepable, log logger.Service, interval time.Duration, clk clock.Clock) *Sweeper {
	if clk == nil {
		clk = clock.New()
	}
	return &Sweeper{
		target:   target,
		logger:   log,
		interval: interval,
		clock:    clk,
	}
}

// Start runs sweeps until ctx is done. It blocks; run it in its own goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	if s.interval <= 0 {
		return
	}

	ticker := s.clock.Ticker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep and returns the number of entries removed
func (s *Sweeper) RunOnce(ctx context.Context) int {
	start := s.clock.Now()
	removed := s.target.Cleanup()

	if removed > 0 && s.logger != nil {
		sweepCtx := logger.WithLogEvent(ctx, logger.NewScheduledLogEvent())
		s.logger.LogInfo(sweepCtx, logger.OpCacheSweep, "Purged expired cache entries", map[string]interface{}{
			"removed":     removed,
			"remaining":   s.target.Size(),
			"duration_ms": s.clock.Since(start).Milliseconds(),
		})
	}

	return removed
}
