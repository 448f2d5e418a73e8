package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/report-buddy/internal/logger"
)

// LimiterSweeper periodically evicts expired windows from in-memory rate
// limiters.
type LimiterSweeper struct {
	sweepers []Sweeper
	interval time.Duration
	logger   *logger.Logger
}

func NewLimiterSweeper(interval time.Duration, log *logger.Logger, sweepers ...Sweeper) *LimiterSweeper {
	return &LimiterSweeper{
		sweepers: sweepers,
		interval: interval,
		logger:   log,
	}
}

func (s *LimiterSweeper) Run(ctx context.Context) {
	if s.interval <= 0 || len(s.sweepers) == 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Debug().Msg("limiter sweeper stopped")
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *LimiterSweeper) sweep() int {
	removed := 0
	for _, sw := range s.sweepers {
		removed += sw.Sweep()
	}
	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("expired limiter windows swept")
	}
	return removed
}
