// internal/sampler/runner.go
package sampler

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits Records on the provided channel.
// Failed cycles are logged, skipped, and retried on the next tick,
// forever; read failures never terminate the loop. Context cancellation
// is the only exit.
func (s *Sampler) Run(ctx context.Context, out chan<- Record) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rec, err := s.SampleOnce()
			if err != nil {
				s.failures++
				s.log.Warn("cycle failed",
					"cycle", s.cycle, "consecutive", s.failures, "err", err)
				continue
			}
			s.failures = 0

			select {
			case out <- rec:
			case <-ctx.Done():
				return
			}
		}
	}
}
