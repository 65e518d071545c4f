// internal/engine/runner.go
package engine

import (
	"context"
	"log"
	"time"

	"github.com/tamzrod/rdz-bridge/internal/state"
)

// CycleObserver is notified after every cycle, successful or not.
// snap is nil on failure; d is the cycle duration.
type CycleObserver func(snap *state.Snapshot, err error, d time.Duration)

// Run drives the poll loop: one cycle per interval tick plus on-demand
// refreshes requested by successful writes. One cycle in flight at a
// time; a failed cycle is logged and the loop keeps going.
func (e *Engine) Run(ctx context.Context, interval time.Duration, observe CycleObserver) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.cycle(observe)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.cycle(observe)
		case <-e.refresh:
			e.cycle(observe)
		}
	}
}

func (e *Engine) cycle(observe CycleObserver) {
	start := time.Now()
	snap, err := e.PollOnce()
	if err != nil {
		log.Printf("engine: %v", err)
	}
	if observe != nil {
		observe(snap, err, time.Since(start))
	}
}
