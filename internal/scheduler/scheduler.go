// Package scheduler drives the scheduled reducers of §5/§10.6: one
// background goroutine per schedule family, each its own time.Ticker,
// grounded in the teacher's consensus.go startHeartbeatLoop (ticker loop
// calling a sweep function) generalized from one global cadence to one
// per family, since the spec's scheduled reducers are independent rows
// rather than a single global clock.
package scheduler

import (
	"context"
	"time"

	"github.com/vitadek/survival/internal/logging"
)

// Sweep is one scheduled reducer: it opens its own transaction internally
// and returns an error to log, never to propagate (a scheduled reducer
// has no caller to report to).
type Sweep func() error

// Family names one ticker loop for logging.
type Family struct {
	Name     string
	Interval time.Duration
	Run      Sweep
}

// Run starts one goroutine per family and blocks until ctx is cancelled,
// mirroring the teacher's fire-and-forget `go startHeartbeatLoop()` but
// made cancellable for clean shutdown and tests.
func Run(ctx context.Context, log *logging.Logger, families []Family) {
	for _, f := range families {
		go runFamily(ctx, log, f)
	}
	<-ctx.Done()
}

func runFamily(ctx context.Context, log *logging.Logger, f Family) {
	ticker := time.NewTicker(f.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := f.Run(); err != nil {
				log.Error.Printf("scheduler: %s sweep failed: %v", f.Name, err)
			}
		}
	}
}
