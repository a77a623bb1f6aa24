package delivery

import (
	"context"
	"time"
)

// Pacer gates the dispatch loop between sends. It is a rate-limiting policy
// to avoid overwhelming the mail transport, not a retry mechanism.
type Pacer interface {
	// Wait blocks for the pacing interval or until ctx is done.
	Wait(ctx context.Context)
}

// FixedPacer waits a fixed interval before every send.
type FixedPacer struct {
	interval time.Duration
}

// NewFixedPacer creates a pacer with the given inter-send delay.
func NewFixedPacer(interval time.Duration) *FixedPacer {
	return &FixedPacer{interval: interval}
}

// Wait blocks for the configured interval, returning early if ctx is done.
func (p *FixedPacer) Wait(ctx context.Context) {
	t := time.NewTimer(p.interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// NopPacer skips pacing entirely. Used in tests so dispatch loops run
// without wall-clock waits.
type NopPacer struct{}

// Wait returns immediately.
func (NopPacer) Wait(context.Context) {}
