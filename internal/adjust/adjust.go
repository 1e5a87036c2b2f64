// Package adjust applies rotary steps to the shared time-of-day.
package adjust

import (
	"context"

	"go.uber.org/zap"

	"clock.raspi/chimeclock/internal/rotary"
	"clock.raspi/chimeclock/internal/timeofday"
)

// Adjuster steps the minute value immediately on each rotary transition,
// independent of the keeper's one-second cadence. It touches only the
// fast time lock; the alarm flags are out of its reach. Every step also
// restarts the current minute at second zero. The keeper's drift
// baseline is deliberately left alone, so the next second boundary can
// land early after an adjustment.
type Adjuster struct {
	tod *timeofday.Store
	log *zap.SugaredLogger
}

func New(tod *timeofday.Store, log *zap.SugaredLogger) *Adjuster {
	return &Adjuster{tod: tod, log: log}
}

// Run consumes steps until ctx is cancelled.
func (a *Adjuster) Run(ctx context.Context, steps <-chan rotary.Direction) {
	for {
		select {
		case <-ctx.Done():
			return
		case d := <-steps:
			a.Apply(d)
		}
	}
}

// Apply performs a single minute step.
func (a *Adjuster) Apply(d rotary.Direction) {
	switch d {
	case rotary.Forward:
		t := a.tod.StepForward()
		a.log.Debugw("minute stepped forward", "time", t.String())
	case rotary.Backward:
		t := a.tod.StepBackward()
		a.log.Debugw("minute stepped backward", "time", t.String())
	}
}
