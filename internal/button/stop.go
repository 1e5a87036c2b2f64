// Package button watches the stop input and clears the alarm flags.
package button

import (
	"context"
	"time"

	"go.uber.org/zap"

	"clock.raspi/chimeclock/internal/alarm"
)

// Input reads the raw stop line; Pressed is true while the button is
// held down.
type Input interface {
	Pressed() bool
}

type Config struct {
	Poll        time.Duration // sampling interval
	MinInterval time.Duration // shortest gap between two accepted presses
	LockWait    time.Duration
}

// Stop polls the stop line and, on an accepted press, clears both alarm
// flags in one critical section so no observer can catch a half-cleared
// state. Debouncing is a minimum interval since the last accepted press,
// not a hold-time rule.
type Stop struct {
	in    Input
	state *alarm.State
	cfg   Config
	log   *zap.SugaredLogger

	now          func() time.Time
	lastAccepted time.Time
}

func NewStop(in Input, state *alarm.State, cfg Config, log *zap.SugaredLogger) *Stop {
	return &Stop{
		in:    in,
		state: state,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
	}
}

// Run polls until ctx is cancelled.
func (s *Stop) Run(ctx context.Context) {
	tick := time.NewTicker(s.cfg.Poll)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			s.poll()
		}
	}
}

func (s *Stop) poll() {
	if !s.in.Pressed() {
		return
	}
	n := s.now()
	if !s.lastAccepted.IsZero() && n.Sub(s.lastAccepted) < s.cfg.MinInterval {
		return
	}
	if !s.state.Update(s.cfg.LockWait, func(f *alarm.Flags) {
		f.Ringing = false
		f.Strikes = 0
	}) {
		// Dropped; the next poll only sees the press again if the
		// button is still held or pressed anew.
		s.log.Debug("alarm state lock busy, stop press dropped")
		return
	}
	s.lastAccepted = n
	s.log.Info("alarm cleared by stop button")
}
