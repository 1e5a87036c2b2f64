// Package clock advances the shared time-of-day once per real second and
// decides when the alarm or the hourly strike is due.
package clock

import (
	"context"
	"time"

	"go.uber.org/zap"

	"clock.raspi/chimeclock/internal/alarm"
	"clock.raspi/chimeclock/internal/timeofday"
)

// Config fixes the alarm target and the bounded lock wait used when the
// keeper touches the shared alarm flags.
type Config struct {
	AlarmHour   int
	AlarmMinute int
	LockWait    time.Duration
}

const pollInterval = 10 * time.Millisecond

// Keeper polls a high-resolution clock at pollInterval and steps the
// time-of-day each time a one-second boundary is crossed. The baseline
// advances by exactly one second per step rather than resetting to the
// current instant, so loop jitter does not compound into drift. If the
// poll loop itself starves the clock lags behind real time; there is no
// external resync.
type Keeper struct {
	tod   *timeofday.Store
	state *alarm.State
	event *alarm.Event
	cfg   Config
	log   *zap.SugaredLogger

	now  func() time.Time
	base time.Time
}

func NewKeeper(tod *timeofday.Store, state *alarm.State, event *alarm.Event, cfg Config, log *zap.SugaredLogger) *Keeper {
	return &Keeper{
		tod:   tod,
		state: state,
		event: event,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
	}
}

// Run polls until ctx is cancelled.
func (k *Keeper) Run(ctx context.Context) {
	k.base = k.now()
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			k.tick()
		}
	}
}

func (k *Keeper) tick() {
	if k.now().Sub(k.base) < time.Second {
		return
	}
	k.base = k.base.Add(time.Second)
	// Copy the new value out and evaluate outside the time lock; the
	// trigger checks may read a slightly stale copy.
	k.evaluate(k.tod.Advance())
}

func (k *Keeper) evaluate(t timeofday.Time) {
	// Alarm first, so a strike due on the same second sees Ringing
	// already set and stays suppressed.
	if t.Hour == k.cfg.AlarmHour && t.Minute == k.cfg.AlarmMinute && t.Second == 0 {
		if k.state.Update(k.cfg.LockWait, func(f *alarm.Flags) { f.Ringing = true }) {
			k.event.Raise()
			k.log.Infow("alarm due", "time", t.String())
		} else {
			// Edge trigger on second zero: a missed acquisition loses
			// this occurrence until tomorrow.
			k.log.Warnw("alarm state lock busy, alarm trigger skipped", "time", t.String())
		}
	}

	if t.Minute == 0 && t.Second == 0 {
		armed := false
		ok := k.state.Update(k.cfg.LockWait, func(f *alarm.Flags) {
			armed = f.Strikes == 0 && !f.Ringing
		})
		if !ok {
			k.log.Warnw("alarm state lock busy, strike trigger skipped", "time", t.String())
			return
		}
		if !armed {
			return
		}
		// The hour is re-read under the time lock after the guard check
		// released the state lock. Near a minute-adjust boundary the
		// re-read value decides which hour gets struck.
		n := k.tod.Hour() % 12
		if n == 0 {
			n = 12
		}
		if k.state.Update(k.cfg.LockWait, func(f *alarm.Flags) { f.Strikes = n }) {
			k.event.Raise()
			k.log.Infow("hour strike due", "strikes", n)
		} else {
			k.log.Warnw("alarm state lock busy, strike count dropped", "strikes", n)
		}
	}
}
