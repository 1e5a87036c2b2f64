package display

import (
	"context"
	"fmt"
	"time"

	"clock.raspi/chimeclock/internal/alarm"
	"clock.raspi/chimeclock/internal/timeofday"
)

// Screen is the render target.
type Screen interface {
	PrintAt(x, y uint8, s []byte)
}

const blinkInterval = 500 * time.Millisecond

// Renderer paints the clock twice a second, blinking the colon on
// alternate passes, with the alarm target and activity on the lower
// line. It copies snapshots out first and renders with no lock held;
// the I2C transfer is far too slow for either locking domain.
type Renderer struct {
	scr      Screen
	tod      *timeofday.Store
	state    *alarm.State
	alarmH   int
	alarmM   int
	lockWait time.Duration

	colon int
	flags alarm.Flags // last readable copy
}

func NewRenderer(scr Screen, tod *timeofday.Store, state *alarm.State, alarmH, alarmM int, lockWait time.Duration) *Renderer {
	return &Renderer{
		scr:      scr,
		tod:      tod,
		state:    state,
		alarmH:   alarmH,
		alarmM:   alarmM,
		lockWait: lockWait,
	}
}

// Run repaints until ctx is cancelled.
func (r *Renderer) Run(ctx context.Context) {
	tick := time.NewTicker(blinkInterval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			r.render()
		}
	}
}

func (r *Renderer) render() {
	t := r.tod.Snapshot()
	if f, ok := r.state.Snapshot(r.lockWait); ok {
		r.flags = f
	}
	r.colon ^= 1
	sep := byte(' ')
	if r.colon == 1 {
		sep = ':'
	}

	top := fmt.Sprintf("    %2d%c%02d%c%02d    ", t.Hour, sep, t.Minute, sep, t.Second)
	r.scr.PrintAt(0, 0, []byte(top))

	var activity string
	switch {
	case r.flags.Ringing:
		activity = "RING"
	case r.flags.Strikes > 0:
		activity = fmt.Sprintf("ST%2d", r.flags.Strikes)
	default:
		activity = "    "
	}
	bottom := fmt.Sprintf("A%2d:%02d      %s", r.alarmH, r.alarmM, activity)
	r.scr.PrintAt(0, 1, []byte(bottom))
}
