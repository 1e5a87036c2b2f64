// Package buzzer renders the alarm and strike state as tone sequences.
package buzzer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"clock.raspi/chimeclock/internal/alarm"
)

// Output drives the tone hardware.
type Output interface {
	// Play starts a continuous tone at freq Hz.
	Play(freq int)
	// Silence stops the tone.
	Silence()
}

// VolumeInput returns the raw volume reading.
type VolumeInput interface {
	Read() int
}

// Config fixes the volume-to-frequency mapping and the playback
// cadences. Volume is frequency-based: turning the knob down lowers the
// pitch and eventually mutes, it never lowers loudness at constant
// pitch.
type Config struct {
	RawMax    int // full-scale volume reading
	MuteBelow int // readings at or below this are silent
	FreqMin   int // Hz, mapped to the first reading above MuteBelow
	FreqMax   int // Hz, mapped to RawMax

	StrikeTone time.Duration // tone portion of one strike
	StrikeGap  time.Duration // silence after each strike
	RingTone   time.Duration
	RingGap    time.Duration

	LockWait time.Duration
}

// Player consumes the wake event and plays whatever the shared flags
// call for: first any pending strikes, then the continuous ring. Waiting
// on the event is its only unbounded suspension; once a playback loop
// starts it ends only through the shared flags being cleared or the
// strikes running out.
type Player struct {
	out   Output
	vol   VolumeInput
	state *alarm.State
	event *alarm.Event
	cfg   Config
	log   *zap.SugaredLogger

	sleep func(time.Duration)
}

func NewPlayer(out Output, vol VolumeInput, state *alarm.State, event *alarm.Event, cfg Config, log *zap.SugaredLogger) *Player {
	return &Player{
		out:   out,
		vol:   vol,
		state: state,
		event: event,
		cfg:   cfg,
		log:   log,
		sleep: time.Sleep,
	}
}

// Run blocks on the wake event until ctx is cancelled.
func (p *Player) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.out.Silence()
			return
		case <-p.event.C():
		}
		p.serve()
	}
}

// serve plays one wake-up worth of sound: the flags are read once here,
// strikes drain first, then ringing is serviced.
func (p *Player) serve() {
	f, ok := p.state.Snapshot(p.cfg.LockWait)
	if !ok {
		// Woke up but the flags were unreadable; the raiser's next
		// event delivers another chance.
		p.log.Warn("alarm state lock busy on wake, going back to sleep")
		return
	}
	if f.Strikes > 0 {
		p.log.Infow("striking", "count", f.Strikes)
		p.strike(f.Strikes)
	}
	if f.Ringing {
		p.log.Info("ringing")
		p.ring()
	}
	p.out.Silence()
}

// strike plays n discrete pulses. The 3:7 tone-to-silence ratio makes it
// sound like a mechanical strike rather than a held note. The shared
// count is decremented after each pulse; when the lock cannot be had in
// time only the local count moves on, which can leave the shared count
// high until the next re-arm. Accepted as-is.
func (p *Player) strike(n int) {
	for ; n > 0; n-- {
		if freq, audible := mapFrequency(p.vol.Read(), p.cfg); audible {
			p.out.Play(freq)
			p.sleep(p.cfg.StrikeTone)
			p.out.Silence()
			p.sleep(p.cfg.StrikeGap)
		} else {
			p.sleep(p.cfg.StrikeTone + p.cfg.StrikeGap)
		}
		if !p.state.Update(p.cfg.LockWait, func(f *alarm.Flags) {
			if f.Strikes > 0 {
				f.Strikes--
			}
		}) {
			p.log.Debug("alarm state lock busy, strike counted locally only")
		}
	}
}

// ring loops the faster on/off cadence until the shared flag is observed
// false. A lock timeout on the re-read just means another cycle plays
// before the next check.
func (p *Player) ring() {
	for {
		if freq, audible := mapFrequency(p.vol.Read(), p.cfg); audible {
			p.out.Play(freq)
			p.sleep(p.cfg.RingTone)
			p.out.Silence()
			p.sleep(p.cfg.RingGap)
		} else {
			p.sleep(p.cfg.RingTone + p.cfg.RingGap)
		}
		if f, ok := p.state.Snapshot(p.cfg.LockWait); ok && !f.Ringing {
			return
		}
	}
}

// mapFrequency translates a raw volume reading into a tone frequency.
// Readings at or below the mute threshold produce no tone at all;
// above it the mapping is linear into [FreqMin, FreqMax] and saturates
// at full scale.
func mapFrequency(raw int, cfg Config) (int, bool) {
	if raw <= cfg.MuteBelow {
		return 0, false
	}
	if raw >= cfg.RawMax {
		return cfg.FreqMax, true
	}
	span := cfg.RawMax - cfg.MuteBelow
	return cfg.FreqMin + (raw-cfg.MuteBelow)*(cfg.FreqMax-cfg.FreqMin)/span, true
}
