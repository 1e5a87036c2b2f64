package buzzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clock.raspi/chimeclock/internal/alarm"
)

type fakeOutput struct {
	plays    []int
	silences int
}

func (o *fakeOutput) Play(freq int) { o.plays = append(o.plays, freq) }
func (o *fakeOutput) Silence()      { o.silences++ }

type fixedVolume int

func (v fixedVolume) Read() int { return int(v) }

func testConfig() Config {
	return Config{
		RawMax:     2047,
		MuteBelow:  128,
		FreqMin:    200,
		FreqMax:    2000,
		StrikeTone: 300 * time.Millisecond,
		StrikeGap:  700 * time.Millisecond,
		RingTone:   250 * time.Millisecond,
		RingGap:    200 * time.Millisecond,
		LockWait:   time.Second,
	}
}

func newTestPlayer(out *fakeOutput, vol VolumeInput, state *alarm.State) *Player {
	p := NewPlayer(out, vol, state, alarm.NewEvent(), testConfig(), zap.NewNop().Sugar())
	p.sleep = func(time.Duration) {}
	return p
}

// TestStrikeSequence drains a pending strike count: one tone pulse per
// strike and the shared count at zero afterwards.
func TestStrikeSequence(t *testing.T) {
	t.Parallel()

	state := alarm.NewState()
	require.True(t, state.Update(time.Second, func(f *alarm.Flags) { f.Strikes = 3 }))

	out := &fakeOutput{}
	p := newTestPlayer(out, fixedVolume(1000), state)
	p.serve()

	require.Len(t, out.plays, 3)
	f, ok := state.Snapshot(time.Second)
	require.True(t, ok)
	require.Zero(t, f.Strikes)
	require.NotZero(t, out.silences)
}

// TestMutedStrikesStaySilent keeps the volume at the mute threshold; the
// strikes still drain on schedule but no tone is ever started.
func TestMutedStrikesStaySilent(t *testing.T) {
	t.Parallel()

	state := alarm.NewState()
	require.True(t, state.Update(time.Second, func(f *alarm.Flags) { f.Strikes = 2 }))

	out := &fakeOutput{}
	p := newTestPlayer(out, fixedVolume(128), state)
	p.serve()

	require.Empty(t, out.plays)
	f, ok := state.Snapshot(time.Second)
	require.True(t, ok)
	require.Zero(t, f.Strikes)
}

// TestRingUntilCleared loops the ring cadence until another party clears
// the shared flag.
func TestRingUntilCleared(t *testing.T) {
	t.Parallel()

	state := alarm.NewState()
	require.True(t, state.Update(time.Second, func(f *alarm.Flags) { f.Ringing = true }))

	out := &fakeOutput{}
	p := newTestPlayer(out, fixedVolume(2047), state)

	sleeps := 0
	p.sleep = func(time.Duration) {
		sleeps++
		if sleeps == 6 { // three full on/off cycles
			require.True(t, state.Update(time.Second, func(f *alarm.Flags) { f.Ringing = false }))
		}
	}

	p.serve()

	require.Len(t, out.plays, 3)
	for _, freq := range out.plays {
		require.Equal(t, 2000, freq)
	}
}

// TestStrikeLocalFallbackWhenLockBusy holds the state lock while a
// strike sequence runs; the player must finish on its local count and
// leave the shared count untouched. The two counters drifting apart here
// is the documented weak-consistency policy, not a bug under test.
func TestStrikeLocalFallbackWhenLockBusy(t *testing.T) {
	t.Parallel()

	state := alarm.NewState()
	require.True(t, state.Update(time.Second, func(f *alarm.Flags) { f.Strikes = 2 }))

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		state.Update(time.Minute, func(*alarm.Flags) {
			close(entered)
			<-release
		})
	}()
	<-entered

	out := &fakeOutput{}
	p := newTestPlayer(out, fixedVolume(1000), state)
	p.cfg.LockWait = 5 * time.Millisecond
	p.strike(2)

	close(release)
	<-done

	require.Len(t, out.plays, 2)
	f, ok := state.Snapshot(time.Second)
	require.True(t, ok)
	require.Equal(t, 2, f.Strikes, "shared count must be left as-is on lock timeout")
}

// TestMapFrequency pins down the volume curve: mute at and below the
// threshold, the configured maximum at full scale, and a monotonic
// non-decreasing line in between.
func TestMapFrequency(t *testing.T) {
	t.Parallel()

	cfg := testConfig()

	for _, raw := range []int{-5, 0, 64, 128} {
		_, audible := mapFrequency(raw, cfg)
		require.False(t, audible, "raw %d should be mute", raw)
	}

	freq, audible := mapFrequency(cfg.RawMax, cfg)
	require.True(t, audible)
	require.Equal(t, cfg.FreqMax, freq)

	freq, audible = mapFrequency(cfg.RawMax+100, cfg)
	require.True(t, audible)
	require.Equal(t, cfg.FreqMax, freq, "mapping saturates above full scale")

	prev := 0
	for raw := cfg.MuteBelow + 1; raw <= cfg.RawMax; raw++ {
		freq, audible := mapFrequency(raw, cfg)
		require.True(t, audible)
		require.GreaterOrEqual(t, freq, cfg.FreqMin)
		require.LessOrEqual(t, freq, cfg.FreqMax)
		require.GreaterOrEqual(t, freq, prev, "mapping must be monotonic at raw %d", raw)
		prev = freq
	}
}

// TestServeOrdersStrikesBeforeRing wakes with both stages pending; the
// discrete strikes must drain before the continuous ring starts.
func TestServeOrdersStrikesBeforeRing(t *testing.T) {
	t.Parallel()

	state := alarm.NewState()
	require.True(t, state.Update(time.Second, func(f *alarm.Flags) {
		f.Ringing = true
		f.Strikes = 2
	}))

	out := &fakeOutput{}
	p := newTestPlayer(out, fixedVolume(1000), state)

	ringCycles := 0
	p.sleep = func(d time.Duration) {
		if d == p.cfg.RingTone {
			ringCycles++
			if ringCycles == 2 {
				require.True(t, state.Update(time.Second, func(f *alarm.Flags) { f.Ringing = false }))
			}
		}
	}

	p.serve()

	// Two strike pulses, then two ring pulses.
	require.Len(t, out.plays, 4)
	f, ok := state.Snapshot(time.Second)
	require.True(t, ok)
	require.Zero(t, f.Strikes)
	require.False(t, f.Ringing)
}
