// Package alarm holds the shared alarm flags and the wake signal that
// connects the clock keeper to the buzzer player.
package alarm

import (
	"time"
)

// Flags is the shared alarm record. Strikes counts the tone pulses still
// owed for the hourly chime; Ringing marks the continuous alarm tone.
type Flags struct {
	Ringing bool
	Strikes int
}

// State guards Flags with a bounded-wait lock. The lock is a capacity-1
// token channel so acquisition can race a timeout; it belongs to the
// task-level locking domain and is never taken from the rotary step path.
type State struct {
	sem   chan struct{}
	flags Flags
}

func NewState() *State {
	return &State{sem: make(chan struct{}, 1)}
}

func (s *State) acquire(wait time.Duration) bool {
	select {
	case s.sem <- struct{}{}:
		return true
	default:
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case s.sem <- struct{}{}:
		return true
	case <-t.C:
		return false
	}
}

func (s *State) release() {
	<-s.sem
}

// Update runs fn with the flags held under the lock, waiting at most
// wait for acquisition. It reports false without running fn when the
// lock stays contended past the deadline; callers fall back to their
// documented best-effort behaviour in that case.
func (s *State) Update(wait time.Duration, fn func(*Flags)) bool {
	if !s.acquire(wait) {
		return false
	}
	defer s.release()
	fn(&s.flags)
	return true
}

// Snapshot copies the flags out under the lock, waiting at most wait.
func (s *State) Snapshot(wait time.Duration) (Flags, bool) {
	if !s.acquire(wait) {
		return Flags{}, false
	}
	defer s.release()
	return s.flags, true
}
