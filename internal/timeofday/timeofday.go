package timeofday

import (
	"fmt"
	"sync"
)

// Time is a wall-clock value with second resolution.
type Time struct {
	Hour   int
	Minute int
	Second int
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Store holds the time fields shared by the keeper and the rotary
// adjuster. The mutex is the fast locking domain: it is held only to
// mutate or copy the three fields and never across a sleep or I/O call,
// so the rotary step path can take it at any moment without stalling the
// keeper's tick.
type Store struct {
	mu  sync.Mutex
	now Time
}

func New(t Time) *Store {
	return &Store{now: t}
}

// Snapshot returns a copy of the current time.
func (s *Store) Snapshot() Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Hour returns only the hour field.
func (s *Store) Hour() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now.Hour
}

// Set overwrites the stored time.
func (s *Store) Set(t Time) {
	s.mu.Lock()
	s.now = t
	s.mu.Unlock()
}

// Advance moves the clock one second forward, carrying into minute and
// hour and wrapping at 24, and returns a copy of the new value.
func (s *Store) Advance() Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now.Second++
	if s.now.Second >= 60 {
		s.now.Second = 0
		s.now.Minute++
		if s.now.Minute >= 60 {
			s.now.Minute = 0
			s.now.Hour++
			if s.now.Hour >= 24 {
				s.now.Hour = 0
			}
		}
	}
	return s.now
}

// StepForward moves the clock one minute forward and restarts the
// current minute at second zero. Used by the rotary adjuster.
func (s *Store) StepForward() Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now.Second = 0
	s.now.Minute++
	if s.now.Minute >= 60 {
		s.now.Minute = 0
		s.now.Hour++
		if s.now.Hour >= 24 {
			s.now.Hour = 0
		}
	}
	return s.now
}

// StepBackward moves the clock one minute back, wrapping 00:00 to 23:59,
// and restarts the current minute at second zero.
func (s *Store) StepBackward() Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now.Second = 0
	s.now.Minute--
	if s.now.Minute < 0 {
		s.now.Minute = 59
		s.now.Hour--
		if s.now.Hour < 0 {
			s.now.Hour = 23
		}
	}
	return s.now
}
