// Package rotary decodes a two-line quadrature signal into discrete
// direction steps.
package rotary

import (
	"context"
	"time"
)

type Direction int

const (
	NoStep Direction = iota
	Forward
	Backward
)

const samplingTime = 2 * time.Millisecond

// Decoder samples the two raw lines and emits a step on each transition
// of the A line. Debouncing is edge-level: a sample only counts when it
// differs from the previously observed raw state, never by a timer. The
// polarity of B at the moment A moves gives the direction.
type Decoder struct {
	readA func() bool
	readB func() bool
	prevA bool
	prevB bool
}

func New(readA, readB func() bool) *Decoder {
	return &Decoder{
		readA: readA,
		readB: readB,
		prevA: readA(),
		prevB: readB(),
	}
}

// Run samples until ctx is cancelled, sending each detected step on the
// steps channel.
func (d *Decoder) Run(ctx context.Context, steps chan<- Direction) {
	tick := time.NewTicker(samplingTime)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if s := d.sample(); s != NoStep {
				select {
				case steps <- s:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

func (d *Decoder) sample() Direction {
	a, b := d.readA(), d.readB()
	moved := a != d.prevA
	d.prevA, d.prevB = a, b
	if !moved {
		return NoStep
	}
	// On either edge of A, the lines disagreeing means clockwise.
	if a != b {
		return Forward
	}
	return Backward
}
