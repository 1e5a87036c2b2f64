// Package hw wraps the GPIO and I2C peripherals behind the small
// interfaces the core packages consume. rpio.Open must have succeeded
// before any of these are constructed.
package hw

import (
	"github.com/stianeikeland/go-rpio/v4"
)

// pwmCycle is the duty cycle length; the PWM clock runs at the tone
// frequency times this, with a 50% duty for a square-wave tone.
const pwmCycle = 64

// Buzzer drives a piezo element from a hardware PWM pin.
type Buzzer struct {
	pin rpio.Pin
}

func NewBuzzer(pin int) *Buzzer {
	p := rpio.Pin(pin)
	p.Mode(rpio.Pwm)
	p.DutyCycle(0, pwmCycle)
	return &Buzzer{pin: p}
}

func (b *Buzzer) Play(freq int) {
	b.pin.Freq(freq * pwmCycle)
	b.pin.DutyCycle(pwmCycle/2, pwmCycle)
}

func (b *Buzzer) Silence() {
	b.pin.DutyCycle(0, pwmCycle)
}

// StopLine is the active-low stop button input.
type StopLine struct {
	pin rpio.Pin
}

func NewStopLine(pin int) *StopLine {
	p := rpio.Pin(pin)
	p.Input()
	p.PullUp()
	return &StopLine{pin: p}
}

func (l *StopLine) Pressed() bool {
	return l.pin.Read() == rpio.Low
}

// RotaryLines exposes the raw quadrature levels for the decoder.
type RotaryLines struct {
	a rpio.Pin
	b rpio.Pin
}

func NewRotaryLines(a, b int) *RotaryLines {
	pa, pb := rpio.Pin(a), rpio.Pin(b)
	pa.Input()
	pa.PullUp()
	pb.Input()
	pb.PullUp()
	return &RotaryLines{a: pa, b: pb}
}

func (r *RotaryLines) ReadA() bool { return r.a.Read() == rpio.High }
func (r *RotaryLines) ReadB() bool { return r.b.Read() == rpio.High }
