package hw

import (
	"time"

	"github.com/davecheney/i2c"
)

const (
	adcConvReg   = 0x00
	adcConfigReg = 0x01

	// single-shot, AIN0 single-ended, +-4.096V, 1600SPS
	adcConfigHi = 0xc3
	adcConfigLo = 0x83

	adcSettle = time.Millisecond
)

// VolumeADC reads the volume potentiometer through an ADS1015 on the
// I2C bus. Readings are 12-bit, 0..2047 for the single-ended wiring. A
// failed transfer repeats the previous reading; the pot is a human input
// and a stale sample for one cycle is harmless.
type VolumeADC struct {
	bus  *i2c.I2C
	buf  [2]byte
	last int
}

func NewVolumeADC(bus *i2c.I2C) *VolumeADC {
	return &VolumeADC{bus: bus}
}

func (a *VolumeADC) Read() int {
	if _, err := a.bus.Write([]byte{adcConfigReg, adcConfigHi, adcConfigLo}); err != nil {
		return a.last
	}
	time.Sleep(adcSettle)
	if _, err := a.bus.Write([]byte{adcConvReg}); err != nil {
		return a.last
	}
	if _, err := a.bus.Read(a.buf[:]); err != nil {
		return a.last
	}
	v := int(a.buf[0])<<4 | int(a.buf[1])>>4
	if v > 0x7ff {
		// negative in two's complement; the pot can only graze below
		// ground, clamp to zero
		v = 0
	}
	a.last = v
	return v
}
