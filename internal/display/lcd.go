// Package display renders the clock and alarm snapshots on a 16x2
// character module.
package display

import (
	"time"

	"github.com/davecheney/i2c"
)

// LCD is an ST7032-class 16x2 character module on the I2C bus, the
// command set the AQM1602 family speaks.
type LCD struct {
	bus *i2c.I2C
}

func NewLCD(bus *i2c.I2C) *LCD {
	return &LCD{bus: bus}
}

func (d *LCD) Configure() {
	time.Sleep(100 * time.Millisecond) // recommended wait after power on
	d.bus.Write([]byte{0x00, 0x01})    // clear
	time.Sleep(20 * time.Millisecond)
	d.bus.Write([]byte{0x00, 0x02}) // home
	time.Sleep(2 * time.Millisecond)
	d.bus.Write([]byte{0x00, 0x0c}) // display on
}

func (d *LCD) Off() {
	d.bus.Write([]byte{0x00, 0x08})
}

// PrintAt writes s starting at column x of row y.
func (d *LCD) PrintAt(x, y uint8, s []byte) {
	x &= 0x0f
	y &= 0x01
	d.bus.Write([]byte{0x00, 0x80 + y*0x20 + x}) // set DDRAM address
	time.Sleep(10 * time.Millisecond)
	d.bus.Write(append([]byte{0x40}, s...))
}
