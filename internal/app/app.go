// Package app brings up the hardware and wires the clock core together.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/davecheney/i2c"
	"github.com/stianeikeland/go-rpio/v4"
	"go.uber.org/zap"

	"clock.raspi/chimeclock/internal/adjust"
	"clock.raspi/chimeclock/internal/alarm"
	"clock.raspi/chimeclock/internal/button"
	"clock.raspi/chimeclock/internal/buzzer"
	"clock.raspi/chimeclock/internal/clock"
	"clock.raspi/chimeclock/internal/config"
	"clock.raspi/chimeclock/internal/display"
	"clock.raspi/chimeclock/internal/hw"
	"clock.raspi/chimeclock/internal/rotary"
	"clock.raspi/chimeclock/internal/timeofday"
)

// Run starts the daemon and blocks until ctx is cancelled. Any failure
// to bring up a required peripheral is fatal; there is no degraded mode.
func Run(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) error {
	if err := rpio.Open(); err != nil {
		return fmt.Errorf("open gpio: %w", err)
	}
	defer rpio.Close()

	tone := hw.NewBuzzer(cfg.BuzzerPin)
	defer tone.Silence()
	stopLine := hw.NewStopLine(cfg.StopPin)
	lines := hw.NewRotaryLines(cfg.RotaryPinA, cfg.RotaryPinB)

	adcBus, err := i2c.New(cfg.ADCAddress, cfg.I2CBus)
	if err != nil {
		return fmt.Errorf("open volume adc: %w", err)
	}
	defer adcBus.Close()
	vol := hw.NewVolumeADC(adcBus)

	lcdBus, err := i2c.New(cfg.LCDAddress, cfg.I2CBus)
	if err != nil {
		return fmt.Errorf("open lcd: %w", err)
	}
	defer lcdBus.Close()
	lcd := display.NewLCD(lcdBus)
	lcd.Configure()
	defer lcd.Off()

	// Seed the time fields from the system clock once; from here on the
	// keeper and the rotary adjuster own them.
	n := time.Now()
	tod := timeofday.New(timeofday.Time{Hour: n.Hour(), Minute: n.Minute(), Second: n.Second()})
	state := alarm.NewState()
	event := alarm.NewEvent()

	keeper := clock.NewKeeper(tod, state, event, clock.Config{
		AlarmHour:   cfg.AlarmHour,
		AlarmMinute: cfg.AlarmMinute,
		LockWait:    cfg.LockWait,
	}, log)

	player := buzzer.NewPlayer(tone, vol, state, event, buzzer.Config{
		RawMax:     cfg.VolumeMax,
		MuteBelow:  cfg.VolumeMuteBelow,
		FreqMin:    cfg.ToneFreqMin,
		FreqMax:    cfg.ToneFreqMax,
		StrikeTone: cfg.StrikeTone,
		StrikeGap:  cfg.StrikeGap,
		RingTone:   cfg.RingTone,
		RingGap:    cfg.RingGap,
		LockWait:   cfg.LockWait,
	}, log)

	stop := button.NewStop(stopLine, state, button.Config{
		Poll:        cfg.StopPoll,
		MinInterval: cfg.StopMinInterval,
		LockWait:    cfg.LockWait,
	}, log)

	decoder := rotary.New(lines.ReadA, lines.ReadB)
	adjuster := adjust.New(tod, log)
	renderer := display.NewRenderer(lcd, tod, state, cfg.AlarmHour, cfg.AlarmMinute, cfg.LockWait)

	steps := make(chan rotary.Direction)
	go decoder.Run(ctx, steps)
	go adjuster.Run(ctx, steps)
	go stop.Run(ctx)
	go player.Run(ctx)
	go renderer.Run(ctx)

	log.Infow("chimeclock started",
		"alarm", fmt.Sprintf("%02d:%02d", cfg.AlarmHour, cfg.AlarmMinute))

	// The keeper runs on this goroutine; cancellation unwinds the defers
	// and silences the buzzer on the way out.
	keeper.Run(ctx)
	return nil
}
