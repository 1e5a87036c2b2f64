package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the pin assignments, the alarm target and the tuning
// knobs for the sound and lock behaviour. Durations are YAML integers in
// nanoseconds when written by Save; missing or zero values fall back to
// the defaults in Validate.
type Config struct {
	// AlarmHour and AlarmMinute fix the daily alarm time. Read-only at
	// runtime.
	AlarmHour   int `yaml:"alarm_hour"`
	AlarmMinute int `yaml:"alarm_minute"`

	// BCM pin numbers.
	RotaryPinA int `yaml:"rotary_pin_a"`
	RotaryPinB int `yaml:"rotary_pin_b"`
	StopPin    int `yaml:"stop_pin"`
	BuzzerPin  int `yaml:"buzzer_pin"`

	// I2C bus and device addresses for the volume ADC and the LCD.
	I2CBus     int   `yaml:"i2c_bus"`
	ADCAddress uint8 `yaml:"adc_address"`
	LCDAddress uint8 `yaml:"lcd_address"`

	// Volume mapping: readings at or below VolumeMuteBelow are silent,
	// VolumeMax maps to ToneFreqMax.
	VolumeMax       int `yaml:"volume_max"`
	VolumeMuteBelow int `yaml:"volume_mute_below"`
	ToneFreqMin     int `yaml:"tone_freq_min"`
	ToneFreqMax     int `yaml:"tone_freq_max"`

	// Playback cadences.
	StrikeTone time.Duration `yaml:"strike_tone"`
	StrikeGap  time.Duration `yaml:"strike_gap"`
	RingTone   time.Duration `yaml:"ring_tone"`
	RingGap    time.Duration `yaml:"ring_gap"`

	// Stop button behaviour.
	StopPoll        time.Duration `yaml:"stop_poll"`
	StopMinInterval time.Duration `yaml:"stop_min_interval"`

	// LockWait bounds every acquisition of the alarm state lock.
	LockWait time.Duration `yaml:"lock_wait"`

	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is used when no --config flag is given.
	DefaultConfigFilename = "chimeclock.yaml"

	defaultFilePermissions = 0o600
)

var errPinOverlap = errors.New("pin assignments overlap")

// Default returns a configuration matching the reference wiring.
func Default() *Config {
	cfg := &Config{
		AlarmHour:   6,
		AlarmMinute: 30,

		RotaryPinA: 17,
		RotaryPinB: 27,
		StopPin:    22,
		BuzzerPin:  18,

		I2CBus:     1,
		ADCAddress: 0x48,
		LCDAddress: 0x3e,

		VolumeMax:       2047,
		VolumeMuteBelow: 128,
		ToneFreqMin:     200,
		ToneFreqMax:     2000,

		StrikeTone: 300 * time.Millisecond,
		StrikeGap:  700 * time.Millisecond,
		RingTone:   250 * time.Millisecond,
		RingGap:    200 * time.Millisecond,

		StopPoll:        20 * time.Millisecond,
		StopMinInterval: 300 * time.Millisecond,

		LockWait: 50 * time.Millisecond,

		LogLevel: "info",
	}
	return cfg
}

// Load reads the configuration from path and validates it. An empty
// path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to path.
func Save(path string, cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, defaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks ranges, fills zero durations with defaults and rejects
// overlapping pin assignments.
func Validate(cfg *Config) error {
	if cfg.AlarmHour < 0 || cfg.AlarmHour > 23 {
		return fmt.Errorf("alarm hour %d out of range", cfg.AlarmHour)
	}
	if cfg.AlarmMinute < 0 || cfg.AlarmMinute > 59 {
		return fmt.Errorf("alarm minute %d out of range", cfg.AlarmMinute)
	}

	pins := []int{cfg.RotaryPinA, cfg.RotaryPinB, cfg.StopPin, cfg.BuzzerPin}
	seen := make(map[int]bool, len(pins))
	for _, p := range pins {
		if p <= 0 {
			return fmt.Errorf("pin %d is not a usable BCM number", p)
		}
		if seen[p] {
			return errPinOverlap
		}
		seen[p] = true
	}

	if cfg.VolumeMax <= cfg.VolumeMuteBelow {
		return fmt.Errorf("volume full scale %d must exceed mute threshold %d",
			cfg.VolumeMax, cfg.VolumeMuteBelow)
	}
	if cfg.ToneFreqMin <= 0 || cfg.ToneFreqMax <= cfg.ToneFreqMin {
		return fmt.Errorf("tone band [%d, %d] is not ascending",
			cfg.ToneFreqMin, cfg.ToneFreqMax)
	}

	d := Default()
	if cfg.StrikeTone <= 0 {
		cfg.StrikeTone = d.StrikeTone
	}
	if cfg.StrikeGap <= 0 {
		cfg.StrikeGap = d.StrikeGap
	}
	if cfg.RingTone <= 0 {
		cfg.RingTone = d.RingTone
	}
	if cfg.RingGap <= 0 {
		cfg.RingGap = d.RingGap
	}
	if cfg.StopPoll <= 0 {
		cfg.StopPoll = d.StopPoll
	}
	if cfg.StopMinInterval <= 0 {
		cfg.StopMinInterval = d.StopMinInterval
	}
	if cfg.LockWait <= 0 {
		cfg.LockWait = d.LockWait
	}

	return nil
}
