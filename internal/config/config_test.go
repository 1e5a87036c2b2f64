package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks range and overlap rules.
func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, Validate(cfg))

	cfg = Default()
	cfg.AlarmHour = 24
	require.Error(t, Validate(cfg))

	cfg = Default()
	cfg.AlarmMinute = -1
	require.Error(t, Validate(cfg))

	cfg = Default()
	cfg.StopPin = cfg.BuzzerPin
	require.ErrorIs(t, Validate(cfg), errPinOverlap)

	cfg = Default()
	cfg.VolumeMuteBelow = cfg.VolumeMax
	require.Error(t, Validate(cfg))

	cfg = Default()
	cfg.ToneFreqMax = cfg.ToneFreqMin
	require.Error(t, Validate(cfg))
}

// TestValidateFillsDefaults: zero durations pick up the defaults instead
// of failing.
func TestValidateFillsDefaults(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.StrikeTone = 0
	cfg.LockWait = 0
	require.NoError(t, Validate(cfg))
	require.Equal(t, 300*time.Millisecond, cfg.StrikeTone)
	require.Equal(t, 50*time.Millisecond, cfg.LockWait)
}

// TestSaveLoadRoundtrip ensures settings persist and load back.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chimeclock.yaml")

	cfg := Default()
	cfg.AlarmHour = 21
	cfg.AlarmMinute = 45
	cfg.VolumeMuteBelow = 256
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

// TestLoadEmptyPathUsesDefaults mirrors running without --config.
func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

// TestLoadMissingFile fails loudly rather than degrading.
func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
