package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.SliceWidth)
	assert.Equal(t, 1424, cfg.FrameWidth)
	assert.Equal(t, 848, cfg.FrameHeight)
}

func TestSaveLoad_OverridesAndClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	cfg := DefaultConfig()
	cfg.OSCPort = 9001
	cfg.Detector = "orb"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9001, loaded.OSCPort)
	assert.Equal(t, "orb", loaded.Detector)

	require.NoError(t, os.WriteFile(path, []byte(`{"osc_port": -1, "detector": "surf", "slice_width": 0}`), 0o644))
	loaded, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8000, loaded.OSCPort)
	assert.Equal(t, "sift", loaded.Detector)
	assert.Equal(t, 60, loaded.SliceWidth)
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDuration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DurationSeconds = 6
	assert.Equal(t, 6*time.Second, cfg.Duration())
	assert.Equal(t, 30*time.Millisecond, cfg.IdleTick())
	assert.Equal(t, 2*time.Second, cfg.DebugInterval())
}
