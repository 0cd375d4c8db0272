package config

import (
	"encoding/json"
	"os"
	"time"
)

// Config holds runtime configuration for scanning, detection and message output.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// OSC listener address
	OSCHost string `json:"osc_host"`
	OSCPort int    `json:"osc_port"`

	// Scan geometry. The source image is resized to FrameWidth x FrameHeight.
	SliceWidth      int     `json:"slice_width"`
	FrameWidth      int     `json:"frame_width"`
	FrameHeight     int     `json:"frame_height"`
	DurationSeconds float64 `json:"duration_seconds"`

	// Detector selects the keypoint backend: "sift" or "orb".
	Detector      string `json:"detector"`
	DrawKeypoints bool   `json:"draw_keypoints"`

	// Display
	WindowTitle     string `json:"window_title"`
	DarkMode        bool   `json:"dark_mode"`
	PanelWidth      int    `json:"panel_width"`
	IdleTickMs      int    `json:"idle_tick_ms"`
	DebugIntervalMs int    `json:"debug_interval_ms"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:           false,
		OSCHost:         "127.0.0.1",
		OSCPort:         8000,
		SliceWidth:      60,
		FrameWidth:      1424,
		FrameHeight:     848,
		DurationSeconds: 10,
		Detector:        "sift",
		DrawKeypoints:   true,
		WindowTitle:     "Image with Analysis",
		PanelWidth:      140,
		IdleTickMs:      30,
		DebugIntervalMs: 2000,
	}
}

// Validate clamps/normalizes values to safe ranges.
// A slice wider than the frame is not clamped here; the scan controller rejects it.
func (c *Config) Validate() error {
	if c.OSCHost == "" {
		c.OSCHost = "127.0.0.1"
	}
	if c.OSCPort <= 0 || c.OSCPort > 65535 {
		c.OSCPort = 8000
	}
	if c.SliceWidth <= 0 {
		c.SliceWidth = 60
	}
	if c.FrameWidth <= 0 {
		c.FrameWidth = 1424
	}
	if c.FrameHeight <= 0 {
		c.FrameHeight = 848
	}
	if c.DurationSeconds <= 0 {
		c.DurationSeconds = 10
	}
	switch c.Detector {
	case "sift", "orb":
	default:
		c.Detector = "sift"
	}
	if c.WindowTitle == "" {
		c.WindowTitle = "Image with Analysis"
	}
	if c.PanelWidth < 100 {
		c.PanelWidth = 140
	}
	if c.IdleTickMs <= 0 {
		c.IdleTickMs = 30
	}
	if c.DebugIntervalMs <= 0 {
		c.DebugIntervalMs = 2000
	}
	return nil
}

// Duration returns the total scan duration.
func (c *Config) Duration() time.Duration {
	return time.Duration(c.DurationSeconds * float64(time.Second))
}

// IdleTick returns the idle re-render interval.
func (c *Config) IdleTick() time.Duration {
	return time.Duration(c.IdleTickMs) * time.Millisecond
}

// DebugInterval returns the period of the debug stats loggers.
func (c *Config) DebugInterval() time.Duration {
	return time.Duration(c.DebugIntervalMs) * time.Millisecond
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
