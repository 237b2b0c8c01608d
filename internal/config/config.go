package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds runtime configuration for the annotator.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug   bool   `json:"debug"`
	LogFile string `json:"log_file"`

	// Interaction
	DragThreshold float64 `json:"drag_threshold"`
	ZoomStep      float64 `json:"zoom_step"`
	WheelStep     float64 `json:"wheel_step"`
	PanStep       int     `json:"pan_step"`
	SmoothZoom    bool    `json:"smooth_zoom"`
	SmoothZoomMS  int     `json:"smooth_zoom_ms"`

	// UI
	ExportFormat string `json:"export_format"`
	ShowHelp     bool   `json:"show_help"`
}

// ExportFormats lists the accepted export_format values.
var ExportFormats = []string{"svg", "wkt", "geojson", "csv"}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:         false,
		DragThreshold: 4,
		ZoomStep:      1.2,
		WheelStep:     1.1,
		PanStep:       16,
		SmoothZoom:    true,
		SmoothZoomMS:  150,
		ExportFormat:  "svg",
		ShowHelp:      true,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if c.DragThreshold <= 0 {
		c.DragThreshold = d.DragThreshold
	}
	if c.ZoomStep <= 1 {
		c.ZoomStep = d.ZoomStep
	}
	if c.WheelStep <= 1 {
		c.WheelStep = d.WheelStep
	}
	if c.PanStep <= 0 {
		c.PanStep = d.PanStep
	}
	if c.SmoothZoomMS <= 0 || c.SmoothZoomMS > 2000 {
		c.SmoothZoomMS = d.SmoothZoomMS
	}
	c.ExportFormat = strings.ToLower(strings.TrimSpace(c.ExportFormat))
	known := false
	for _, f := range ExportFormats {
		if c.ExportFormat == f {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("config: unknown export_format %q", c.ExportFormat)
	}
	return nil
}

// DefaultPath returns the per-user config location, or "" when the user
// config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "polytrace", "config.json")
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
		return DefaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		cfg.ExportFormat = DefaultConfig().ExportFormat
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
