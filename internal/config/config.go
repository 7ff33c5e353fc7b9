// Package config provides configuration loading and management for contour-spline.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// LogLevelEnv enables debug logging when set to "debug".
const LogLevelEnv = "CONTOUR_SPLINE_LOG_LEVEL"

// Boundary conditions accepted by spline.boundary.
var boundaries = []string{"not-a-knot", "natural", "clamped", "akima", "fritsch-butland"}

// Edge backends accepted by edges.backend.
var backends = []string{"native", "gocv"}

// Config represents the application configuration loaded from YAML
type Config struct {
	Input struct {
		// Image is the path of the raster to analyse.
		Image string `yaml:"image"`
	} `yaml:"input"`

	Edges struct {
		// Low and High are the Canny hysteresis thresholds on the L1 gradient magnitude.
		Low  float64 `yaml:"low"`
		High float64 `yaml:"high"`

		// BlurRadius is the Gaussian pre-blur radius; 0 disables it.
		BlurRadius float64 `yaml:"blurRadius"`

		// Backend selects the edge/contour implementation: "native" or "gocv".
		Backend string `yaml:"backend"`
	} `yaml:"edges"`

	Contours struct {
		// MinPoints is the smallest simplified contour that becomes a candidate.
		MinPoints int `yaml:"minPoints"`
	} `yaml:"contours"`

	Spline struct {
		// Oversample multiplies the normalized point count to get the sample count.
		Oversample int `yaml:"oversample"`

		// Boundary is the spline end condition.
		Boundary string `yaml:"boundary"`
	} `yaml:"spline"`

	Output struct {
		Path        string  `yaml:"path"`
		DPI         float64 `yaml:"dpi"`
		WidthIn     float64 `yaml:"widthIn"`
		HeightIn    float64 `yaml:"heightIn"`
		PointsColor string  `yaml:"pointsColor"`
		CurveColor  string  `yaml:"curveColor"`

		// MaxPanelPx caps the longest side of a raster drawn into a panel.
		// Zero disables downscaling.
		MaxPanelPx int `yaml:"maxPanelPx"`
	} `yaml:"output"`

	Display struct {
		Enabled bool `yaml:"enabled"`
		Width   int  `yaml:"width"`
		Height  int  `yaml:"height"`
	} `yaml:"display"`

	Log struct {
		Verbose bool `yaml:"verbose"`
	} `yaml:"log"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Input.Image = "src/guinea-pig.jpg"

	cfg.Edges.Low = 50
	cfg.Edges.High = 150
	cfg.Edges.Backend = "native"

	cfg.Contours.MinPoints = 300

	cfg.Spline.Oversample = 3
	cfg.Spline.Boundary = "not-a-knot"

	cfg.Output.Path = "resultado_spline.png"
	cfg.Output.DPI = 300
	cfg.Output.WidthIn = 12
	cfg.Output.HeightIn = 6
	cfg.Output.PointsColor = "#ff0000"
	cfg.Output.CurveColor = "#008000"
	cfg.Output.MaxPanelPx = 1600

	cfg.Display.Enabled = true
	cfg.Display.Width = 1200
	cfg.Display.Height = 600

	if strings.EqualFold(os.Getenv(LogLevelEnv), "debug") {
		cfg.Log.Verbose = true
	}

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		return cfg, nil
	}
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if strings.EqualFold(os.Getenv(LogLevelEnv), "debug") {
		cfg.Log.Verbose = true
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate reports the first setting that cannot drive the pipeline.
func (c *Config) Validate() error {
	if c.Input.Image == "" {
		return errors.New("input.image is empty")
	}
	// 4*255 is the largest L1 Sobel magnitude on 8-bit data.
	if c.Edges.Low < 0 || c.Edges.High > 1020 || c.Edges.Low > c.Edges.High {
		return fmt.Errorf("edges thresholds must satisfy 0 <= low <= high <= 1020, got %g/%g",
			c.Edges.Low, c.Edges.High)
	}
	if c.Edges.BlurRadius < 0 {
		return fmt.Errorf("edges.blurRadius must be >= 0, got %g", c.Edges.BlurRadius)
	}
	if !contains(backends, c.Edges.Backend) {
		return fmt.Errorf("unknown edges.backend %q (want one of %s)", c.Edges.Backend, strings.Join(backends, ", "))
	}
	if c.Contours.MinPoints < 1 {
		return fmt.Errorf("contours.minPoints must be >= 1, got %d", c.Contours.MinPoints)
	}
	if c.Spline.Oversample < 1 {
		return fmt.Errorf("spline.oversample must be >= 1, got %d", c.Spline.Oversample)
	}
	if !contains(boundaries, c.Spline.Boundary) {
		return fmt.Errorf("unknown spline.boundary %q (want one of %s)", c.Spline.Boundary, strings.Join(boundaries, ", "))
	}
	if c.Output.Path == "" {
		return errors.New("output.path is empty")
	}
	if c.Output.DPI <= 0 || c.Output.WidthIn <= 0 || c.Output.HeightIn <= 0 {
		return fmt.Errorf("output dpi and size must be positive, got dpi=%g size=%gx%g",
			c.Output.DPI, c.Output.WidthIn, c.Output.HeightIn)
	}
	if _, err := colorful.Hex(c.Output.PointsColor); err != nil {
		return fmt.Errorf("output.pointsColor: %w", err)
	}
	if _, err := colorful.Hex(c.Output.CurveColor); err != nil {
		return fmt.Errorf("output.curveColor: %w", err)
	}
	if c.Output.MaxPanelPx < 0 {
		return fmt.Errorf("output.maxPanelPx must be >= 0, got %d", c.Output.MaxPanelPx)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
