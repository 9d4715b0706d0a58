// Package config provides configuration loading and management for radonct.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"radonct/internal/models"
	"radonct/pkg/reconstruction"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Acquisition geometry
	Geometry struct {
		// ImageSize is the side length of synthesised phantoms and the
		// default reconstruction size
		ImageSize int `yaml:"imageSize"`

		// AngleCount is the number of projection angles
		AngleCount int `yaml:"angleCount"`

		// AngleStart and AngleStop bound the half-open angle range in degrees
		AngleStart float64 `yaml:"angleStart"`
		AngleStop  float64 `yaml:"angleStop"`
	} `yaml:"geometry"`

	// Transform engine parameters
	Reconstruction struct {
		// Projector is the forward projection strategy: rotation or raytrace
		Projector string `yaml:"projector"`

		// BackProjector is the back-projection geometry: coordinate or rotation
		BackProjector string `yaml:"backProjector"`

		// Workers is the number of goroutines per call; 0 uses all CPUs
		Workers int `yaml:"workers"`

		// ClampLimit bounds sinogram magnitudes before filtering
		ClampLimit float64 `yaml:"clampLimit"`

		// PadFilter zero-pads projections before ramp filtering
		PadFilter bool `yaml:"padFilter"`
	} `yaml:"reconstruction"`

	// Output parameters
	Output struct {
		// Dir is where generated files are written
		Dir string `yaml:"dir"`

		// Verbose enables debug logging
		Verbose bool `yaml:"verbose"`

		// LogFormat is console or json
		LogFormat string `yaml:"logFormat"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Reference acquisition: 180 angles over [0, 180)
	cfg.Geometry.ImageSize = 256
	cfg.Geometry.AngleCount = 180
	cfg.Geometry.AngleStart = 0
	cfg.Geometry.AngleStop = 180

	cfg.Reconstruction.Projector = string(reconstruction.ProjectorRotation)
	cfg.Reconstruction.BackProjector = string(reconstruction.BackProjectorCoordinate)
	cfg.Reconstruction.Workers = 0
	cfg.Reconstruction.ClampLimit = reconstruction.DefaultClampLimit
	cfg.Reconstruction.PadFilter = true

	cfg.Output.Dir = "output"
	cfg.Output.Verbose = false
	cfg.Output.LogFormat = "console"

	return cfg
}

// Validate checks value ranges and method names
func (c *Config) Validate() error {
	if c.Geometry.ImageSize <= 0 {
		return fmt.Errorf("geometry.imageSize must be positive, got %d", c.Geometry.ImageSize)
	}
	if c.Geometry.AngleCount <= 0 {
		return fmt.Errorf("geometry.angleCount must be positive, got %d", c.Geometry.AngleCount)
	}
	if c.Geometry.AngleStop <= c.Geometry.AngleStart {
		return fmt.Errorf("geometry.angleStop (%v) must exceed angleStart (%v)",
			c.Geometry.AngleStop, c.Geometry.AngleStart)
	}
	if _, err := reconstruction.ParseProjectorMethod(c.Reconstruction.Projector); err != nil {
		return fmt.Errorf("reconstruction.projector: %w", err)
	}
	if _, err := reconstruction.ParseBackProjectorMethod(c.Reconstruction.BackProjector); err != nil {
		return fmt.Errorf("reconstruction.backProjector: %w", err)
	}
	if c.Reconstruction.ClampLimit < 0 {
		return fmt.Errorf("reconstruction.clampLimit must not be negative, got %v", c.Reconstruction.ClampLimit)
	}
	switch c.Output.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("output.logFormat must be console or json, got %q", c.Output.LogFormat)
	}
	return nil
}

// Angles returns the acquisition angle set described by the geometry section
func (c *Config) Angles() models.Angles {
	return models.UniformAngles(c.Geometry.AngleCount, c.Geometry.AngleStart, c.Geometry.AngleStop)
}

// EngineOptions converts the reconstruction section into engine options.
// The logger is left for the caller to attach.
func (c *Config) EngineOptions() (reconstruction.Options, error) {
	projector, err := reconstruction.ParseProjectorMethod(c.Reconstruction.Projector)
	if err != nil {
		return reconstruction.Options{}, err
	}
	backProjector, err := reconstruction.ParseBackProjectorMethod(c.Reconstruction.BackProjector)
	if err != nil {
		return reconstruction.Options{}, err
	}

	opts := reconstruction.DefaultOptions()
	opts.Projector = projector
	opts.BackProjector = backProjector
	opts.Workers = c.Reconstruction.Workers
	opts.ClampLimit = c.Reconstruction.ClampLimit
	opts.PadFilter = c.Reconstruction.PadFilter
	return opts, nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// Marshal encodes the configuration as YAML
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("error marshaling config: %w", err)
	}
	return data, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
