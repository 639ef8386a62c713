// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logger LoggerConfig `yaml:"logger"`
}

// ---- LOGGER ----

type LoggerConfig struct {
	// Ports overrides the built-in candidate scan order when set.
	Ports []string `yaml:"ports"`

	SlaveID uint8      `yaml:"slave_id"`
	Link    LinkConfig `yaml:"link"`

	ProbeTimeoutMs   int `yaml:"probe_timeout_ms"`
	SessionTimeoutMs int `yaml:"session_timeout_ms"`
	SampleIntervalMs int `yaml:"sample_interval_ms"`

	CalibrationMode int `yaml:"calibration_mode"`

	CSVPath string `yaml:"csv_path"`

	// StandardValue and Tolerance score readings against a reference
	// standard solution. Deployment-specific, consumed only by the
	// report sink.
	StandardValue float64 `yaml:"standard_value"`
	Tolerance     float64 `yaml:"tolerance"`
}

// ---- LINK ----

type LinkConfig struct {
	Baud     int    `yaml:"baud"`
	DataBits int    `yaml:"data_bits"`
	Parity   string `yaml:"parity"`
	StopBits int    `yaml:"stop_bits"`
}

// Load reads and decodes a YAML config file.
// An empty path yields an empty config; deployment defaults apply
// through Normalize.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}
