// internal/config/validate.go
package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	l := cfg.Logger

	if l.SlaveID < 1 || l.SlaveID > 247 {
		return fmt.Errorf("config: slave_id %d out of range 1-247", l.SlaveID)
	}

	if l.Link.Baud <= 0 {
		return fmt.Errorf("config: baud must be > 0, got %d", l.Link.Baud)
	}

	switch l.Link.DataBits {
	case 7, 8:
	default:
		return fmt.Errorf("config: data_bits must be 7 or 8, got %d", l.Link.DataBits)
	}

	switch l.Link.Parity {
	case "N", "E", "O":
	default:
		return fmt.Errorf("config: parity must be N, E or O, got %q", l.Link.Parity)
	}

	switch l.Link.StopBits {
	case 1, 2:
	default:
		return fmt.Errorf("config: stop_bits must be 1 or 2, got %d", l.Link.StopBits)
	}

	if l.ProbeTimeoutMs <= 0 {
		return fmt.Errorf("config: probe_timeout_ms must be > 0, got %d", l.ProbeTimeoutMs)
	}
	if l.SessionTimeoutMs <= 0 {
		return fmt.Errorf("config: session_timeout_ms must be > 0, got %d", l.SessionTimeoutMs)
	}
	if l.SampleIntervalMs <= 0 {
		return fmt.Errorf("config: sample_interval_ms must be > 0, got %d", l.SampleIntervalMs)
	}

	if l.CalibrationMode < 0 || l.CalibrationMode > 3 {
		return fmt.Errorf("config: calibration_mode %d out of range 0-3", l.CalibrationMode)
	}

	if l.Tolerance <= 0 {
		return fmt.Errorf("config: tolerance must be > 0, got %g", l.Tolerance)
	}

	return nil
}
