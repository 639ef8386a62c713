// internal/config/normalize.go
package config

// Deployment defaults for the EC probe link.
const (
	DefaultSlaveID          = 4
	DefaultBaud             = 9600
	DefaultDataBits         = 8
	DefaultParity           = "N"
	DefaultStopBits         = 1
	DefaultProbeTimeoutMs   = 100
	DefaultSessionTimeoutMs = 1000
	DefaultSampleIntervalMs = 1000
	DefaultCSVPath          = "ec_data_log.csv"
	DefaultStandardValue    = 12.88
	DefaultTolerance        = 0.10
)

// Normalize fills deployment defaults for anything left unset.
// It is allowed to mutate configuration.
// It MUST be called before Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	l := &cfg.Logger

	if l.SlaveID == 0 {
		l.SlaveID = DefaultSlaveID
	}
	if l.Link.Baud == 0 {
		l.Link.Baud = DefaultBaud
	}
	if l.Link.DataBits == 0 {
		l.Link.DataBits = DefaultDataBits
	}
	if l.Link.Parity == "" {
		l.Link.Parity = DefaultParity
	}
	if l.Link.StopBits == 0 {
		l.Link.StopBits = DefaultStopBits
	}
	if l.ProbeTimeoutMs == 0 {
		l.ProbeTimeoutMs = DefaultProbeTimeoutMs
	}
	if l.SessionTimeoutMs == 0 {
		l.SessionTimeoutMs = DefaultSessionTimeoutMs
	}
	if l.SampleIntervalMs == 0 {
		l.SampleIntervalMs = DefaultSampleIntervalMs
	}
	if l.CSVPath == "" {
		l.CSVPath = DefaultCSVPath
	}
	if l.StandardValue == 0 {
		l.StandardValue = DefaultStandardValue
	}
	if l.Tolerance == 0 {
		l.Tolerance = DefaultTolerance
	}
}
