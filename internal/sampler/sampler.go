// internal/sampler/sampler.go
package sampler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/tamzrod/ec-smartlogger/internal/channel"
	"github.com/tamzrod/ec-smartlogger/internal/compensate"
	"github.com/tamzrod/ec-smartlogger/internal/registers"
)

// Config is the minimal runtime config the sampler needs.
type Config struct {
	Interval time.Duration
}

// Sampler is a dumb, clock-driven reader over one open session.
// It owns the cycle counter; nothing about a cycle is global.
type Sampler struct {
	cfg    Config
	client channel.Client
	log    *slog.Logger

	cycle    uint64
	failures uint64 // consecutive failed cycles, surfaced for operators
}

// New creates a sampler with immutable config.
func New(cfg Config, client channel.Client, log *slog.Logger) (*Sampler, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("sampler: interval must be > 0")
	}
	if client == nil {
		return nil, errors.New("sampler: client required")
	}
	return &Sampler{cfg: cfg, client: client, log: log}, nil
}

// SampleOnce performs exactly one cycle.
// All-or-nothing: any read failure abandons the cycle, no partial
// record is ever produced.
func (s *Sampler) SampleOnce() (Record, error) {
	s.cycle++

	temp, tHi, tLo, err := channel.ReadFloat(s.client, registers.Temperature)
	if err != nil {
		return Record{}, err
	}

	rawEC, rHi, rLo, err := channel.ReadFloat(s.client, registers.RawEC)
	if err != nil {
		return Record{}, err
	}

	sensorEC, _, _, err := channel.ReadFloat(s.client, registers.SensorEC)
	if err != nil {
		return Record{}, err
	}

	res, err := compensate.Evaluate(float64(rawEC), float64(temp))
	if err != nil {
		return Record{}, err
	}

	return Record{
		Reading: Reading{
			Temperature: float64(temp),
			RawEC:       float64(rawEC),
			SensorEC:    float64(sensorEC),
			TempHex:     registers.HexString(tHi, tLo),
			RawECHex:    registers.HexString(rHi, rLo),
			At:          time.Now(),
			Cycle:       s.cycle,
		},
		Result: res,
	}, nil
}
