// internal/sink/report.go
package sink

import (
	"log/slog"
	"math"

	"github.com/tamzrod/ec-smartlogger/internal/compensate"
	"github.com/tamzrod/ec-smartlogger/internal/sampler"
)

// Report scores one cycle against a reference standard solution.
// The standard value is deployment-specific and supplied by the caller,
// not a property of the sensor protocol.
type Report struct {
	SensorError float64
	SmartError  float64
	Improvement float64
	SensorPass  bool
	SmartPass   bool
}

// Score computes validation metrics for one record.
func Score(rec sampler.Record, standard, tolerance float64) Report {
	sensorErr := math.Abs(rec.Reading.SensorEC - standard)
	smartErr := math.Abs(rec.Result.SmartEC - standard)

	return Report{
		SensorError: sensorErr,
		SmartError:  smartErr,
		Improvement: sensorErr - smartErr,
		SensorPass:  sensorErr <= tolerance,
		SmartPass:   smartErr <= tolerance,
	}
}

// ReportSink emits one structured validation line per cycle.
type ReportSink struct {
	log       *slog.Logger
	standard  float64
	tolerance float64
}

func NewReportSink(log *slog.Logger, standard, tolerance float64) *ReportSink {
	return &ReportSink{log: log, standard: standard, tolerance: tolerance}
}

func (s *ReportSink) Emit(rec sampler.Record) {
	rep := Score(rec, s.standard, s.tolerance)

	s.log.Info("cycle",
		"cycle", rec.Reading.Cycle,
		"temp", rec.Reading.Temperature,
		"temp_hex", rec.Reading.TempHex,
		"band", compensate.BandLabel(rec.Reading.Temperature),
		"raw_ec", rec.Reading.RawEC,
		"raw_ec_hex", rec.Reading.RawECHex,
		"sensor_ec", rec.Reading.SensorEC,
		"smart_ec", rec.Result.SmartEC,
		"k", rec.Result.KUsed,
		"sensor_pass", rep.SensorPass,
		"smart_pass", rep.SmartPass,
		"improvement", rep.Improvement,
	)
}
