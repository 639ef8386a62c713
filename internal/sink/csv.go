// internal/sink/csv.go
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/tamzrod/ec-smartlogger/internal/sampler"
)

var csvHeader = []string{
	"Timestamp", "Temperature", "Hex_Temp", "Raw_EC", "Hex_Raw_EC",
	"Sensor_Default_EC", "Smart_Calc_EC", "Deviation",
}

// CSVSink appends one row per successful cycle. The header goes out
// only when the file is created; rows flush immediately so a hard stop
// loses at most the current line.
type CSVSink struct {
	f *os.File
	w *csv.Writer
}

func NewCSVSink(path string) (*CSVSink, error) {
	_, statErr := os.Stat(path)
	existed := statErr == nil

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("sink: open %s: %w", path, err)
	}

	s := &CSVSink{f: f, w: csv.NewWriter(f)}

	if !existed {
		if err := s.w.Write(csvHeader); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("sink: write header: %w", err)
		}
		s.w.Flush()
		if err := s.w.Error(); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("sink: write header: %w", err)
		}
	}

	return s, nil
}

// Append writes one record row.
func (s *CSVSink) Append(rec sampler.Record) error {
	r := rec.Reading
	deviation := r.SensorEC - rec.Result.SmartEC

	row := []string{
		r.At.Format("2006-01-02 15:04:05"),
		formatFloat(r.Temperature),
		r.TempHex,
		formatFloat(r.RawEC),
		r.RawECHex,
		formatFloat(r.SensorEC),
		formatFloat(rec.Result.SmartEC),
		formatFloat(deviation),
	}

	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("sink: append: %w", err)
	}
	s.w.Flush()
	return s.w.Error()
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	return s.f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
