// internal/diag/diag.go
package diag

import (
	"log/slog"

	"github.com/tamzrod/ec-smartlogger/internal/channel"
	"github.com/tamzrod/ec-smartlogger/internal/registers"
)

// Entry is one diagnostic register value; OK=false marks a failed read.
type Entry struct {
	Register uint16
	Value    uint16
	OK       bool
}

// Result is a one-shot snapshot of the diagnostic and calibration
// registers.
type Result struct {
	Entries []Entry

	CalMode Entry

	Coeff    float32
	CoeffHex string
	CoeffOK  bool
}

// Snapshot reads the generic diagnostic registers plus the calibration
// state. Individual read failures mark the entry and move on: a partial
// snapshot is still useful.
func Snapshot(c channel.Client) Result {
	var res Result

	for _, reg := range registers.DiagnosticRegs {
		e := Entry{Register: reg}
		if words, err := c.ReadRegisters(reg, 1); err == nil && len(words) == 1 {
			e.Value = words[0]
			e.OK = true
		}
		res.Entries = append(res.Entries, e)
	}

	res.CalMode = Entry{Register: registers.CalibrationMode}
	if words, err := c.ReadRegisters(registers.CalibrationMode, 1); err == nil && len(words) == 1 {
		res.CalMode.Value = words[0]
		res.CalMode.OK = true
	}

	if v, hi, lo, err := channel.ReadFloat(c, registers.CalibrationCoeff); err == nil {
		res.Coeff = v
		res.CoeffHex = registers.HexString(hi, lo)
		res.CoeffOK = true
	}

	return res
}

// Log writes the snapshot as structured lines.
func Log(log *slog.Logger, res Result) {
	for _, e := range res.Entries {
		if e.OK {
			log.Info("diagnostic register", "reg", e.Register, "value", e.Value)
		} else {
			log.Warn("diagnostic register read failed", "reg", e.Register)
		}
	}

	if res.CalMode.OK {
		log.Info("calibration mode register", "reg", res.CalMode.Register, "value", res.CalMode.Value)
	} else {
		log.Warn("calibration mode register read failed", "reg", res.CalMode.Register)
	}

	if res.CoeffOK {
		log.Info("calibration coefficient", "value", res.Coeff, "hex", res.CoeffHex)
	} else {
		log.Warn("calibration coefficient read failed")
	}
}
