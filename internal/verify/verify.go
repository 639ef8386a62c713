// internal/verify/verify.go
package verify

import (
	"log/slog"
	"math"
	"time"

	"github.com/tamzrod/ec-smartlogger/internal/channel"
	"github.com/tamzrod/ec-smartlogger/internal/registers"
)

// FloatEpsilon is the read-back tolerance for float writes.
// Firmware may round; a sub-millunit difference is not a failure.
const FloatEpsilon = 0.001

// SettleDelay gives the firmware time to process both words of a
// multi-register float write before the verifying read.
const SettleDelay = 100 * time.Millisecond

// Report is the outcome of one verified write.
// Accepted=false is the only fatal shape: the raw write itself failed.
// Accepted=true with Matched=false means the device took the write but
// the read-back differs beyond tolerance, a warning, never an abort.
type Report struct {
	Accepted bool
	Matched  bool
	ReadBack float64
}

// Writer performs register writes with a mandatory read-back check.
type Writer struct {
	client channel.Client
	log    *slog.Logger

	// settle is replaceable so tests do not sleep.
	settle func()
}

func New(client channel.Client, log *slog.Logger) *Writer {
	return &Writer{
		client: client,
		log:    log,
		settle: func() { time.Sleep(SettleDelay) },
	}
}

// WriteInteger writes one register and verifies it by exact equality.
func (w *Writer) WriteInteger(addr, value uint16) (Report, error) {
	w.log.Info("write register", "addr", addr, "value", value)

	if err := w.client.WriteRegister(addr, value); err != nil {
		return Report{}, err
	}

	rep := Report{Accepted: true}

	words, err := w.client.ReadRegisters(addr, 1)
	if err != nil || len(words) != 1 {
		w.log.Warn("verify read-back failed", "addr", addr, "err", err)
		return rep, nil
	}

	rep.ReadBack = float64(words[0])
	rep.Matched = words[0] == value
	if !rep.Matched {
		w.log.Warn("read-back differs", "addr", addr, "wrote", value, "read", words[0])
	}
	return rep, nil
}

// WriteFloat writes one float pair and verifies it within FloatEpsilon.
func (w *Writer) WriteFloat(addr uint16, value float32) (Report, error) {
	hi, lo := registers.EncodeFloat(value)
	w.log.Info("write float", "addr", addr, "value", value,
		"hex", registers.HexString(hi, lo))

	if err := w.client.WriteRegisters(addr, []uint16{hi, lo}); err != nil {
		return Report{}, err
	}

	rep := Report{Accepted: true}
	w.settle()

	back, bhi, blo, err := channel.ReadFloat(w.client, addr)
	if err != nil {
		w.log.Warn("verify read-back failed", "addr", addr, "err", err)
		return rep, nil
	}

	rep.ReadBack = float64(back)
	rep.Matched = math.Abs(float64(back)-float64(value)) < FloatEpsilon
	if !rep.Matched {
		w.log.Warn("read-back differs", "addr", addr, "wrote", value,
			"read", back, "hex", registers.HexString(bhi, blo))
	}
	return rep, nil
}
