// internal/discover/discover.go
package discover

import (
	"errors"
	"fmt"
	"log/slog"

	"go.bug.st/serial"

	"github.com/tamzrod/ec-smartlogger/internal/channel"
	"github.com/tamzrod/ec-smartlogger/internal/registers"
)

// ErrNotFound reports that no candidate answered the handshake.
// Fatal to the run: without a device there is no data.
var ErrNotFound = errors.New("discover: no responding device on any candidate port")

// Factory opens one short-lived probe connection to a candidate port.
// ONE attempt per call, no retries.
type Factory func(device string) (channel.Client, error)

// Candidates returns the probe order. An explicit override wins;
// otherwise the legacy tty scheme is scanned first, then USB adapters,
// then anything else the OS enumerates.
func Candidates(override []string) []string {
	if len(override) > 0 {
		return override
	}

	var out []string
	for i := 0; i <= 20; i++ {
		out = append(out, fmt.Sprintf("/dev/ttyS%d", i))
	}
	for i := 0; i < 5; i++ {
		out = append(out, fmt.Sprintf("/dev/ttyUSB%d", i))
		out = append(out, fmt.Sprintf("/dev/ttyACM%d", i))
	}

	// OS-enumerated ports outside the fixed schemes go last.
	// Enumeration failure is not an error, the fixed list stands alone.
	if ports, err := serial.GetPortsList(); err == nil {
		known := make(map[string]struct{}, len(out))
		for _, p := range out {
			known[p] = struct{}{}
		}
		for _, p := range ports {
			if _, ok := known[p]; !ok {
				out = append(out, p)
			}
		}
	}

	return out
}

// Discover probes candidates strictly in order and returns the first
// port whose device answers a handshake read. Every probe connection is
// closed before the next candidate is tried; the winner's probe is
// closed too, the caller opens a fresh session connection afterwards.
func Discover(log *slog.Logger, candidates []string, open Factory) (string, error) {
	log.Info("scanning for sensor", "candidates", len(candidates))

	for _, device := range candidates {
		probe, err := open(device)
		if err != nil {
			continue
		}

		// Handshake: one read of the temperature pair. Any successful
		// response confirms a device at the expected bus address, the
		// value itself does not matter.
		_, err = probe.ReadRegisters(registers.Temperature, registers.FloatWords)
		_ = probe.Close()

		if err == nil {
			log.Info("sensor found", "port", device)
			return device, nil
		}
		log.Debug("no answer", "port", device)
	}

	return "", ErrNotFound
}
