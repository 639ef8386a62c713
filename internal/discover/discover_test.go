// internal/discover/discover_test.go
package discover

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/ec-smartlogger/internal/channel"
)

type probeConn struct {
	device string
	answer bool
	events *[]string
}

func (p *probeConn) ReadRegisters(addr, qty uint16) ([]uint16, error) {
	*p.events = append(*p.events, "read "+p.device)
	if !p.answer {
		return nil, errors.New("timeout")
	}
	return make([]uint16, qty), nil
}

func (p *probeConn) WriteRegister(addr, value uint16) error {
	return errors.New("probe is read-only")
}

func (p *probeConn) WriteRegisters(addr uint16, values []uint16) error {
	return errors.New("probe is read-only")
}

func (p *probeConn) Close() error {
	*p.events = append(*p.events, "close "+p.device)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDiscover_SecondCandidateWins(t *testing.T) {
	var events []string

	open := func(device string) (channel.Client, error) {
		events = append(events, "open "+device)
		return &probeConn{device: device, answer: device == "/dev/ttyUSB1", events: &events}, nil
	}

	port, err := Discover(testLogger(), []string{"/dev/ttyUSB0", "/dev/ttyUSB1"}, open)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB1", port)

	// The first probe closes before the second opens, and the winner's
	// probe closes too.
	assert.Equal(t, []string{
		"open /dev/ttyUSB0", "read /dev/ttyUSB0", "close /dev/ttyUSB0",
		"open /dev/ttyUSB1", "read /dev/ttyUSB1", "close /dev/ttyUSB1",
	}, events)
}

func TestDiscover_OpenFailureSkipsCandidate(t *testing.T) {
	var events []string

	open := func(device string) (channel.Client, error) {
		events = append(events, "open "+device)
		if device == "/dev/ttyS0" {
			return nil, errors.New("no such device")
		}
		return &probeConn{device: device, answer: true, events: &events}, nil
	}

	port, err := Discover(testLogger(), []string{"/dev/ttyS0", "/dev/ttyS1"}, open)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyS1", port)
}

func TestDiscover_ScanningStopsAtFirstMatch(t *testing.T) {
	var events []string

	open := func(device string) (channel.Client, error) {
		events = append(events, "open "+device)
		return &probeConn{device: device, answer: true, events: &events}, nil
	}

	port, err := Discover(testLogger(), []string{"/dev/ttyS0", "/dev/ttyS1"}, open)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyS0", port)

	for _, e := range events {
		assert.False(t, strings.HasSuffix(e, "/dev/ttyS1"), "second candidate should never be touched")
	}
}

func TestDiscover_Exhausted(t *testing.T) {
	var events []string

	open := func(device string) (channel.Client, error) {
		return &probeConn{device: device, answer: false, events: &events}, nil
	}

	_, err := Discover(testLogger(), []string{"/dev/ttyS0", "/dev/ttyS1"}, open)
	require.ErrorIs(t, err, ErrNotFound)

	// Both probes were closed despite failing handshakes.
	assert.Contains(t, events, "close /dev/ttyS0")
	assert.Contains(t, events, "close /dev/ttyS1")
}

func TestCandidates_Override(t *testing.T) {
	override := []string{"/dev/custom0"}
	assert.Equal(t, override, Candidates(override))
}

func TestCandidates_DefaultOrder(t *testing.T) {
	c := Candidates(nil)
	require.GreaterOrEqual(t, len(c), 31)

	// Legacy scheme's full range first.
	for i := 0; i <= 20; i++ {
		assert.Equal(t, "/dev/ttyS"+strconv.Itoa(i), c[i])
	}

	// USB schemes next, interleaved.
	assert.Equal(t, "/dev/ttyUSB0", c[21])
	assert.Equal(t, "/dev/ttyACM0", c[22])
	assert.Equal(t, "/dev/ttyUSB4", c[29])
	assert.Equal(t, "/dev/ttyACM4", c[30])
}
