// internal/calibrate/calibrate_test.go
package calibrate

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/ec-smartlogger/internal/registers"
	"github.com/tamzrod/ec-smartlogger/internal/verify"
)

// attempt records one raw write the sequencer issued, failed or not.
type attempt struct {
	addr   uint16
	values []uint16
	single bool
}

type scriptClient struct {
	regs      map[uint16]uint16
	failAddrs map[uint16]bool
	attempts  []attempt
}

func newScript() *scriptClient {
	return &scriptClient{
		regs:      map[uint16]uint16{},
		failAddrs: map[uint16]bool{},
	}
}

func (c *scriptClient) ReadRegisters(addr, qty uint16) ([]uint16, error) {
	out := make([]uint16, qty)
	for i := range out {
		out[i] = c.regs[addr+uint16(i)]
	}
	return out, nil
}

func (c *scriptClient) WriteRegister(addr, value uint16) error {
	c.attempts = append(c.attempts, attempt{addr: addr, values: []uint16{value}, single: true})
	if c.failAddrs[addr] {
		return errors.New("write failed")
	}
	c.regs[addr] = value
	return nil
}

func (c *scriptClient) WriteRegisters(addr uint16, values []uint16) error {
	c.attempts = append(c.attempts, attempt{addr: addr, values: values})
	if c.failAddrs[addr] {
		return errors.New("write failed")
	}
	for i, v := range values {
		c.regs[addr+uint16(i)] = v
	}
	return nil
}

func (c *scriptClient) Close() error { return nil }

func testSequencer(c *scriptClient) *Sequencer {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewSequencer(verify.New(c, log), log)
	s.settle = func() {}
	return s
}

func TestParseMode(t *testing.T) {
	for n, want := range map[int]string{0: "none", 1: "mode1", 2: "mode2", 3: "mode3-test"} {
		m, err := ParseMode(n)
		require.NoError(t, err)
		assert.Equal(t, want, m.Name)
	}

	_, err := ParseMode(4)
	require.Error(t, err)
}

func TestExecuteNone(t *testing.T) {
	c := newScript()
	require.NoError(t, testSequencer(c).Execute(None))
	assert.Empty(t, c.attempts)
}

func TestExecuteMode1(t *testing.T) {
	c := newScript()
	require.NoError(t, testSequencer(c).Execute(Mode1))

	require.Len(t, c.attempts, 1)
	assert.Equal(t, registers.CalibrationMode, c.attempts[0].addr)
	assert.Equal(t, []uint16{registers.Mode1Value}, c.attempts[0].values)
	assert.True(t, c.attempts[0].single)
}

func TestExecuteMode2(t *testing.T) {
	c := newScript()
	require.NoError(t, testSequencer(c).Execute(Mode2))

	require.Len(t, c.attempts, 2)

	// Step 1: coefficient pair, one multi-register write.
	hi, lo := registers.EncodeFloat(registers.CoeffValue)
	assert.Equal(t, registers.CalibrationCoeff, c.attempts[0].addr)
	assert.Equal(t, []uint16{hi, lo}, c.attempts[0].values)
	assert.False(t, c.attempts[0].single)

	// Step 2: mode register.
	assert.Equal(t, registers.CalibrationMode, c.attempts[1].addr)
	assert.Equal(t, []uint16{registers.Mode2Value}, c.attempts[1].values)
}

func TestExecuteMode2_ModeWriteFailureNoRollback(t *testing.T) {
	c := newScript()
	c.failAddrs[registers.CalibrationMode] = true

	err := testSequencer(c).Execute(Mode2)
	require.Error(t, err)

	// The coefficient write was issued and stays applied; the failed
	// mode write is the last thing on the wire, no rollback follows.
	require.Len(t, c.attempts, 2)
	assert.Equal(t, registers.CalibrationCoeff, c.attempts[0].addr)
	assert.Equal(t, registers.CalibrationMode, c.attempts[1].addr)

	hi, lo := registers.EncodeFloat(registers.CoeffValue)
	assert.Equal(t, hi, c.regs[registers.CalibrationCoeff])
	assert.Equal(t, lo, c.regs[registers.CalibrationCoeff+1])
}

func TestExecuteMode2_CoefficientFailureShortCircuits(t *testing.T) {
	c := newScript()
	c.failAddrs[registers.CalibrationCoeff] = true

	err := testSequencer(c).Execute(Mode2)
	require.Error(t, err)

	// Mode register never touched.
	require.Len(t, c.attempts, 1)
	assert.Equal(t, registers.CalibrationCoeff, c.attempts[0].addr)
}

func TestExecuteMode3Test(t *testing.T) {
	c := newScript()
	require.NoError(t, testSequencer(c).Execute(Mode3Test))

	require.Len(t, c.attempts, 1)
	assert.Equal(t, registers.TestCoeff, c.attempts[0].addr)
	assert.Equal(t, []uint16{registers.TestKValue}, c.attempts[0].values)
}

func TestExecute_VerifyMismatchIsNotFailure(t *testing.T) {
	c := newScript()
	c.regs[registers.CalibrationMode] = 99

	m := &mismatchClient{scriptClient: c}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewSequencer(verify.New(m, log), log)
	s.settle = func() {}

	require.NoError(t, s.Execute(Mode1))
}

// mismatchClient accepts writes but never applies them, so every
// read-back differs.
type mismatchClient struct {
	*scriptClient
}

func (m *mismatchClient) WriteRegister(addr, value uint16) error {
	m.attempts = append(m.attempts, attempt{addr: addr, values: []uint16{value}, single: true})
	return nil
}

func (m *mismatchClient) WriteRegisters(addr uint16, values []uint16) error {
	m.attempts = append(m.attempts, attempt{addr: addr, values: values})
	return nil
}
