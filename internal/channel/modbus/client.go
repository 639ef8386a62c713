// internal/channel/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/ec-smartlogger/internal/channel"
)

// Client implements channel.Client over Modbus RTU.
// This adapter is geometry-only: it packs requests and unpacks raw
// responses.
type Client struct {
	handler *modbus.RTUClientHandler
	client  modbus.Client
}

// Config is minimal transport config.
type Config struct {
	Device   string
	BaudRate int
	DataBits int
	Parity   string
	StopBits int
	SlaveID  uint8
	Timeout  time.Duration
}

// New opens the serial device and returns a connected client.
// The timeout is the sole suspension mechanism: every request blocks
// until a response arrives or the timeout elapses.
func New(cfg Config) (*Client, error) {
	if cfg.Device == "" {
		return nil, errors.New("modbus client: device required")
	}

	h := modbus.NewRTUClientHandler(cfg.Device)
	h.BaudRate = cfg.BaudRate
	h.DataBits = cfg.DataBits
	h.Parity = cfg.Parity
	h.StopBits = cfg.StopBits
	h.SlaveId = cfg.SlaveID
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus client: connect %s: %w", cfg.Device, err)
	}

	return &Client{handler: h, client: modbus.NewClient(h)}, nil
}

// Close releases the serial port.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// ---- channel.Client ----

func (c *Client) ReadRegisters(addr, qty uint16) ([]uint16, error) {
	raw, err := c.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, &channel.Error{Op: "read", Addr: addr, Err: err}
	}
	if len(raw) != int(qty)*2 {
		return nil, &channel.Error{Op: "read", Addr: addr, Err: channel.ErrShortResponse}
	}
	return unpackRegisters(raw), nil
}

func (c *Client) WriteRegister(addr, value uint16) error {
	if _, err := c.client.WriteSingleRegister(addr, value); err != nil {
		return &channel.Error{Op: "write", Addr: addr, Err: err}
	}
	return nil
}

func (c *Client) WriteRegisters(addr uint16, values []uint16) error {
	qty := uint16(len(values))
	if _, err := c.client.WriteMultipleRegisters(addr, qty, packRegisters(values)); err != nil {
		return &channel.Error{Op: "write multi", Addr: addr, Err: err}
	}
	return nil
}

// ---- helpers (pure geometry) ----

// Modbus register memory order (BIG-ENDIAN)
func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}

func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
