// internal/channel/channel.go
package channel

import "github.com/tamzrod/ec-smartlogger/internal/registers"

// Client abstracts the register operations the rest of the system
// needs. Geometry only: addresses and word counts, no semantics.
type Client interface {
	ReadRegisters(addr, qty uint16) ([]uint16, error)
	WriteRegister(addr, value uint16) error
	WriteRegisters(addr uint16, values []uint16) error
	Close() error
}

// ReadFloat reads one float pair starting at addr. The raw words are
// returned alongside the decoded value so callers can log the exact
// bits that produced it.
func ReadFloat(c Client, addr uint16) (float32, uint16, uint16, error) {
	words, err := c.ReadRegisters(addr, registers.FloatWords)
	if err != nil {
		return 0, 0, 0, err
	}
	if len(words) != int(registers.FloatWords) {
		return 0, 0, 0, &Error{Op: "read float", Addr: addr, Err: ErrShortResponse}
	}
	return registers.DecodeFloat(words[0], words[1]), words[0], words[1], nil
}

// WriteFloat writes v as one float pair at addr. Both words go out in a
// single multi-register write: a float at addr always touches addr and
// addr+1, that coupling is part of the device protocol.
func WriteFloat(c Client, addr uint16, v float32) error {
	hi, lo := registers.EncodeFloat(v)
	return c.WriteRegisters(addr, []uint16{hi, lo})
}
