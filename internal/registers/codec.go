// internal/registers/codec.go
package registers

import (
	"fmt"
	"math"
)

// EncodeFloat splits the IEEE-754 bit pattern of f into two register
// words, most-significant half first (ABCD word order, matching the
// probe's format).
func EncodeFloat(f float32) (hi, lo uint16) {
	bits := math.Float32bits(f)
	return uint16(bits >> 16), uint16(bits)
}

// DecodeFloat reassembles a float from two register words.
// Bit reinterpretation only, never a value conversion: word order
// corruption here yields a plausible-looking but wrong number.
func DecodeFloat(hi, lo uint16) float32 {
	return math.Float32frombits(uint32(hi)<<16 | uint32(lo))
}

// HexString renders a register pair as 8 uppercase hex characters,
// e.g. 0x4135/0x1A86 -> "41351A86". Collaborators log it next to the
// decoded float for independent bit-level validation.
func HexString(hi, lo uint16) string {
	return fmt.Sprintf("%04X%04X", hi, lo)
}
