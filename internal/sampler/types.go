// internal/sampler/types.go
package sampler

import (
	"time"

	"github.com/tamzrod/ec-smartlogger/internal/compensate"
)

// Reading is one decoded sensor snapshot. Transient: produced once per
// cycle and handed to collaborators, never retained by the core.
type Reading struct {
	Temperature float64
	RawEC       float64
	SensorEC    float64

	// Raw register words hex-encoded before decoding, so collaborators
	// can validate the IEEE-754 conversion bit by bit.
	TempHex  string
	RawECHex string

	At    time.Time
	Cycle uint64
}

// Record is what one successful cycle emits.
type Record struct {
	Reading Reading
	Result  compensate.Result
}
