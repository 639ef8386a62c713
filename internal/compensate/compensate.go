// internal/compensate/compensate.go

// Package compensate normalizes raw conductivity to the 25°C reference
// using a temperature-dependent coefficient instead of the probe's
// fixed 2% one.
package compensate

import (
	"errors"
	"fmt"
)

// ErrDegenerateDenominator means the compensation denominator came out
// zero or negative. Cannot arise for realistic sensor temperatures, but
// it must not silently become Inf or NaN.
var ErrDegenerateDenominator = errors.New("compensate: degenerate denominator")

// band pairs a right-open upper temperature bound with its coefficient.
type band struct {
	upTo  float64
	k     float64
	label string
}

// Coefficients from calibration data. Evaluated in order, first match
// wins.
var bands = []band{
	{upTo: 5, k: 0.0180, label: "very cold (<=5C)"},
	{upTo: 10, k: 0.0184, label: "cold (5-10C)"},
	{upTo: 15, k: 0.0190, label: "cool (10-15C)"},
	{upTo: 25, k: 0.0190, label: "normal (15-25C)"},
	{upTo: 30, k: 0.0192, label: "warm (25-30C)"},
}

const (
	hotK     = 0.0194
	hotLabel = "hot (>30C)"
)

// DynamicK returns the compensation coefficient for a temperature.
// Non-decreasing in temperature.
func DynamicK(temp float64) float64 {
	for _, b := range bands {
		if temp <= b.upTo {
			return b.k
		}
	}
	return hotK
}

// BandLabel names the active temperature band, for reporting.
func BandLabel(temp float64) string {
	for _, b := range bands {
		if temp <= b.upTo {
			return b.label
		}
	}
	return hotLabel
}

// Result is one compensated measurement.
type Result struct {
	SmartEC float64
	KUsed   float64
}

// Compensate normalizes rawEC to the 25°C reference:
//
//	C25 = rawEC / (1 + k(temp) * (temp - 25))
func Compensate(rawEC, temp float64) (float64, error) {
	denom := 1 + DynamicK(temp)*(temp-25)
	if denom <= 0 {
		return 0, fmt.Errorf("%w: temp=%g", ErrDegenerateDenominator, temp)
	}
	return rawEC / denom, nil
}

// Evaluate computes the compensated value together with the coefficient
// that produced it.
func Evaluate(rawEC, temp float64) (Result, error) {
	ec, err := Compensate(rawEC, temp)
	if err != nil {
		return Result{}, err
	}
	return Result{SmartEC: ec, KUsed: DynamicK(temp)}, nil
}
