// internal/registers/registers.go
package registers

// Register map of the BOQU IOT-485-EC4A conductivity probe.
// These addresses define the device contract and MUST NOT be configurable.

// ---- CALIBRATION ----

// CalibrationMode is the integer mode control register.
const CalibrationMode uint16 = 13

// CalibrationCoeff holds the float calibration coefficient.
// A float write here occupies registers 28 and 29.
const CalibrationCoeff uint16 = 28

// TestCoeff is the integer diagnostic K register.
const TestCoeff uint16 = 16

// ---- CALIBRATION VALUES ----

// CoeffValue is the standard EC calibration coefficient.
const CoeffValue float32 = 12880

// Mode1Value arms calibration mode 1 when written to CalibrationMode.
const Mode1Value uint16 = 2

// Mode2Value arms calibration mode 2 when written to CalibrationMode.
const Mode2Value uint16 = 3

// TestKValue is K=0.0190 scaled by 10000, used to probe the firmware's
// expected numeric encoding for TestCoeff.
const TestKValue uint16 = 190

// ---- MEASUREMENT (float pairs) ----

// Temperature occupies registers 60-61.
const Temperature uint16 = 60

// RawEC occupies registers 45-46.
const RawEC uint16 = 45

// SensorEC is the probe's own compensated EC, registers 41-42.
const SensorEC uint16 = 41

// ---- GEOMETRY ----

// FloatWords is the register width of one 32-bit float value.
const FloatWords uint16 = 2

// DiagnosticRegs are the generic integer registers shown in the startup
// diagnostic snapshot.
var DiagnosticRegs = []uint16{1, 2, 16}
