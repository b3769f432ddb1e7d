package sensor

import "time"

const (
	widthOffset      = 5
	widthToTempScale = 1.3333
	tempToWidthScale = 0.75
)

// Pulse is one simulated sensor reading: the raw electrical pulse width, the
// temperature it encodes, and the time the signal was fully received.
// A Pulse is immutable once created.
type Pulse struct {
	Valid     bool
	Width     uint16  // raw measurement, milliseconds
	Temp      float64 // derived temperature, degrees Celsius
	Timestamp uint64  // arrival time, Unix milliseconds
}

// WidthToTemp converts an electrical pulse width to a temperature.
func WidthToTemp(width float64) float64 {
	return (width - widthOffset) * widthToTempScale
}

// TempToWidth converts a temperature back to the pulse width that encodes it.
func TempToWidth(temp float64) uint16 {
	return uint16(temp*tempToWidthScale) + widthOffset
}

// NowMillis returns the current wall-clock time in Unix milliseconds, the
// timestamp domain every Pulse lives in.
func NowMillis() uint64 {
	return uint64(time.Now().UnixMilli())
}
