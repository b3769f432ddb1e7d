package window

import "codeberg.org/mutker/thermostatd/internal/sensor"

// staleAfterMs is the age horizon: a pulse whose timestamp trails the
// reference by more than this is stale.
const staleAfterMs = 1000

// Window is an ascending-ordered, time-bounded collection of recent pulses,
// sorted by raw pulse width. It is owned by a single goroutine (the
// evaluator) and performs no locking of its own.
type Window struct {
	pulses []sensor.Pulse
}

func New() *Window {
	return &Window{}
}

func (w *Window) Len() int {
	return len(w.pulses)
}

// Insert splices p before the first pulse whose width is greater than or
// equal to p's, keeping the window sorted. Equal widths insert at the
// earliest equal position encountered.
func (w *Window) Insert(p sensor.Pulse) {
	i := 0
	for i < len(w.pulses) && w.pulses[i].Width < p.Width {
		i++
	}

	w.pulses = append(w.pulses, sensor.Pulse{})
	copy(w.pulses[i+1:], w.pulses[i:])
	w.pulses[i] = p
}

// EvictStale removes every pulse with Timestamp + 1000 < ref, wherever it
// sits in the window, preserving the relative order of survivors. It returns
// the removed pulses in window order. The reference is the arriving pulse's
// timestamp, not wall-clock now.
func (w *Window) EvictStale(ref uint64) []sensor.Pulse {
	var removed []sensor.Pulse

	kept := w.pulses[:0]
	for _, p := range w.pulses {
		if p.Timestamp+staleAfterMs < ref {
			removed = append(removed, p)
		} else {
			kept = append(kept, p)
		}
	}
	w.pulses = kept

	return removed
}

// Median returns the median pulse width: the middle width for an odd count,
// the mean of the two middle widths for an even count, and 0 for an empty
// window (a defined degenerate value, not an error).
func (w *Window) Median() float64 {
	n := len(w.pulses)
	if n == 0 {
		return 0
	}

	if n%2 == 1 {
		return float64(w.pulses[n/2].Width)
	}

	return float64(w.pulses[n/2-1].Width+w.pulses[n/2].Width) / 2.0
}

// Temps returns the window's temperatures, ascending by width, truncated to
// integers for the trace log.
func (w *Window) Temps() []int {
	temps := make([]int, len(w.pulses))
	for i, p := range w.pulses {
		temps[i] = int(p.Temp)
	}

	return temps
}
