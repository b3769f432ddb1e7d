package alarm

import (
	"testing"

	"codeberg.org/mutker/thermostatd/internal/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRecorder struct {
	medians   []float64
	alerts    []bool
	durations []uint64
	evicted   [][]int
	windows   [][]int
}

func (*captureRecorder) Pulse(_ float64) {}

func (c *captureRecorder) Window(temps []int) {
	c.windows = append(c.windows, temps)
}

func (c *captureRecorder) Evicted(temps []int) {
	c.evicted = append(c.evicted, temps)
}

func (c *captureRecorder) Median(temp float64, alert bool, durationMs uint64) {
	c.medians = append(c.medians, temp)
	c.alerts = append(c.alerts, alert)
	c.durations = append(c.durations, durationMs)
}

func (*captureRecorder) Warning(_ bool) {}
func (*captureRecorder) Close() error   { return nil }

func newTestEvaluator(start uint64) (*Evaluator, *Signal, *captureRecorder, *uint64) {
	clock := start
	signal := &Signal{}
	trace := &captureRecorder{}
	e := NewEvaluator(&sensor.Mailbox{}, signal, trace)
	e.alertSince = start
	e.now = func() uint64 { return clock }

	return e, signal, trace, &clock
}

func pulse(width uint16, timestamp uint64) sensor.Pulse {
	return sensor.Pulse{
		Width:     width,
		Temp:      sensor.WidthToTemp(float64(width)),
		Timestamp: timestamp,
	}
}

func TestAlarmRequiresSustainedMedian(t *testing.T) {
	e, signal, trace, clock := newTestEvaluator(5000)

	e.Process(pulse(70, 5000))
	assert.False(t, signal.Raised(), "condition just crossed, sustain not reached")
	require.Len(t, trace.alerts, 1)
	assert.True(t, trace.alerts[0], "alert condition is recorded immediately")
	assert.Zero(t, trace.durations[0])

	*clock = 5500
	e.Process(pulse(72, 5500))
	assert.False(t, signal.Raised(), "500 ms is below the 1000 ms sustain")
	assert.Equal(t, uint64(500), trace.durations[1])

	*clock = 6000
	e.Process(pulse(75, 6000))
	assert.True(t, signal.Raised(), "condition held for the full sustain duration")
	assert.Equal(t, uint64(1000), trace.durations[2])
}

func TestMedianDropResetsSustainTimer(t *testing.T) {
	e, signal, _, clock := newTestEvaluator(1000)

	e.Process(pulse(70, 1000))
	assert.False(t, signal.Raised())

	// Median of [30, 70] is 50, at or below the threshold
	*clock = 1500
	e.Process(pulse(30, 1500))
	assert.False(t, signal.Raised(), "alarm clears the instant the median falls")

	// The condition returns, but the timer restarted at the drop
	*clock = 1900
	e.Process(pulse(80, 1900))
	assert.False(t, signal.Raised(), "only 400 ms since the reset")

	*clock = 2500
	e.Process(pulse(80, 2500))
	assert.True(t, signal.Raised(), "1000 ms since the reset")
}

func TestThresholdIsExclusive(t *testing.T) {
	e, signal, trace, _ := newTestEvaluator(0)

	// A single pulse of width 58 gives median 58, which is not above 58
	e.Process(pulse(58, 0))

	assert.False(t, signal.Raised())
	require.Len(t, trace.alerts, 1)
	assert.False(t, trace.alerts[0])
}

func TestProcessEvictsBeforeInsert(t *testing.T) {
	e, _, trace, clock := newTestEvaluator(0)

	e.Process(pulse(40, 0))
	*clock = 1500
	e.Process(pulse(70, 1500))
	*clock = 1600
	e.Process(pulse(55, 1600))

	// The ts=0 pulse aged out against the ts=1500 arrival
	require.Len(t, trace.evicted, 1)
	assert.Equal(t, []int{int(sensor.WidthToTemp(40))}, trace.evicted[0])

	expected := []int{int(sensor.WidthToTemp(55)), int(sensor.WidthToTemp(70))}
	assert.Equal(t, expected, trace.windows[2], "window after eviction and insert")
}

func TestNoStaleLineWithoutEvictions(t *testing.T) {
	e, _, trace, _ := newTestEvaluator(0)

	e.Process(pulse(40, 0))
	e.Process(pulse(50, 100))

	assert.Empty(t, trace.evicted, "stale sweep with no victims records nothing")
	assert.Len(t, trace.windows, 2)
}

func TestSignalSetAndRaised(t *testing.T) {
	s := &Signal{}
	assert.False(t, s.Raised())

	s.Set(true)
	assert.True(t, s.Raised())

	s.Set(false)
	assert.False(t, s.Raised())
}
