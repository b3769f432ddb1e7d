package alarm

import (
	"context"
	"time"

	"codeberg.org/mutker/thermostatd/internal/sensor"
	"codeberg.org/mutker/thermostatd/internal/tracelog"
	"codeberg.org/mutker/thermostatd/internal/window"
)

const (
	pollInterval = time.Millisecond

	// medianWidthThreshold is the raw pulse width above which the median
	// reading counts as an alert condition. Width 58 encodes roughly 70°C.
	medianWidthThreshold = 58

	// sustainThresholdMs is how long the alert condition must hold before
	// the alarm signal is raised.
	sustainThresholdMs = 1000
)

// Evaluator drains the mailbox, maintains the sample window and applies the
// hysteresis rule that drives the alarm signal. The window is owned by the
// evaluator alone; all mutation and the median query run on its goroutine.
type Evaluator struct {
	mailbox *sensor.Mailbox
	window  *window.Window
	signal  *Signal
	trace   tracelog.Recorder

	alertRaised bool
	alertSince  uint64

	now   func() uint64
	sleep func(time.Duration)
}

func NewEvaluator(mailbox *sensor.Mailbox, signal *Signal, trace tracelog.Recorder) *Evaluator {
	return &Evaluator{
		mailbox: mailbox,
		window:  window.New(),
		signal:  signal,
		trace:   trace,
		// Until the median first crosses the threshold, the sustain timer
		// is pinned to the present.
		alertSince: sensor.NowMillis(),
		now:        sensor.NowMillis,
		sleep:      time.Sleep,
	}
}

// Run polls the mailbox until ctx expires, folding each pulse into the
// window and refreshing the alarm decision. Between pulses it idles on a
// fixed 1 ms tick rather than spinning.
func (e *Evaluator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if p, ok := e.mailbox.Take(); ok {
			e.Process(p)
		}

		e.sleep(pollInterval)
	}
}

// Process folds one pulse into the window and publishes the resulting alarm
// decision. Stale entries are evicted against the arriving pulse's timestamp
// before the pulse is inserted.
func (e *Evaluator) Process(p sensor.Pulse) {
	if evicted := e.window.EvictStale(p.Timestamp); len(evicted) > 0 {
		e.trace.Evicted(temps(evicted))
	}
	e.window.Insert(p)
	e.trace.Window(e.window.Temps())

	median := e.window.Median()
	now := e.now()

	if median > medianWidthThreshold {
		e.alertRaised = true
		e.trace.Median(sensor.WidthToTemp(median), true, now-e.alertSince)
	} else {
		e.alertRaised = false
		e.alertSince = now
		e.trace.Median(sensor.WidthToTemp(median), false, 0)
	}

	e.signal.Set(e.alertRaised && now-e.alertSince >= sustainThresholdMs)
}

func temps(pulses []sensor.Pulse) []int {
	values := make([]int, len(pulses))
	for i, p := range pulses {
		values[i] = int(p.Temp)
	}

	return values
}
