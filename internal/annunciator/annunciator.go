// Package annunciator renders the alarm signal as an intermittent on/off
// warning in the trace log, driven by the two-state machine in internal/fsm.
package annunciator

import (
	"context"
	"time"

	"codeberg.org/mutker/thermostatd/internal/alarm"
	"codeberg.org/mutker/thermostatd/internal/fsm"
	"codeberg.org/mutker/thermostatd/internal/sensor"
	"codeberg.org/mutker/thermostatd/internal/tracelog"
)

// blinkDuration is how long each warning phase lasts before toggling.
const blinkDuration = 5 * time.Millisecond

const blinkDurationMs = uint64(blinkDuration / time.Millisecond)

// Annunciator toggles the warning on and off at a fixed cadence while the
// alarm signal is raised, and holds the machine in its initial off state
// otherwise.
type Annunciator struct {
	signal  *alarm.Signal
	trace   tracelog.Recorder
	machine *fsm.Machine

	lastToggle uint64

	now   func() uint64
	sleep func(time.Duration)
}

func New(signal *alarm.Signal, trace tracelog.Recorder) *Annunciator {
	a := &Annunciator{
		signal: signal,
		trace:  trace,
		now:    sensor.NowMillis,
		sleep:  time.Sleep,
	}
	a.machine = fsm.New(fsm.WarningOff, transitions(), a.enterState)

	return a
}

func transitions() []fsm.Transition {
	return []fsm.Transition{
		{Current: fsm.WarningOn, Event: fsm.EventWarningOff, Next: fsm.WarningOff},
		{Current: fsm.WarningOff, Event: fsm.EventWarningOn, Next: fsm.WarningOn},
	}
}

// enterState is the entry-action dispatch, keyed by the state being entered.
func (a *Annunciator) enterState(s fsm.State) {
	switch s {
	case fsm.WarningOn:
		a.trace.Warning(true)
	case fsm.WarningOff:
		a.trace.Warning(false)
	}
}

// Run blinks until ctx is cancelled, checking the cancellation signal once
// per iteration.
func (a *Annunciator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		a.Step()
		a.sleep(blinkDuration)
	}
}

// Step performs one annunciator cycle: while the alarm is raised it fires
// the toggling event once the current phase has run its duration; while the
// alarm is clear it resets the machine without logging a transition.
func (a *Annunciator) Step() {
	if !a.signal.Raised() {
		a.machine.Reset()
		return
	}

	now := a.now()
	if now-a.lastToggle < blinkDurationMs {
		return
	}

	switch a.machine.State() {
	case fsm.WarningOn:
		if a.machine.Fire(fsm.EventWarningOff) {
			a.lastToggle = now
		}
	case fsm.WarningOff:
		if a.machine.Fire(fsm.EventWarningOn) {
			a.lastToggle = now
		}
	}
}

// State exposes the current machine state.
func (a *Annunciator) State() fsm.State {
	return a.machine.State()
}
