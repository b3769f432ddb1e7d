// Package fsm implements the table-driven two-state machine that governs the
// annunciator. Transitions are an exhaustive list of (current state, event)
// rows; the action associated with the resulting state fires on entry.
package fsm

// State identifies an annunciator phase.
type State uint8

const (
	WarningOn State = iota
	WarningOff
)

func (s State) String() string {
	switch s {
	case WarningOn:
		return "WARNING_ON"
	case WarningOff:
		return "WARNING_OFF"
	default:
		return "UNKNOWN"
	}
}

// Event triggers a transition. EventAny is a wildcard matching any event in
// a transition row.
type Event uint8

const (
	EventAny Event = iota
	EventWarningOn
	EventWarningOff
)

// Transition is one row of the transition table.
type Transition struct {
	Current State
	Event   Event
	Next    State
}

// Machine holds the current state and its transition table. The enter
// callback runs each time a transition lands in a state; it is keyed by the
// resulting state, not by the event that caused the transition.
type Machine struct {
	state   State
	initial State
	table   []Transition
	enter   func(State)
}

func New(initial State, table []Transition, enter func(State)) *Machine {
	return &Machine{
		state:   initial,
		initial: initial,
		table:   table,
		enter:   enter,
	}
}

func (m *Machine) State() State {
	return m.state
}

// Fire scans the table for a row matching the current state and ev (or the
// EventAny wildcard). On a match it advances to the row's next state, invokes
// the enter callback and reports true. An unmatched pair is a silent no-op:
// the machine does not advance and no error is raised.
func (m *Machine) Fire(ev Event) bool {
	for _, t := range m.table {
		if t.Current != m.state {
			continue
		}
		if t.Event != ev && t.Event != EventAny {
			continue
		}

		m.state = t.Next
		if m.enter != nil {
			m.enter(m.state)
		}

		return true
	}

	return false
}

// Reset returns the machine to its initial state without firing an entry
// action.
func (m *Machine) Reset() {
	m.state = m.initial
}
