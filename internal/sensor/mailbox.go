package sensor

import "sync"

// Mailbox is a single-slot, overwrite-on-write handoff cell between the feed
// and the evaluator. It is not a queue: publishing over an unconsumed pulse
// silently discards the older one. The zero value is ready to use.
type Mailbox struct {
	mu    sync.Mutex
	pulse Pulse
}

// Publish stores p as the most recent pulse, overwriting any pulse the
// consumer has not taken yet.
func (m *Mailbox) Publish(p Pulse) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.Valid = true
	m.pulse = p
}

// Take removes and returns the pending pulse. The second return value is
// false when no unconsumed pulse is present.
func (m *Mailbox) Take() (Pulse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.pulse.Valid {
		return Pulse{}, false
	}

	p := m.pulse
	m.pulse.Valid = false

	return p, true
}
