package sensor

import (
	"context"
	"math/rand"
	"time"

	"codeberg.org/mutker/thermostatd/internal/tracelog"
)

const (
	widthLowerLimit = 30 // milliseconds
	widthUpperLimit = 80 // milliseconds

	pulseInterval = 20 * time.Millisecond
)

// Feed synthesizes pulses at a randomized pace and hands them to the mailbox.
// The generation delay equals the drawn pulse width, so a pulse's timestamp
// marks the moment the signal was fully received, not when it was requested.
type Feed struct {
	mailbox *Mailbox
	trace   tracelog.Recorder
	rng     *rand.Rand

	now   func() uint64
	sleep func(time.Duration)
}

func NewFeed(mailbox *Mailbox, trace tracelog.Recorder, rng *rand.Rand) *Feed {
	return &Feed{
		mailbox: mailbox,
		trace:   trace,
		rng:     rng,
		now:     NowMillis,
		sleep:   time.Sleep,
	}
}

// Run produces pulses until ctx is cancelled. Cancellation is observed once
// per iteration, so shutdown latency is bounded by one generation delay plus
// the inter-arrival pause.
func (f *Feed) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		width := f.nextWidth()
		temp := WidthToTemp(float64(width))

		// Signal width generation delay
		f.sleep(time.Duration(width) * time.Millisecond)

		f.mailbox.Publish(Pulse{
			Width:     width,
			Temp:      temp,
			Timestamp: f.now(),
		})
		f.trace.Pulse(temp)

		// Pulse inter-arrival time
		f.sleep(pulseInterval)
	}
}

// nextWidth draws a pulse width uniformly from [widthLowerLimit, widthUpperLimit].
func (f *Feed) nextWidth() uint16 {
	return uint16(f.rng.Intn(widthUpperLimit-widthLowerLimit+1) + widthLowerLimit)
}
