package tracelog

// Recorder receives the measurement trace of a single run as tagged text
// lines. Implementations must be safe for concurrent use: every method
// writes one complete line, so concurrent callers can never interleave
// partial output.
//
// Temperatures carry one decimal place; raw values print as plain integers.
type Recorder interface {
	// Pulse records the arrival of a freshly generated pulse ("New:").
	Pulse(temp float64)

	// Window records the current window contents in ascending order ("List:").
	Window(temps []int)

	// Evicted records the temperatures removed by a stale sweep ("Stale:").
	Evicted(temps []int)

	// Median records the window median. While the alert is raised the line
	// carries the running alert duration in milliseconds.
	Median(temp float64, alert bool, durationMs uint64)

	// Warning records an annunciator phase change.
	Warning(on bool)

	Close() error
}
