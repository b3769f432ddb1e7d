package tracelog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"codeberg.org/mutker/thermostatd/internal/errors"
	"codeberg.org/mutker/thermostatd/internal/logger"
)

type recorder struct {
	mu   sync.Mutex
	out  io.Writer
	echo io.Writer
	file *os.File
}

// New creates a file-backed Recorder. The file is named after the wall-clock
// time the run started, e.g. log_2026_08_25_14_03_07.txt.
func New(cfg Config) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if err := os.MkdirAll(cfg.Dir, defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrFileCreate, err)
	}

	name := filePrefix + time.Now().Format(fileNameTimestamp) + fileSuffix
	path := filepath.Join(cfg.Dir, name)

	file, err := os.Create(path)
	if err != nil {
		return nil, errFactory.Wrap(ErrFileCreate, err)
	}

	logger.Debug().Str("path", path).Msg("Trace log created")

	return &recorder{
		out:  file,
		echo: os.Stdout,
		file: file,
	}, nil
}

// NewWriter creates a Recorder over an arbitrary writer. Used by tests and
// by callers that already own the output stream.
func NewWriter(w io.Writer) Recorder {
	return &recorder{out: w}
}

func (r *recorder) Pulse(temp float64) {
	r.writeLine(fmt.Sprintf("New:    %4.1f", temp))
}

func (r *recorder) Window(temps []int) {
	r.writeLine("List:  " + joinInts(temps))
}

func (r *recorder) Evicted(temps []int) {
	r.writeLine("Stale: " + joinInts(temps))
}

func (r *recorder) Median(temp float64, alert bool, durationMs uint64) {
	line := fmt.Sprintf("Median: %4.1f", temp)
	if alert {
		line += fmt.Sprintf(" - Alert duration %d", durationMs)
	}
	r.writeLine(line)
}

func (r *recorder) Warning(on bool) {
	if on {
		r.writeLine("\tWarning On")
	} else {
		r.writeLine("\tWarning Off")
	}
}

func (r *recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}

	errFactory := errors.New()
	if err := r.file.Close(); err != nil {
		return errFactory.Wrap(ErrFileClose, err)
	}
	r.file = nil

	return nil
}

// writeLine is the print lock of the system: one complete line per
// acquisition, never nested inside another lock.
func (r *recorder) writeLine(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(r.out, line)
	if r.echo != nil {
		fmt.Fprintln(r.echo, line)
	}
}

func joinInts(values []int) string {
	var b strings.Builder
	for _, v := range values {
		fmt.Fprintf(&b, " %d", v)
	}

	return b.String()
}

// Noop returns a Recorder that drops every line. Used when the trace file
// cannot be created: the run continues, only the trace is lost.
func Noop() Recorder {
	return &noopRecorder{}
}

type noopRecorder struct{}

func (*noopRecorder) Pulse(_ float64)                    {}
func (*noopRecorder) Window(_ []int)                     {}
func (*noopRecorder) Evicted(_ []int)                    {}
func (*noopRecorder) Median(_ float64, _ bool, _ uint64) {}
func (*noopRecorder) Warning(_ bool)                     {}
func (*noopRecorder) Close() error                       { return nil }
