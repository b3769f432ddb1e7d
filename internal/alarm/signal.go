package alarm

import "sync"

// Signal is the externally visible alarm flag shared by the evaluator and
// the annunciator. The zero value is a lowered signal ready for use.
type Signal struct {
	mu     sync.Mutex
	raised bool
}

func (s *Signal) Set(raised bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raised = raised
}

func (s *Signal) Raised() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raised
}
