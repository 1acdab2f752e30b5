package output

import (
	"io"
	"sync"
)

// Sink is where committed log lines go. Write receives one complete event
// per call.
type Sink interface {
	io.Writer
	Flush() error
	Close() error
}

// Synchronous serialises writes to w with a mutex so concurrent events never
// interleave.
type Synchronous struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSynchronous returns a synchronous sink for w.
func NewSynchronous(w io.Writer) *Synchronous {
	if w == nil {
		w = io.Discard
	}
	return &Synchronous{w: w}
}

func (s *Synchronous) Write(p []byte) (int, error) {
	s.mu.Lock()
	n, err := s.w.Write(p)
	s.mu.Unlock()
	return n, err
}

// Flush is a no-op; writes are committed before Write returns.
func (s *Synchronous) Flush() error { return nil }

// Close releases w when it is owned.
func (s *Synchronous) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Close(s.w)
}

// Writer returns the wrapped writer.
func (s *Synchronous) Writer() io.Writer { return s.w }
