package output

import (
	"io"
	"sync/atomic"
)

// WriteFailure is one rendered line the output did not fully accept.
type WriteFailure struct {
	Err       error
	Written   int
	Attempted int
}

// SinkStats counts what reached the output. Lines is the number of Write
// calls, which is one per rendered event; Bytes counts bytes the output
// accepted, including the accepted part of failed writes.
type SinkStats struct {
	Lines       uint64
	Bytes       uint64
	Failures    uint64
	ShortWrites uint64
	LastFailure *WriteFailure
}

// ObservedWriter sits between a sink and the real output and meters every
// line written through it. onFailure, when set, runs synchronously on the
// writing goroutine for each failed line.
type ObservedWriter struct {
	dst         io.Writer
	onFailure   func(WriteFailure)
	lines       atomic.Uint64
	bytes       atomic.Uint64
	failures    atomic.Uint64
	shortWrites atomic.Uint64
	last        atomic.Pointer[WriteFailure]
}

// NewObservedWriter meters dst. A nil dst discards.
func NewObservedWriter(dst io.Writer, onFailure func(WriteFailure)) *ObservedWriter {
	if dst == nil {
		dst = io.Discard
	}
	return &ObservedWriter{dst: dst, onFailure: onFailure}
}

// Write forwards p. A short write without an error is reported as
// io.ErrShortWrite.
func (w *ObservedWriter) Write(p []byte) (int, error) {
	if w == nil || w.dst == nil {
		return len(p), nil
	}
	w.lines.Add(1)
	n, err := w.dst.Write(p)
	if n > 0 {
		w.bytes.Add(uint64(n))
	}
	if n != len(p) {
		w.shortWrites.Add(1)
		if err == nil {
			err = io.ErrShortWrite
		}
	}
	if err == nil {
		return n, nil
	}
	failure := WriteFailure{Err: err, Written: n, Attempted: len(p)}
	w.failures.Add(1)
	w.last.Store(&failure)
	if w.onFailure != nil {
		w.onFailure(failure)
	}
	return n, err
}

// Unwrap returns the metered output.
func (w *ObservedWriter) Unwrap() io.Writer {
	if w == nil {
		return nil
	}
	return w.dst
}

// Stats returns a snapshot of the counters.
func (w *ObservedWriter) Stats() SinkStats {
	if w == nil {
		return SinkStats{}
	}
	return SinkStats{
		Lines:       w.lines.Load(),
		Bytes:       w.bytes.Load(),
		Failures:    w.failures.Load(),
		ShortWrites: w.shortWrites.Load(),
		LastFailure: w.last.Load(),
	}
}

// Close closes the metered output if marklog owns it.
func (w *ObservedWriter) Close() error {
	if w == nil {
		return nil
	}
	return Close(w.dst)
}

func (w *ObservedWriter) ownedClose() error {
	return w.Close()
}
