// Package output provides the writers marklog renders into: a serialised
// synchronous sink, an ordered background writer, output-spec parsing for
// files and tees, and write-failure observation.
package output

import (
	"io"
	"os"
	"sync"
)

// ownedCloser marks writers whose underlying resource marklog opened and
// must close itself.
type ownedCloser interface {
	ownedClose() error
}

type ownedOutput struct {
	writer   io.Writer
	closer   io.Closer
	closeErr error
	once     sync.Once
}

// Own wraps writer so that Close(writer) closes closer exactly once. A nil
// closer returns writer unchanged.
func Own(writer io.Writer, closer io.Closer) io.Writer {
	if writer == nil {
		writer = io.Discard
	}
	if closer == nil {
		return writer
	}
	if existing, ok := writer.(*ownedOutput); ok {
		return existing
	}
	return &ownedOutput{writer: writer, closer: closer}
}

func (o *ownedOutput) Write(p []byte) (int, error) {
	return o.writer.Write(p)
}

func (o *ownedOutput) Close() error {
	return o.ownedClose()
}

func (o *ownedOutput) ownedClose() error {
	o.once.Do(func() {
		if o.closer != nil {
			o.closeErr = o.closer.Close()
		}
	})
	return o.closeErr
}

// Close closes w if marklog owns it. Caller-supplied writers, stdout and
// stderr are left open.
func Close(w io.Writer) error {
	if w == nil || w == os.Stdout || w == os.Stderr {
		return nil
	}
	if c, ok := w.(ownedCloser); ok {
		return c.ownedClose()
	}
	return nil
}

// Owned reports whether Close(w) would close something.
func Owned(w io.Writer) bool {
	_, ok := w.(ownedCloser)
	return ok
}
