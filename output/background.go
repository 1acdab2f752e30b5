package output

import (
	"io"
	"sync"

	"pkt.systems/marklog/errors"
)

// DefaultQueueSize is the capacity of a background writer queue when none is
// given.
const DefaultQueueSize = 1024

type queueItem struct {
	line  []byte
	flush chan error
}

// Background commits lines to a writer from one goroutine. Lines are written
// in the order Write accepted them. A full queue blocks the producer.
type Background struct {
	w       io.Writer
	queue   chan queueItem
	done    chan struct{}
	onError func(error)

	mu     sync.RWMutex
	closed bool
	wmu    sync.Mutex

	errMu    sync.Mutex
	firstErr error
	closeErr error
	once     sync.Once
}

// NewBackground starts a background writer for w. onError, when set, is
// called once for every failed write with a SINK_WRITE coded error.
func NewBackground(w io.Writer, size int, onError func(error)) *Background {
	if w == nil {
		w = io.Discard
	}
	if size <= 0 {
		size = DefaultQueueSize
	}
	b := &Background{
		w:       w,
		queue:   make(chan queueItem, size),
		done:    make(chan struct{}),
		onError: onError,
	}
	go b.run()
	return b
}

func (b *Background) run() {
	defer close(b.done)
	for item := range b.queue {
		if item.flush != nil {
			item.flush <- b.err()
			continue
		}
		b.commit(item.line)
	}
}

func (b *Background) commit(line []byte) error {
	b.wmu.Lock()
	n, err := b.w.Write(line)
	b.wmu.Unlock()
	if err == nil && n != len(line) {
		err = io.ErrShortWrite
	}
	if err == nil {
		return nil
	}
	coded := errors.Wrap(err, errors.ErrSinkWrite, "background write failed")
	b.errMu.Lock()
	if b.firstErr == nil {
		b.firstErr = coded
	}
	b.errMu.Unlock()
	if b.onError != nil {
		b.onError(coded)
	}
	return coded
}

func (b *Background) err() error {
	b.errMu.Lock()
	defer b.errMu.Unlock()
	return b.firstErr
}

// Write copies p and queues it. After Close the line is written
// synchronously once the queue has drained.
func (b *Background) Write(p []byte) (int, error) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		<-b.done
		if err := b.commit(p); err != nil {
			return 0, err
		}
		return len(p), nil
	}
	line := make([]byte, len(p))
	copy(line, p)
	b.queue <- queueItem{line: line}
	b.mu.RUnlock()
	return len(p), nil
}

// Flush waits until every line queued before it has been written and
// returns the first write error seen so far.
func (b *Background) Flush() error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		<-b.done
		return b.err()
	}
	reply := make(chan error, 1)
	b.queue <- queueItem{flush: reply}
	b.mu.RUnlock()
	return <-reply
}

// Close stops accepting queued lines, drains the queue, joins the writer
// goroutine and closes the writer if it is owned. It returns the first
// write error, or the close error when every write succeeded.
func (b *Background) Close() error {
	b.once.Do(func() {
		b.mu.Lock()
		b.closed = true
		close(b.queue)
		b.mu.Unlock()
		<-b.done
		if err := Close(b.w); err != nil {
			b.closeErr = errors.Wrap(err, errors.ErrSinkWrite, "close background writer")
		}
	})
	if err := b.err(); err != nil {
		return err
	}
	if b.closeErr != nil {
		return b.closeErr
	}
	return nil
}

// Closed reports whether Close has been called.
func (b *Background) Closed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}
