package render

import (
	"strings"
	"sync"
	"sync/atomic"

	"pkt.systems/marklog/markup"
)

const (
	bufferDefaultCap = 1024
	bufferMaxCap     = 64 << 10
)

// Margin is an indentation register. Its value never drops below zero.
// A target keeps one to carry the margin from one event to the next; each
// buffer renders against a private copy.
type Margin struct {
	n atomic.Int64
}

// Get returns the current margin.
func (m *Margin) Get() int {
	return int(m.n.Load())
}

// Set replaces the margin, clamping negative values to zero.
func (m *Margin) Set(n int) {
	m.n.Store(int64(max(n, 0)))
}

// Adjust adds delta to the margin, stopping at zero.
func (m *Margin) Adjust(delta int) {
	for {
		cur := m.n.Load()
		next := max(cur+int64(delta), 0)
		if m.n.CompareAndSwap(cur, next) {
			return
		}
	}
}

// Buffer accumulates the markup of one event. Buffers come from a pool and
// belong to a single render call until released.
//
// Every line break records the margin current at that moment; the padding
// is written lazily before the next text, so a trailing line break is never
// followed by spaces.
type Buffer struct {
	buf        []byte
	saved      *Margin
	own        Margin
	padPending bool
	padWidth   int
}

var (
	bufferPool = sync.Pool{
		New: func() any {
			return &Buffer{buf: make([]byte, 0, bufferDefaultCap)}
		},
	}
	buffersAcquired atomic.Uint64
	buffersReleased atomic.Uint64
)

// PoolStats counts buffer pool traffic since process start.
type PoolStats struct {
	Acquired uint64
	Released uint64
}

// Outstanding is the number of buffers acquired and not yet released.
func (s PoolStats) Outstanding() uint64 {
	return s.Acquired - s.Released
}

// BufferPoolStats returns the current buffer pool counters.
func BufferPoolStats() PoolStats {
	released := buffersReleased.Load()
	return PoolStats{Acquired: buffersAcquired.Load(), Released: released}
}

// AcquireBuffer takes a buffer from the pool. The buffer starts at the value
// of saved and renders against its own copy; ReleaseBuffer stores the final
// value back into saved. nil starts at zero and keeps nothing. A non-zero
// starting margin indents the first line too.
func AcquireBuffer(saved *Margin) *Buffer {
	b := bufferPool.Get().(*Buffer)
	buffersAcquired.Add(1)
	b.buf = b.buf[:0]
	b.saved = saved
	b.own.Set(0)
	if saved != nil {
		b.own.Set(saved.Get())
	}
	if w := b.own.Get(); w > 0 {
		b.padPending = true
		b.padWidth = w
	}
	return b
}

// ReleaseBuffer stores the buffer's margin into the register it was
// acquired with and returns b to the pool. b must not be used afterwards.
func ReleaseBuffer(b *Buffer) {
	if b == nil {
		return
	}
	if b.saved != nil {
		b.saved.Set(b.own.Get())
	}
	if cap(b.buf) > bufferMaxCap {
		b.buf = make([]byte, 0, bufferDefaultCap)
	} else {
		b.buf = b.buf[:0]
	}
	b.saved = nil
	b.padPending = false
	b.padWidth = 0
	bufferPool.Put(b)
	buffersReleased.Add(1)
}

// Margin returns the buffer's own margin register.
func (b *Buffer) Margin() *Margin {
	return &b.own
}

// WriteMarkup appends markup verbatim, applying margin padding after line
// breaks.
func (b *Buffer) WriteMarkup(s string) {
	for s != "" {
		if b.padPending {
			b.padPending = false
			for range b.padWidth {
				b.buf = append(b.buf, ' ')
			}
		}
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			b.buf = append(b.buf, s...)
			return
		}
		b.buf = append(b.buf, s[:i+1]...)
		b.padPending = true
		b.padWidth = b.Margin().Get()
		s = s[i+1:]
	}
}

// WriteText appends plain text, escaping it for the markup layer.
func (b *Buffer) WriteText(s string) {
	if strings.IndexAny(s, "[]") < 0 {
		b.WriteMarkup(s)
		return
	}
	b.WriteMarkup(markup.Escape(s))
}

// WriteStyled appends plain text wrapped in style. Each line is wrapped on
// its own so margin padding stays outside the style.
func (b *Buffer) WriteStyled(style, text string) {
	if style == "" {
		b.WriteText(text)
		return
	}
	for text != "" {
		line, rest, more := strings.Cut(text, "\n")
		if line != "" {
			b.WriteMarkup("[" + style + "]")
			b.WriteText(line)
			b.WriteMarkup("[/]")
		}
		if more {
			b.WriteNewLine()
		}
		text = rest
	}
}

// WriteNewLine appends a line break.
func (b *Buffer) WriteNewLine() {
	b.WriteMarkup("\n")
}

// Len reports the number of buffered bytes.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Bytes returns the buffered markup. The slice is only valid until the
// buffer is written to or released.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// String returns a copy of the buffered markup.
func (b *Buffer) String() string {
	return string(b.buf)
}

// Reset empties the buffer, keeping its margin register.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.padPending = false
	b.padWidth = 0
}
