package render

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/muesli/reflow/indent"
	pkgerrors "github.com/pkg/errors"

	"pkt.systems/marklog/formatting"
	"pkt.systems/marklog/markup"
)

const (
	defaultMaxStackFrames = 32
	defaultMaxErrorDepth  = 8
	defaultFrameIndent    = 3
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// exceptionRenderer prints the event error, one line per error in its wrap
// chain, with the stack trace of the innermost error that recorded one.
// Every line it writes ends with a line break.
type exceptionRenderer struct{}

func (exceptionRenderer) Render(b *Buffer, e *Event) error {
	if e.Err == nil {
		return nil
	}
	opts := OptionsFor[ExceptionOptions](e.Profile)
	if opts.MaxStackFrames <= 0 {
		opts.MaxStackFrames = defaultMaxStackFrames
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = defaultMaxErrorDepth
	}
	if opts.Indent <= 0 {
		opts.Indent = defaultFrameIndent
	}
	var out strings.Builder
	writeErrorChain(&out, opts, e.Err, 0, true)
	b.WriteMarkup(out.String())
	return nil
}

func writeErrorChain(out *strings.Builder, opts ExceptionOptions, err error, depth int, top bool) {
	var st pkgerrors.StackTrace
	if top && !opts.HideStackTrace {
		st = innermostStack(err)
	}
	err = collapse(err)
	var line strings.Builder
	if !top {
		line.WriteString("---> ")
	}
	if !opts.HideType {
		line.WriteString(formatting.Wrap(opts.TypeStyle, markup.Escape(fmt.Sprintf("%T", err))))
		line.WriteString(": ")
	}
	line.WriteString(formatting.Wrap(opts.MessageStyle, markup.Escape(ownMessage(err))))
	line.WriteByte('\n')
	if len(st) > 0 {
		line.WriteString(indent.String(renderFrames(opts, st), uint(opts.Indent)))
	}
	out.WriteString(indent.String(line.String(), uint(depth*opts.Indent)))

	if depth+1 > opts.MaxDepth {
		return
	}
	switch x := err.(type) {
	case interface{ Unwrap() []error }:
		for _, child := range x.Unwrap() {
			if child != nil {
				writeErrorChain(out, opts, child, depth+1, false)
			}
		}
	default:
		if next := errors.Unwrap(err); next != nil {
			writeErrorChain(out, opts, next, depth+1, false)
		}
	}
}

// collapse skips wrappers that only add a stack trace: an error whose
// message equals that of the error it wraps.
func collapse(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil || next.Error() != err.Error() {
			return err
		}
		err = next
	}
}

// ownMessage returns the message err adds on top of the error it wraps, so
// "read config: open x: no such file" wrapping "open x: no such file" prints
// as "read config".
func ownMessage(err error) string {
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		return strconv.Itoa(len(multi.Unwrap())) + " errors"
	}
	msg := err.Error()
	next := errors.Unwrap(err)
	if next == nil {
		return msg
	}
	if trimmed, ok := strings.CutSuffix(msg, ": "+next.Error()); ok {
		return trimmed
	}
	return msg
}

func innermostStack(err error) pkgerrors.StackTrace {
	var found pkgerrors.StackTrace
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		if st, ok := cur.(stackTracer); ok {
			found = st.StackTrace()
		}
	}
	return found
}

func renderFrames(opts ExceptionOptions, st pkgerrors.StackTrace) string {
	var out strings.Builder
	for i, f := range st {
		if i >= opts.MaxStackFrames {
			out.WriteString(formatting.Wrap(opts.FrameStyle, markup.Escape("... "+strconv.Itoa(len(st)-i)+" more")))
			out.WriteByte('\n')
			break
		}
		pc := uintptr(f) - 1
		name, file, line := unknownFunction, "", 0
		if fn := runtime.FuncForPC(pc); fn != nil {
			name = QualifiedFunctionName(fn.Name())
			file, line = fn.FileLine(pc)
		}
		out.WriteString(formatting.Wrap(opts.FrameStyle, markup.Escape("at "+name)))
		if file != "" {
			if !opts.FullPaths {
				file = filepath.Base(file)
			}
			loc := file
			if !opts.HideLineNumbers {
				loc += ":" + strconv.Itoa(line)
			}
			out.WriteString(" in ")
			out.WriteString(formatting.Wrap(opts.PathStyle, markup.Escape(loc)))
		}
		out.WriteByte('\n')
	}
	return out.String()
}
