package render

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"pkt.systems/marklog/template"
)

const unknownFunction = "unknown"

type callerRenderer struct{ seg template.Segment }

func (callerRenderer) NeedsCaller() bool { return true }

func (r callerRenderer) Render(b *Buffer, e *Event) error {
	opts := OptionsFor[CallerOptions](e.Profile)
	var text string
	switch strings.ToLower(r.seg.Format) {
	case "file":
		text = fileLineForPC(e.CallerPC, false)
	case "full":
		text = fileLineForPC(e.CallerPC, true)
	default:
		text = FunctionNameForPC(e.CallerPC)
	}
	writeAligned(b, r.seg, opts.Style, text)
	return nil
}

// FunctionNameForPC returns the bare function name at pc, without package
// path, or "unknown".
func FunctionNameForPC(pc uintptr) string {
	if pc == 0 {
		return unknownFunction
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return unknownFunction
	}
	return TrimFunctionName(fn.Name())
}

// TrimFunctionName strips the package path and package prefix from a fully
// qualified function name.
func TrimFunctionName(name string) string {
	if name == "" {
		return unknownFunction
	}
	name = QualifiedFunctionName(name)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return unknownFunction
	}
	return name
}

// QualifiedFunctionName strips the import path from a fully qualified
// function name, keeping the package prefix: "a/b/render.(*Buffer).Len"
// becomes "render.(*Buffer).Len".
func QualifiedFunctionName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

func fileLineForPC(pc uintptr, full bool) string {
	if pc == 0 {
		return unknownFunction
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return unknownFunction
	}
	file, line := fn.FileLine(pc)
	if !full {
		file = filepath.Base(file)
	}
	return file + ":" + strconv.Itoa(line)
}
