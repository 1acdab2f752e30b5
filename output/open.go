package output

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"

	"pkt.systems/marklog/errors"
)

// Open resolves an output spec: "stdout", "stderr", "default" (base), a
// file path, or "stdout+<path>", "stderr+<path>", "default+<path>" to tee
// into a file as well. Files are opened for append and are owned: Close on
// the returned writer closes them. Tee'd files receive plain text with ANSI
// sequences removed. On error base is returned with a coded OUTPUT_OPEN
// error.
func Open(spec string, base io.Writer) (io.Writer, error) {
	trimmed := strings.TrimSpace(spec)
	if base == nil {
		base = io.Discard
	}
	if trimmed == "" {
		return base, nil
	}
	lowered := strings.ToLower(trimmed)
	switch lowered {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "default":
		return base, nil
	}
	for _, prefix := range []struct {
		name   string
		target io.Writer
	}{
		{"stdout+", os.Stdout},
		{"stderr+", os.Stderr},
		{"default+", base},
	} {
		if !strings.HasPrefix(lowered, prefix.name) {
			continue
		}
		path := strings.TrimSpace(trimmed[len(prefix.name):])
		if path == "" {
			return prefix.target, nil
		}
		file, err := openFile(path)
		if err != nil {
			return base, err
		}
		return Own(Tee(file, prefix.target, colorable.NewNonColorable(file)), file), nil
	}
	file, err := openFile(trimmed)
	if err != nil {
		return base, err
	}
	return Own(file, file), nil
}

func openFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrOutputOpen, "open log output %q", path).WithDetail("path", path)
	}
	return file, nil
}

// Console returns a writer for a terminal file that understands ANSI
// sequences on every platform.
func Console(f *os.File) io.Writer {
	return colorable.NewColorable(f)
}
