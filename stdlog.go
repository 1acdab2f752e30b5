package marklog

import (
	"bytes"
	"context"
	"log"
	"strings"

	"pkt.systems/marklog/level"
)

// StdLogger wraps logger into a stdlib *log.Logger. Each written line is
// logged at the level named by its prefix ("[warn] ...", "error: ...") or at
// Info.
func StdLogger(logger *Logger) *log.Logger {
	return log.New(loggerWriter{logger: logger}, "", 0)
}

// StdLoggerWithLevel wraps logger into a stdlib *log.Logger that logs every
// line at lvl.
func StdLoggerWithLevel(logger *Logger, lvl level.Level) *log.Logger {
	return log.New(loggerWriter{logger: logger, level: lvl, pinned: true}, "", 0)
}

type loggerWriter struct {
	logger *Logger
	level  level.Level
	pinned bool
}

func (w loggerWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if w.logger == nil {
		return len(p), nil
	}
	for line := range bytes.SplitSeq(p, []byte{'\n'}) {
		trimmed := strings.TrimSpace(string(bytes.TrimRight(line, "\r")))
		if trimmed == "" {
			continue
		}
		lvl, msg := w.level, trimmed
		if !w.pinned {
			lvl, msg = classifyLineLevel(trimmed)
		}
		// Bridged text is not a message template.
		w.logger.Log(context.Background(), lvl, "{0}", msg)
	}
	return len(p), nil
}

func classifyLineLevel(line string) (level.Level, string) {
	if strings.HasPrefix(line, "[") {
		if end := strings.IndexRune(line, ']'); end > 1 {
			if lvl, ok := level.Parse(line[1:end]); ok {
				return lvl, strings.TrimSpace(line[end+1:])
			}
		}
	}
	lowered := strings.ToLower(line)
	for _, prefix := range []string{"trace", "debug", "information", "info", "warning", "warn", "error", "critical", "fatal"} {
		if !strings.HasPrefix(lowered, prefix) {
			continue
		}
		if len(lowered) > len(prefix) && isLetter(lowered[len(prefix)]) {
			continue
		}
		lvl, _ := level.Parse(prefix)
		tail := strings.TrimLeft(strings.TrimSpace(line[len(prefix):]), ":- ")
		return lvl, strings.TrimSpace(tail)
	}
	return level.Info, line
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}
