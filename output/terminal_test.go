package output

import (
	"bytes"
	"os"
	"testing"
)

func TestIsTerminalPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})

	if IsTerminal(r) {
		t.Fatalf("expected pipe reader to not be a terminal")
	}
	if IsTerminal(w) {
		t.Fatalf("expected pipe writer to not be a terminal")
	}
	if IsTerminal(&bytes.Buffer{}) {
		t.Fatalf("expected buffer to not be a terminal")
	}
}
