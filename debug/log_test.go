package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogWritesWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	Log("sync", "status %s", "OPEN")
	Warn("sync", "decode failed: %v", "eof")

	out := buf.String()
	if !strings.Contains(out, "status OPEN") {
		t.Fatalf("missing debug output; got: %s", out)
	}
	if !strings.Contains(out, "category=sync") {
		t.Fatalf("missing category; got: %s", out)
	}
	if !strings.Contains(out, "decode failed: eof") {
		t.Fatalf("missing warn output; got: %s", out)
	}
}

func TestLogSilentWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	Disable()

	Log("sync", "should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got: %s", buf.String())
	}
}

func TestLogEvery(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	for i := 0; i < 6; i++ {
		LogEvery(3, "mirror", "frame")
	}

	if got := strings.Count(buf.String(), "frame (every 3"); got != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", got, buf.String())
	}
}

func TestLogEveryNonPositive(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	for _, n := range []int{0, -2, 1} {
		LogEvery(n, "mirror", "tick %d", n)
	}

	for _, want := range []string{"tick 0", "tick -2", "tick 1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing %q: %s", want, buf.String())
		}
	}
}
