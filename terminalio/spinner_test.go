package terminalio

import (
	"bytes"
	"testing"
	"time"
)

func TestSpinnerStartStopIdempotent(t *testing.T) {
	var buf bytes.Buffer
	sp := NewSpinner(&buf, "dots", false)

	sp.Start()
	time.Sleep(250 * time.Millisecond) // longer than the 100ms cadence
	sp.Stop()
	sp.Stop() // idempotent, must not block or panic

	if !bytes.Contains(buf.Bytes(), []byte(spinnerFrames["dots"][0])) {
		t.Error("expected spinner to have written at least one frame")
	}
}

func TestSpinnerStopErasesRow(t *testing.T) {
	var buf bytes.Buffer
	sp := NewSpinner(&buf, "dots", false)
	sp.Start()
	time.Sleep(10 * time.Millisecond)
	sp.Stop()

	if !bytes.Contains(buf.Bytes(), []byte("\x1b[K")) {
		t.Error("expected erase sequence in output")
	}
}

func TestSpinnerUnknownStyleFallsBackToDots(t *testing.T) {
	var buf bytes.Buffer
	sp := NewSpinner(&buf, "nonexistent", false)
	if len(sp.frames) == 0 {
		t.Error("expected fallback frames")
	}
}
