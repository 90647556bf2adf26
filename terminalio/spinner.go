package terminalio

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// spinnerState is the explicit state machine §9 asks for, owned by the
// Agent Invoker through Spinner's Start/Stop and cleaned up via a
// scoped guard (Stop, always deferred) that runs on every exit path.
type spinnerState int

const (
	spinnerIdle spinnerState = iota
	spinnerTicking
	spinnerFlushing
)

var spinnerFrames = map[string][]string{
	"dots": {"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	"line": {"-", "\\", "|", "/"},
	"dot":  {".", "..", "..."},
}

// Spinner is the thinking indicator: started when an agent call begins,
// ticking on a cadence, and stopped on every exit path (success,
// exception, cancellation, timeout). Stop is idempotent.
type Spinner struct {
	mu     sync.Mutex
	state  spinnerState
	out    io.Writer
	frames []string
	cadence time.Duration
	stopCh  chan struct{}
	doneCh  chan struct{}
	// plain disables the animated spinner in favor of a dot-per-tick
	// progress indicator, for the non-TTY fallback (§4.2).
	plain bool
}

// NewSpinner builds a Spinner rendering style (from behavior.spinner_style,
// falling back to "dots") at a ~100ms cadence, per §4.2.
func NewSpinner(out io.Writer, style string, plain bool) *Spinner {
	frames, ok := spinnerFrames[style]
	if !ok {
		frames = spinnerFrames["dots"]
	}
	return &Spinner{out: out, frames: frames, cadence: 100 * time.Millisecond, plain: plain}
}

// Start transitions idle -> ticking and begins repainting the spinner
// row on the configured cadence. Calling Start while already ticking is
// a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == spinnerTicking {
		return
	}
	s.state = spinnerTicking
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.run(s.stopCh, s.doneCh)
}

func (s *Spinner) run(stop, done chan struct{}) {
	defer close(done)
	if s.plain {
		s.runPlain(stop)
		return
	}
	ticker := time.NewTicker(s.cadence)
	defer ticker.Stop()
	i := 0
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fmt.Fprintf(s.out, "\r%s ", s.frames[i%len(s.frames)])
			i++
		}
	}
}

func (s *Spinner) runPlain(stop chan struct{}) {
	ticker := time.NewTicker(s.cadence * 5)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fmt.Fprint(s.out, ".")
		}
	}
}

// Stop transitions ticking -> flushing -> idle, erasing the spinner row
// before returning so that no further output is corrupted. It is safe
// to call multiple times or when never started.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.state != spinnerTicking {
		s.mu.Unlock()
		return
	}
	s.state = spinnerFlushing
	stop, done := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stop)
	<-done

	s.mu.Lock()
	fmt.Fprint(s.out, "\r\x1b[K")
	s.state = spinnerIdle
	s.mu.Unlock()
}
