package terminalio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ErrInterrupted is returned by ReadLine when the user sends an
// interrupt (Ctrl-C) while editing a line.
var ErrInterrupted = errors.New("terminalio: interrupted")

// continuationPrompt is shown while accumulating a multi-line input
// (§4.2).
const continuationPrompt = "... "

// LineEditor reads one logical input per call, blocking the main
// control flow until a line is submitted. It owns the controlling
// terminal directly — the read is never offloaded to a worker
// goroutine, because doing so would break the editor's terminal
// ownership (§4.2's hard constraint).
type LineEditor struct {
	in      *os.File
	out     io.Writer
	history *History
	isTTY   bool

	// fallback is a line-buffered reader used when in is not a
	// controlling terminal (§4.2's non-TTY fallback: history and
	// fancy editing disabled, a blocking read suffices).
	fallback *bufio.Reader
}

// NewLineEditor builds a LineEditor over in/out, loading persistent
// history from historyPath (ignored entirely in the non-TTY fallback).
func NewLineEditor(in *os.File, out io.Writer, historyPath string) (*LineEditor, error) {
	tty := isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd())

	le := &LineEditor{in: in, out: out, isTTY: tty}
	if !tty {
		le.fallback = bufio.NewReader(in)
		return le, nil
	}

	h, err := LoadHistory(historyPath)
	if err != nil {
		return nil, err
	}
	le.history = h
	return le, nil
}

// IsTTY reports whether the editor owns a real controlling terminal.
func (le *LineEditor) IsTTY() bool { return le.isTTY }

// ReadLine blocks until a single prompt line is submitted and returns
// it. Multi-line capture is not done here: a caller that detects a
// multi-line initiator via dispatch.Classify calls ReadMultiline. It
// returns io.EOF at end of input.
func (le *LineEditor) ReadLine(prompt string) (string, error) {
	if !le.isTTY {
		return le.readLineFallback(prompt)
	}
	return le.readLineRaw(prompt)
}

func (le *LineEditor) readLineFallback(prompt string) (string, error) {
	fmt.Fprint(le.out, prompt)
	line, err := le.fallback.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadMultiline accumulates lines under the continuation prompt until
// an empty line is submitted, joining with newlines and dropping the
// trailing empty line. Each line is read through ReadLine, so on a
// terminal every non-empty line is also appended to history.
func (le *LineEditor) ReadMultiline() (string, error) {
	var lines []string
	for {
		line, err := le.ReadLine(continuationPrompt)
		if err != nil {
			return "", err
		}
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

const (
	keyCtrlA     = 1
	keyCtrlB     = 2
	keyCtrlC     = 3
	keyCtrlD     = 4
	keyCtrlE     = 5
	keyCtrlF     = 6
	keyCtrlG     = 7
	keyBackspace = 8
	keyTab       = 9
	keyCtrlK     = 11
	keyEnter     = 13
	keyCtrlN     = 14
	keyCtrlP     = 16
	keyCtrlR     = 18
	keyCtrlU     = 21
	keyCtrlW     = 23
	keyCtrlY     = 25
	keyEsc       = 27
	keyDel       = 127
)

// editState is the in-progress buffer for one raw-mode ReadLine call.
type editState struct {
	buf    []rune
	cursor int
	kill   []rune
}

func (le *LineEditor) readLineRaw(prompt string) (string, error) {
	oldState, err := term.MakeRaw(int(le.in.Fd()))
	if err != nil {
		return "", err
	}
	defer term.Restore(int(le.in.Fd()), oldState)

	r := bufio.NewReader(le.in)
	s := &editState{}
	fmt.Fprint(le.out, prompt)

	historyIdx := len(le.history.Entries())
	searching := false
	searchQuery := ""

	redraw := func() {
		fmt.Fprint(le.out, "\r\x1b[K", prompt, string(s.buf))
		if back := len(s.buf) - s.cursor; back > 0 {
			fmt.Fprintf(le.out, "\x1b[%dD", back)
		}
	}

	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}

		switch {
		case b == keyCtrlC:
			fmt.Fprint(le.out, "\r\n")
			return "", ErrInterrupted

		case b == keyCtrlD && len(s.buf) == 0:
			fmt.Fprint(le.out, "\r\n")
			return "", io.EOF

		case !searching && (b == keyEnter || b == '\n'):
			fmt.Fprint(le.out, "\r\n")
			line := string(s.buf)
			if le.history != nil {
				le.history.Append(line)
			}
			return line, nil

		case !searching && (b == keyBackspace || b == keyDel):
			if s.cursor > 0 {
				s.buf = append(s.buf[:s.cursor-1], s.buf[s.cursor:]...)
				s.cursor--
				redraw()
			}

		case b == keyCtrlA:
			s.cursor = 0
			redraw()

		case b == keyCtrlE:
			s.cursor = len(s.buf)
			redraw()

		case b == keyCtrlB:
			if s.cursor > 0 {
				s.cursor--
				redraw()
			}

		case b == keyCtrlF:
			if s.cursor < len(s.buf) {
				s.cursor++
				redraw()
			}

		case b == keyCtrlK:
			s.kill = append([]rune{}, s.buf[s.cursor:]...)
			s.buf = s.buf[:s.cursor]
			redraw()

		case b == keyCtrlU:
			s.kill = append([]rune{}, s.buf[:s.cursor]...)
			s.buf = s.buf[s.cursor:]
			s.cursor = 0
			redraw()

		case b == keyCtrlW:
			start := s.cursor
			for start > 0 && s.buf[start-1] == ' ' {
				start--
			}
			for start > 0 && s.buf[start-1] != ' ' {
				start--
			}
			s.kill = append([]rune{}, s.buf[start:s.cursor]...)
			s.buf = append(s.buf[:start], s.buf[s.cursor:]...)
			s.cursor = start
			redraw()

		case b == keyCtrlY:
			s.buf = insertAt(s.buf, s.cursor, s.kill...)
			s.cursor += len(s.kill)
			redraw()

		case b == keyCtrlN:
			if le.history != nil {
				historyIdx, s.buf, s.cursor = historyDown(le.history, historyIdx, s.buf)
				redraw()
			}

		case b == keyCtrlP:
			if le.history != nil {
				historyIdx, s.buf, s.cursor = historyUp(le.history, historyIdx, s.buf)
				redraw()
			}

		case b == keyCtrlR:
			searching = true
			searchQuery = ""
			match, idx := searchHistory(le.history, searchQuery, historyIdx)
			fmt.Fprintf(le.out, "\r\x1b[K(reverse-i-search)`%s': %s", searchQuery, match)
			historyIdx = idx

		case searching && b == keyCtrlG:
			searching = false
			redraw()

		case searching && (b == keyEnter || b == '\n'):
			searching = false
			s.buf = []rune(historyAt(le.history, historyIdx))
			s.cursor = len(s.buf)
			redraw()

		case searching:
			if b == keyBackspace || b == keyDel {
				if len(searchQuery) > 0 {
					searchQuery = searchQuery[:len(searchQuery)-1]
				}
			} else {
				searchQuery += string(rune(b))
			}
			match, idx := searchHistory(le.history, searchQuery, len(le.history.Entries()))
			historyIdx = idx
			fmt.Fprintf(le.out, "\r\x1b[K(reverse-i-search)`%s': %s", searchQuery, match)

		case b == keyEsc:
			le.handleEscapeSequence(r, s, &historyIdx, redraw)

		case b >= 0x20:
			s.buf = insertAt(s.buf, s.cursor, rune(b))
			s.cursor++
			redraw()
		}
	}
}

// handleEscapeSequence consumes a CSI arrow-key sequence following an
// ESC byte: up/down for history, left/right for caret motion.
func (le *LineEditor) handleEscapeSequence(r *bufio.Reader, s *editState, historyIdx *int, redraw func()) {
	b1, err := r.ReadByte()
	if err != nil || b1 != '[' {
		return
	}
	b2, err := r.ReadByte()
	if err != nil {
		return
	}
	switch b2 {
	case 'A': // up
		if le.history != nil {
			*historyIdx, s.buf, s.cursor = historyUp(le.history, *historyIdx, s.buf)
			redraw()
		}
	case 'B': // down
		if le.history != nil {
			*historyIdx, s.buf, s.cursor = historyDown(le.history, *historyIdx, s.buf)
			redraw()
		}
	case 'C': // right
		if s.cursor < len(s.buf) {
			s.cursor++
			redraw()
		}
	case 'D': // left
		if s.cursor > 0 {
			s.cursor--
			redraw()
		}
	}
}

func insertAt(buf []rune, at int, rs ...rune) []rune {
	out := make([]rune, 0, len(buf)+len(rs))
	out = append(out, buf[:at]...)
	out = append(out, rs...)
	out = append(out, buf[at:]...)
	return out
}

func historyAt(h *History, idx int) string {
	entries := h.Entries()
	if idx < 0 || idx >= len(entries) {
		return ""
	}
	return entries[idx]
}

func historyUp(h *History, idx int, current []rune) (int, []rune, int) {
	if idx <= 0 {
		return idx, current, len(current)
	}
	idx--
	buf := []rune(historyAt(h, idx))
	return idx, buf, len(buf)
}

func historyDown(h *History, idx int, current []rune) (int, []rune, int) {
	entries := h.Entries()
	if idx >= len(entries) {
		return idx, current, len(current)
	}
	idx++
	if idx >= len(entries) {
		return idx, nil, 0
	}
	buf := []rune(historyAt(h, idx))
	return idx, buf, len(buf)
}

// searchHistory scans backward from startIdx for the most recent entry
// containing query, returning the match text (empty if none) and its
// index (or startIdx if no match).
func searchHistory(h *History, query string, startIdx int) (string, int) {
	if query == "" {
		return "", startIdx
	}
	entries := h.Entries()
	for i := startIdx - 1; i >= 0; i-- {
		if strings.Contains(entries[i], query) {
			return entries[i], i
		}
	}
	return "", startIdx
}
