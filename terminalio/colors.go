package terminalio

import (
	"fmt"
	"io"

	"github.com/mattn/go-isatty"
)

// Role names one of the six semantic color roles plus reset.
type Role string

const (
	RoleUser    Role = "user"
	RoleAgent   Role = "agent"
	RoleSystem  Role = "system"
	RoleError   Role = "error"
	RoleSuccess Role = "success"
	RoleDim     Role = "dim"
)

var ansiCodes = map[string]string{
	"bright white": "\x1b[97m",
	"bright blue":  "\x1b[94m",
	"yellow":       "\x1b[33m",
	"bright red":   "\x1b[91m",
	"bright green": "\x1b[92m",
	"dim":          "\x1b[2m",
	"reset":        "\x1b[0m",
}

// Escape resolves a config color name (§6's colors.* values) to its
// ANSI escape sequence, falling back to the literal value if it isn't
// one of the named presets (so a config author can supply a raw escape
// sequence directly).
func Escape(name string) string {
	if code, ok := ansiCodes[name]; ok {
		return code
	}
	return name
}

// ColorWriter wraps text with a role's escape sequence and the reset
// sequence, eliding both when the underlying writer is not a TTY.
type ColorWriter struct {
	w       io.Writer
	isTTY   bool
	escapes map[Role]string
	reset   string
}

// NewColorWriter builds a ColorWriter over w, resolving each role's
// escape sequence from the supplied name map (role name -> configured
// color name, as read from the colors.* config section).
func NewColorWriter(w io.Writer, names map[Role]string) *ColorWriter {
	tty := false
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	escapes := make(map[Role]string, len(names))
	for role, name := range names {
		escapes[role] = Escape(name)
	}
	resetName := names[Role("reset")]
	if resetName == "" {
		resetName = "reset"
	}
	return &ColorWriter{w: w, isTTY: tty, escapes: escapes, reset: Escape(resetName)}
}

// IsTTY reports whether escape sequences are actually being emitted.
func (c *ColorWriter) IsTTY() bool { return c.isTTY }

// Print writes text wrapped in role's escape sequence and the reset
// sequence; if the writer is not a TTY, text is written unwrapped.
func (c *ColorWriter) Print(role Role, text string) {
	if !c.isTTY {
		fmt.Fprint(c.w, text)
		return
	}
	fmt.Fprint(c.w, c.escapes[role], text, c.reset)
}

// Println is Print followed by a newline.
func (c *ColorWriter) Println(role Role, text string) {
	c.Print(role, text)
	fmt.Fprintln(c.w)
}
