package terminalio

import (
	"fmt"
	"io"
	"strings"

	"github.com/strands-chat/chatloop/tokens"
)

// StatusBarInfo carries the fields rendered into the boxed status line
// (§4.2): agent display name, short model identifier, running query
// count, cumulative token total (only shown when token tracking is
// enabled), and elapsed session time.
type StatusBarInfo struct {
	AgentName   string
	ModelID     string
	QueryCount  int
	ShowTokens  bool
	TotalTokens int
	Elapsed     string
}

// RenderStatusBar clears the screen and draws a single-line box at the
// top containing the fields in StatusBarInfo, never redrawn mid-query
// (§4.2: "the status bar is never redrawn mid-query" — callers must not
// invoke this while an agent call is in flight).
func RenderStatusBar(out io.Writer, info StatusBarInfo) {
	fmt.Fprint(out, "\x1b[2J\x1b[H")

	var parts []string
	parts = append(parts, info.AgentName)
	if info.ModelID != "" {
		parts = append(parts, info.ModelID)
	}
	parts = append(parts, fmt.Sprintf("queries: %d", info.QueryCount))
	if info.ShowTokens {
		parts = append(parts, fmt.Sprintf("tokens: %s", tokens.FormatTokens(info.TotalTokens)))
	}
	parts = append(parts, info.Elapsed)

	line := strings.Join(parts, " | ")
	width := len(line) + 2

	fmt.Fprintln(out, "┌"+strings.Repeat("─", width)+"┐")
	fmt.Fprintf(out, "│ %s │\n", line)
	fmt.Fprintln(out, "└"+strings.Repeat("─", width)+"┘")
}
