package chatsession

import (
	"fmt"
	"strings"
	"time"

	"github.com/strands-chat/chatloop/tokens"
)

// FormatDuration renders d as "Xm Ys", or "Xh Ym Ys" once it reaches an
// hour, matching the original implementation's session-summary style.
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}

// Summary renders the framed block emitted unconditionally on exit
// (§4.7): duration, successful query count, cumulative tokens with
// in/out split, cumulative cost.
func Summary(snap Snapshot) string {
	var b strings.Builder
	rule := strings.Repeat("─", 40) + "\n"
	b.WriteString(rule)
	b.WriteString("Session summary\n")
	fmt.Fprintf(&b, "  Duration: %s\n", FormatDuration(snap.Elapsed))
	fmt.Fprintf(&b, "  Queries:  %d\n", snap.QueryCount)
	fmt.Fprintf(&b, "  Tokens:   %s (in: %s, out: %s)\n",
		tokens.FormatTokens(snap.Cumulative.TotalTokens),
		tokens.FormatTokens(snap.Cumulative.InputTokens),
		tokens.FormatTokens(snap.Cumulative.OutputTokens))
	if cost := tokens.FormatCost(snap.Cumulative); cost != "" {
		fmt.Fprintf(&b, "  Cost:     %s\n", cost)
	}
	b.WriteString(rule)
	return b.String()
}
