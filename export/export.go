package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/strands-chat/chatloop/chatsession"
)

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases name and replaces each run of characters other than
// a-z and 0-9 (underscore included) with a single hyphen, trimming
// hyphens from both ends, per §4.8's file-naming rule.
func Slug(name string) string {
	lower := strings.ToLower(name)
	slug := nonWord.ReplaceAllString(lower, "-")
	return strings.Trim(slug, "-")
}

// FileName returns the "YYYY-MM-DD_HH-MM-SS_<slug>.md" name for a
// session starting at start, for the given agent display name.
func FileName(start time.Time, agentName string) string {
	return fmt.Sprintf("%s_%s.md", start.Format("2006-01-02_15-04-05"), Slug(agentName))
}

// Export writes the transcript to saveDir (created if absent),
// returning the full path written. A write failure is reported to the
// caller but, per §4.8's failure policy, never suppresses the session
// summary or alters the exit status — that's the caller's concern, not
// this function's.
func Export(saveDir, agentName, model string, start, end time.Time, snap chatsession.Snapshot) (string, error) {
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(saveDir, FileName(start, agentName))

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", agentName)
	fmt.Fprintf(&b, "- Model: %s\n", model)
	fmt.Fprintf(&b, "- Start: %s\n", start.Format(time.RFC3339))
	fmt.Fprintf(&b, "- End: %s\n", end.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Queries: %d\n", snap.QueryCount)
	fmt.Fprintf(&b, "- Tokens: %d (in: %d, out: %d)\n\n",
		snap.Cumulative.TotalTokens, snap.Cumulative.InputTokens, snap.Cumulative.OutputTokens)

	for _, entry := range snap.Transcript {
		switch entry.Role {
		case "user":
			fmt.Fprintf(&b, "## User\n\n%s\n\n", entry.Text)
		case "agent":
			fmt.Fprintf(&b, "## Agent\n\n%s\n\n", entry.Text)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
