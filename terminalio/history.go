package terminalio

import (
	"bufio"
	"os"
)

// maxHistoryEntries caps the persistent history file, oldest trimmed,
// per §4.2/§6.
const maxHistoryEntries = 1000

// History is the persistent command history, loaded at startup and
// appended to on every successful submission.
type History struct {
	Path    string
	entries []string
}

// LoadHistory reads path (UTF-8, one entry per line, most-recent last),
// tolerating a missing file as an empty history.
func LoadHistory(path string) (*History, error) {
	h := &History{Path: path}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return h, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		h.entries = append(h.entries, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	h.trim()
	return h, nil
}

// Append adds entry as the newest history line and persists the file
// immediately, trimming from the front once over maxHistoryEntries.
func (h *History) Append(entry string) error {
	if entry == "" {
		return nil
	}
	h.entries = append(h.entries, entry)
	h.trim()
	return h.save()
}

func (h *History) trim() {
	if len(h.entries) > maxHistoryEntries {
		h.entries = h.entries[len(h.entries)-maxHistoryEntries:]
	}
}

func (h *History) save() error {
	if h.Path == "" {
		return nil
	}
	f, err := os.Create(h.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range h.entries {
		if _, err := w.WriteString(e + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Entries returns the history lines, oldest first.
func (h *History) Entries() []string {
	return h.entries
}
