package chatsession

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/strands-chat/chatloop/tokens"
)

// TranscriptEntry is one recorded turn of user input or agent output.
type TranscriptEntry struct {
	Role      string // "user" or "agent"
	Text      string
	Timestamp time.Time
}

// State holds the lifetime counters for one chat session. All mutating
// methods are safe for concurrent use, though in practice the chat loop
// is single-threaded per §5 and only ever calls them from the main
// goroutine between suspension points.
type State struct {
	mu sync.Mutex

	ID          string
	Start       time.Time
	QueryCount  int
	Cumulative  tokens.Usage
	LastResponse interface{}
	Transcript  []TranscriptEntry
}

// New creates a State stamped with a fresh session ID and the current
// time as its start instant.
func New() *State {
	return &State{ID: uuid.New().String(), Start: time.Now()}
}

// RecordTurn increments the query counter exactly once, adds usage to
// the cumulative total, and appends both transcript entries. Call only
// after a successful agent turn — retries and failures must not call
// this, per §3's invariant that query_count counts successful turns
// only.
func (s *State) RecordTurn(userText, agentText string, usage tokens.Usage, lastResponse interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.QueryCount++
	s.Cumulative = s.Cumulative.Add(usage)
	s.LastResponse = lastResponse
	s.Transcript = append(s.Transcript,
		TranscriptEntry{Role: "user", Text: userText, Timestamp: now},
		TranscriptEntry{Role: "agent", Text: agentText, Timestamp: now},
	)
}

// Reset clears counters and transcript but keeps the session ID and
// start instant untouched, used by the `clear` builtin (§4.3).
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.QueryCount = 0
	s.Cumulative = tokens.Usage{}
	s.LastResponse = nil
	s.Transcript = nil
}

// Snapshot returns a consistent copy of the counters needed to render a
// summary or status bar line.
type Snapshot struct {
	ID         string
	Elapsed    time.Duration
	QueryCount int
	Cumulative tokens.Usage
	Transcript []TranscriptEntry
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	transcript := make([]TranscriptEntry, len(s.Transcript))
	copy(transcript, s.Transcript)
	return Snapshot{
		ID:         s.ID,
		Elapsed:    time.Since(s.Start),
		QueryCount: s.QueryCount,
		Cumulative: s.Cumulative,
		Transcript: transcript,
	}
}
