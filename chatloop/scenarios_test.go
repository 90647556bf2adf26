package chatloop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strands-chat/chatloop/chatconfig"
	"github.com/strands-chat/chatloop/chatllm"
)

// Scenario 1 — happy path with tokens.
func TestScenarioHappyPathWithTokens(t *testing.T) {
	agent := &stubAgent{
		name: "Test Agent",
		respond: func(call int, prompt string) (chatllm.Response, error) {
			return chatllm.Response{
				Text:  "hi",
				Model: "us.amazon.nova-lite-v1:0",
				Raw:   map[string]interface{}{"input_tokens": 10, "output_tokens": 5, "total_tokens": 15},
			}, nil
		},
	}
	reader := &fakeReader{lines: []string{"hello", "exit"}}
	o, out := newTestOrchestrator(t.TempDir(), agent, reader)
	o.cfg.Set("features.show_tokens", true, "")

	exitCode := o.loop()
	assert.Equal(t, 0, exitCode)

	snap := o.session.Snapshot()
	assert.Equal(t, 1, snap.QueryCount)
	assert.Equal(t, 15, snap.Cumulative.TotalTokens)
	assert.Contains(t, out.String(), "Tokens: 15 (in: 10, out: 5)")
}

// Scenario 3 — configuration error, no retry.
func TestScenarioConfigurationErrorNoRetry(t *testing.T) {
	agent := &stubAgent{
		name: "Test Agent",
		respond: func(call int, prompt string) (chatllm.Response, error) {
			return chatllm.Response{}, assertConfigErr()
		},
	}
	reader := &fakeReader{lines: []string{"hello", "exit"}}
	o, out := newTestOrchestrator(t.TempDir(), agent, reader)

	o.loop()

	assert.Equal(t, 1, agent.calls)
	assert.Equal(t, 0, o.session.Snapshot().QueryCount)
	assert.Contains(t, out.String(), "isn't supported")
}

func assertConfigErr() error {
	return &chatllm.AgentError{Category: chatllm.CategoryConfiguration, Message: "model ID 'bogus-9000' isn't supported"}
}

// Scenario 4 — template invocation.
func TestScenarioTemplateInvocation(t *testing.T) {
	dir := t.TempDir()
	promptsDir := filepath.Join(dir, ".prompts")
	require.NoError(t, os.MkdirAll(promptsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(promptsDir, "review.md"), []byte("Review this:\n{input}"), 0o644))

	agent := &stubAgent{name: "Test Agent"}
	reader := &fakeReader{lines: []string{"/review code X", "exit"}}
	o, _ := newTestOrchestrator(dir, agent, reader)

	o.loop()

	require.Len(t, agent.received, 1)
	assert.Equal(t, "Review this:\ncode X", agent.received[0])
	assert.Equal(t, 1, o.session.Snapshot().QueryCount)
}

// Scenario 5 — multi-line input.
func TestScenarioMultilineInput(t *testing.T) {
	agent := &stubAgent{name: "Test Agent"}
	reader := &fakeReader{lines: []string{`\\`, "def foo():", "    return 1", "", "exit"}}
	o, _ := newTestOrchestrator(t.TempDir(), agent, reader)

	o.loop()

	require.Len(t, agent.received, 1)
	assert.Equal(t, "def foo():\n    return 1", agent.received[0])
}

// Scenario 6 — per-agent override.
func TestScenarioPerAgentOverride(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "explicit.yaml")
	content := "behavior:\n  timeout: 120\nagents:\n  Product Pete:\n    behavior:\n      timeout: 5\n"
	require.NoError(t, os.WriteFile(explicit, []byte(content), 0o644))

	agent := &stubAgent{name: "Product Pete"}
	reader := &fakeReader{lines: []string{"exit"}}
	o, _ := newTestOrchestrator(dir, agent, reader)

	cfg, err := chatconfig.NewResolver().Load(explicit)
	require.NoError(t, err)
	o.cfg = cfg

	assert.Equal(t, 5.0, o.cfg.GetFloat("behavior.timeout", -1, "Product Pete"))

	other := &stubAgent{name: "Someone Else"}
	assert.Equal(t, 120.0, o.cfg.GetFloat("behavior.timeout", -1, other.DisplayName()))
}

// Scenario 7 — a second consecutive top-level interrupt ends the
// session; a single one just redraws the prompt.
func TestScenarioDoubleInterruptShutsDown(t *testing.T) {
	agent := &stubAgent{name: "Test Agent"}
	reader := &fakeReader{lines: []string{interruptSignal, "hello", interruptSignal, interruptSignal, "exit"}}
	o, _ := newTestOrchestrator(t.TempDir(), agent, reader)

	exitCode := o.loop()

	assert.Equal(t, 0, exitCode)
	require.Len(t, agent.received, 1)
	assert.Equal(t, "hello", agent.received[0])
}
