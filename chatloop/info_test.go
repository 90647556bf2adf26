package chatloop

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strands-chat/chatloop/chatllm"
)

func TestPrintInfoListsAgentAndEnabledFeatures(t *testing.T) {
	agent := &stubAgent{name: "Test Agent"}
	reader := &fakeReader{lines: []string{"info", "exit"}}
	o, out := newTestOrchestrator(t.TempDir(), agent, reader)
	o.cfg.Set("features.show_tokens", true, "")

	o.loop()

	text := out.String()
	assert.Contains(t, text, "Agent: Test Agent")
	assert.Contains(t, text, "Features:")
	assert.Contains(t, text, "rich_enabled")
	assert.Contains(t, text, "show_metadata")
	assert.Contains(t, text, "readline_enabled")
	assert.Contains(t, text, "show_tokens")
	assert.NotContains(t, text, "auto_save")
}

func TestRenderPerTurnLineIncludesCycleCountWhenPresent(t *testing.T) {
	agent := &stubAgent{
		name: "Test Agent",
		respond: func(call int, prompt string) (chatllm.Response, error) {
			return chatllm.Response{
				Text: "hi",
				Raw:  map[string]interface{}{"input_tokens": 1, "output_tokens": 1, "total_tokens": 2, "cycle_count": 3},
			}, nil
		},
	}
	reader := &fakeReader{lines: []string{"hello", "exit"}}
	o, out := newTestOrchestrator(t.TempDir(), agent, reader)
	o.cfg.Set("features.show_tokens", true, "")

	o.loop()

	assert.Contains(t, out.String(), "3 cycles")
}
