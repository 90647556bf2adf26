package chatloop

import (
	"bytes"
	"context"
	"io"
	"path/filepath"

	"github.com/strands-chat/chatloop/chatconfig"
	"github.com/strands-chat/chatloop/chatllm"
	"github.com/strands-chat/chatloop/chatsession"
	"github.com/strands-chat/chatloop/prompttemplate"
	"github.com/strands-chat/chatloop/terminalio"
)

// interruptSignal is a scripted fakeReader line that, instead of being
// returned as input, surfaces terminalio.ErrInterrupted — standing in
// for a Ctrl-C at the prompt.
const interruptSignal = "\x03"

// fakeReader feeds a fixed sequence of lines to ReadLine, mimicking a
// scripted user session without touching a real controlling terminal.
type fakeReader struct {
	lines []string
	i     int
}

func (f *fakeReader) ReadLine(prompt string) (string, error) {
	if f.i >= len(f.lines) {
		return "", io.EOF
	}
	line := f.lines[f.i]
	f.i++
	if line == interruptSignal {
		return "", terminalio.ErrInterrupted
	}
	return line, nil
}

func (f *fakeReader) ReadMultiline() (string, error) {
	var lines []string
	for {
		line, err := f.ReadLine("")
		if err != nil {
			return "", err
		}
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	result := ""
	for i, l := range lines {
		if i > 0 {
			result += "\n"
		}
		result += l
	}
	return result, nil
}

func (f *fakeReader) IsTTY() bool { return false }

type stubAgent struct {
	name     string
	received []string
	respond  func(call int, prompt string) (chatllm.Response, error)
	calls    int
}

func (s *stubAgent) DisplayName() string { return s.name }

func (s *stubAgent) Invoke(ctx context.Context, prompt string) (chatllm.Response, error) {
	s.calls++
	s.received = append(s.received, prompt)
	if s.respond != nil {
		return s.respond(s.calls, prompt)
	}
	return chatllm.Response{Text: "ok"}, nil
}

func newTestOrchestrator(tempDir string, agent *stubAgent, reader *fakeReader) (*Orchestrator, *bytes.Buffer) {
	var out bytes.Buffer
	cfg, _ := chatconfig.NewResolver().Load("")
	o := &Orchestrator{
		opts:      Options{Stdout: &out},
		cfg:       cfg,
		agent:     agent,
		editor:    reader,
		colors:    terminalio.NewColorWriter(&out, nil),
		session:   chatsession.New(),
		templates: &prompttemplate.Store{Dir: filepath.Join(tempDir, ".prompts")},
		agentName: agent.name,
	}
	o.opts.NewAgent = func() (chatllm.Agent, error) { return agent, nil }
	return o, &out
}
