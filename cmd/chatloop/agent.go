package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/strands-chat/chatloop/chatllm"
)

// definition is the on-disk shape of an agent definition file: a
// minimal, self-contained stand-in for "an object yielded by an
// external factory convention" (construction and invocation of real
// LLM-backed agents is out of scope for this repo — see DESIGN.md).
type definition struct {
	Name        string   `yaml:"name"`
	Model       string   `yaml:"model"`
	Description string   `yaml:"description"`
	Tools       []string `yaml:"tools"`
	Reply       string   `yaml:"reply"`
}

// definitionAgent implements chatllm.Agent plus its optional probe
// interfaces from a loaded definition. When Reply is empty it echoes
// the prompt back, which is enough to drive the turn loop end to end
// without a real model behind it.
type definitionAgent struct {
	def definition
}

func loadDefinitionAgent(path string) (*definitionAgent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading agent definition %s: %w", path, err)
	}
	var def definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parsing agent definition %s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(
			strings.TrimPrefix(path, "/"), ".yaml")
	}
	return &definitionAgent{def: def}, nil
}

func (a *definitionAgent) Invoke(ctx context.Context, prompt string) (chatllm.Response, error) {
	text := a.def.Reply
	if text == "" {
		text = prompt
	}
	return chatllm.Response{
		Text:  text,
		Model: a.def.Model,
		Raw: map[string]interface{}{
			"input_tokens":  len(strings.Fields(prompt)),
			"output_tokens": len(strings.Fields(text)),
			"total_tokens":  len(strings.Fields(prompt)) + len(strings.Fields(text)),
		},
	}, nil
}

func (a *definitionAgent) DisplayName() string { return a.def.Name }
func (a *definitionAgent) ModelID() string     { return a.def.Model }
func (a *definitionAgent) Description() string { return a.def.Description }
func (a *definitionAgent) Tools() []string     { return a.def.Tools }
func (a *definitionAgent) Cleanup() error      { return nil }
