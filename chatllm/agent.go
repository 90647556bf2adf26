package chatllm

import "context"

// Response is the value returned from invoking an agent. The loop never
// assumes a concrete class; Raw carries whatever the agent returned so
// tokens.Extract can probe it for a usage shape.
type Response struct {
	Text  string
	Raw   interface{}
	Model string
}

// Agent is any external collaborator invoked once per non-builtin turn.
// It is the sole required capability; everything else is probed for via
// the optional interfaces below, mirroring the way the spec's original
// implementation probed for attributes that may or may not be present
// on a concrete Response/agent object.
type Agent interface {
	Invoke(ctx context.Context, prompt string) (Response, error)
}

// DisplayNamer is an optional capability: a human-facing display name.
type DisplayNamer interface {
	DisplayName() string
}

// ModelIdentifier is an optional capability: the model identifier in
// use, for status-bar and token-pricing lookups.
type ModelIdentifier interface {
	ModelID() string
}

// Describer is an optional capability: a short description shown by
// the `info` builtin.
type Describer interface {
	Description() string
}

// ToolLister is an optional capability: the tools available to the
// agent, shown by the `info` builtin.
type ToolLister interface {
	Tools() []string
}

// Cleanuper is an optional capability: best-effort teardown invoked on
// `clear` and at shutdown. Its absence is not an error.
type Cleanuper interface {
	Cleanup() error
}

// DisplayName returns agent's display name if it implements
// DisplayNamer, else a fallback.
func DisplayName(agent Agent) string {
	if dn, ok := agent.(DisplayNamer); ok {
		if name := dn.DisplayName(); name != "" {
			return name
		}
	}
	return "agent"
}

// ModelID returns agent's model identifier if it implements
// ModelIdentifier, else empty.
func ModelID(agent Agent) string {
	if mi, ok := agent.(ModelIdentifier); ok {
		return mi.ModelID()
	}
	return ""
}

// Description returns agent's description if it implements Describer.
func Description(agent Agent) string {
	if d, ok := agent.(Describer); ok {
		return d.Description()
	}
	return ""
}

// ToolList returns agent's tool list if it implements ToolLister.
func ToolList(agent Agent) []string {
	if tl, ok := agent.(ToolLister); ok {
		return tl.Tools()
	}
	return nil
}

// Cleanup best-effort tears down agent if it implements Cleanuper.
// Absence of the capability, and any error it returns, are both
// tolerated by callers (§3: "best-effort").
func Cleanup(agent Agent) error {
	if c, ok := agent.(Cleanuper); ok {
		return c.Cleanup()
	}
	return nil
}
