package tokens

import "strings"

// ModelInfo describes a priced entry in the model catalog.
type ModelInfo struct {
	ID                   string
	DisplayName          string
	InputCostPerMillion  *float64
	OutputCostPerMillion *float64
	Aliases              []string
}

func floatPtr(v float64) *float64 { return &v }

// Models is the built-in pricing catalog, covering the models named in
// the source: Claude Sonnet/Haiku/Opus, Amazon Nova, and Llama 3.3.
var Models = []ModelInfo{
	{
		ID: "claude-opus-4", DisplayName: "Claude Opus 4",
		InputCostPerMillion: floatPtr(15.0), OutputCostPerMillion: floatPtr(75.0),
		Aliases: []string{"claude-opus", "opus"},
	},
	{
		ID: "claude-sonnet-4-5", DisplayName: "Claude Sonnet 4.5",
		InputCostPerMillion: floatPtr(3.0), OutputCostPerMillion: floatPtr(15.0),
		Aliases: []string{"claude-sonnet", "sonnet"},
	},
	{
		ID: "claude-haiku-3-5", DisplayName: "Claude Haiku 3.5",
		InputCostPerMillion: floatPtr(0.80), OutputCostPerMillion: floatPtr(4.0),
		Aliases: []string{"claude-haiku", "haiku"},
	},
	{
		ID: "us.amazon.nova-pro-v1:0", DisplayName: "Amazon Nova Pro",
		InputCostPerMillion: floatPtr(0.80), OutputCostPerMillion: floatPtr(3.20),
		Aliases: []string{"nova-pro"},
	},
	{
		ID: "us.amazon.nova-lite-v1:0", DisplayName: "Amazon Nova Lite",
		InputCostPerMillion: floatPtr(0.06), OutputCostPerMillion: floatPtr(0.24),
		Aliases: []string{"nova-lite"},
	},
	{
		ID: "us.meta.llama3-3-70b-instruct-v1:0", DisplayName: "Llama 3.3 70B",
		InputCostPerMillion: floatPtr(0.72), OutputCostPerMillion: floatPtr(0.72),
		Aliases: []string{"llama3-3-70b", "llama-3.3-70b"},
	},
}

// GetModelInfo matches modelID against a catalog entry's ID or any of
// its aliases via substring containment, either direction, so that a
// caller-supplied model identifier like "anthropic.claude-sonnet-4-5-v1:0"
// still matches the catalog's "claude-sonnet-4-5" entry.
func GetModelInfo(modelID string) *ModelInfo {
	if modelID == "" {
		return nil
	}
	for i := range Models {
		if substringMatch(modelID, Models[i].ID) {
			return &Models[i]
		}
		for _, alias := range Models[i].Aliases {
			if substringMatch(modelID, alias) {
				return &Models[i]
			}
		}
	}
	return nil
}

func substringMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	a, b = strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}
