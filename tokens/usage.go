package tokens

// Usage is a tuple of token counters plus the cost derived from them.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	Cost         float64
	// CostKnown is false when the model isn't in the pricing catalog;
	// display code suppresses the cost field in that case.
	CostKnown bool
	// CycleCount is the agent's reported step/cycle count for the turn
	// (§4.6: "cycle count (if present)"). CycleKnown is false when the
	// Response carried no such metric; display code suppresses the
	// field in that case.
	CycleCount int
	CycleKnown bool
}

// Add returns the element-wise sum of two Usage values. Cycle counts
// accumulate like tokens; CycleKnown is sticky once any turn reports one.
func (u Usage) Add(other Usage) Usage {
	return Usage{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
		TotalTokens:  u.TotalTokens + other.TotalTokens,
		Cost:         u.Cost + other.Cost,
		CostKnown:    u.CostKnown || other.CostKnown,
		CycleCount:   u.CycleCount + other.CycleCount,
		CycleKnown:   u.CycleKnown || other.CycleKnown,
	}
}

// counters is the shape shared by every extraction strategy in
// Extract: three well-known keyed counters plus the optional cycle count.
type counters struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	CycleCount   int
	CycleKnown   bool
}

func (c counters) normalized() counters {
	if c.TotalTokens == 0 && (c.InputTokens != 0 || c.OutputTokens != 0) {
		c.TotalTokens = c.InputTokens + c.OutputTokens
	}
	return c
}

// usageShape is implemented by a Response whose usage lives behind a
// dedicated accessor (extraction strategy 1: "a usage attribute
// containing keyed counters").
type usageShape interface {
	UsageCounters() (input, output, total, cycleCount int, cycleKnown, ok bool)
}

// topLevelShape is implemented by a Response exposing the counters
// directly (extraction strategy 2: "top-level keyed counters on the
// Response itself").
type topLevelShape interface {
	TopLevelCounters() (input, output, total, cycleCount int, cycleKnown, ok bool)
}

// metricsShape is implemented by a Response whose counters live behind
// a metrics accessor (extraction strategy 3 — the original's
// `result.metrics.cycle_count` lives here).
type metricsShape interface {
	MetricsCounters() (input, output, total, cycleCount int, cycleKnown, ok bool)
}

// Extract inspects raw (typically a Response.Raw value) for one of the
// three well-known usage shapes, in order, taking the first match; if
// none match, counters are treated as unknown (zeros).
func Extract(raw interface{}, modelID string) Usage {
	var c counters
	switch v := raw.(type) {
	case usageShape:
		if i, o, tot, cycles, cycleKnown, ok := v.UsageCounters(); ok {
			c = counters{InputTokens: i, OutputTokens: o, TotalTokens: tot, CycleCount: cycles, CycleKnown: cycleKnown}
		}
	case topLevelShape:
		if i, o, tot, cycles, cycleKnown, ok := v.TopLevelCounters(); ok {
			c = counters{InputTokens: i, OutputTokens: o, TotalTokens: tot, CycleCount: cycles, CycleKnown: cycleKnown}
		}
	case metricsShape:
		if i, o, tot, cycles, cycleKnown, ok := v.MetricsCounters(); ok {
			c = counters{InputTokens: i, OutputTokens: o, TotalTokens: tot, CycleCount: cycles, CycleKnown: cycleKnown}
		}
	case map[string]interface{}:
		c = extractFromMap(v)
	}
	c = c.normalized()

	usage := Usage{
		InputTokens:  c.InputTokens,
		OutputTokens: c.OutputTokens,
		TotalTokens:  c.TotalTokens,
		CycleCount:   c.CycleCount,
		CycleKnown:   c.CycleKnown,
	}
	if info := GetModelInfo(modelID); info != nil && (info.InputCostPerMillion != nil || info.OutputCostPerMillion != nil) {
		usage.Cost = cost(usage, info)
		usage.CostKnown = true
	}
	return usage
}

// extractFromMap supports stub/test agents that hand back a plain map
// instead of implementing one of the typed shapes, trying the same
// three key families in the same order. cycle_count is probed
// alongside whichever key family matched, falling back to the
// top-level map, mirroring the original's metrics.cycle_count sitting
// beside (not inside) the usage counters.
func extractFromMap(m map[string]interface{}) counters {
	if nested, ok := m["usage"].(map[string]interface{}); ok {
		c := countersFromMap(nested)
		c.CycleCount, c.CycleKnown = cycleCountFromMap(m)
		return c
	}
	if c := countersFromMap(m); c != (counters{}) {
		c.CycleCount, c.CycleKnown = cycleCountFromMap(m)
		return c
	}
	if nested, ok := m["metrics"].(map[string]interface{}); ok {
		c := countersFromMap(nested)
		c.CycleCount, c.CycleKnown = cycleCountFromMap(nested)
		if !c.CycleKnown {
			c.CycleCount, c.CycleKnown = cycleCountFromMap(m)
		}
		return c
	}
	return counters{}
}

func countersFromMap(m map[string]interface{}) counters {
	return counters{
		InputTokens:  intFromMap(m, "input_tokens"),
		OutputTokens: intFromMap(m, "output_tokens"),
		TotalTokens:  intFromMap(m, "total_tokens"),
	}
}

// cycleCountFromMap reports the cycle_count key if present, distinguishing
// "absent" from "present and zero".
func cycleCountFromMap(m map[string]interface{}) (int, bool) {
	v, ok := m["cycle_count"]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func intFromMap(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func cost(u Usage, info *ModelInfo) float64 {
	var total float64
	if info.InputCostPerMillion != nil {
		total += float64(u.InputTokens) / 1_000_000 * *info.InputCostPerMillion
	}
	if info.OutputCostPerMillion != nil {
		total += float64(u.OutputTokens) / 1_000_000 * *info.OutputCostPerMillion
	}
	return total
}
