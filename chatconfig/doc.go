// Package chatconfig resolves the layered configuration consumed by the
// chat loop: built-in defaults, a global file, the nearest project
// file, and an optional explicit file, deep-merged in that precedence
// order with per-agent overrides applied last within each layer.
//
// # Architecture
//
//   - Layer: one parsed YAML document plus its origin (default, global,
//     project, explicit), merged lowest-precedence first.
//   - Resolver: locates and loads each layer, tolerating a malformed
//     optional layer by skipping it and warning rather than failing.
//   - EffectiveConfig: the merged result; Get/GetString/GetBool/GetInt/
//     GetFloat resolve a dotted key, preferring an agents.<name> override
//     over the layer's base section.
//
// # Quick Start
//
//	resolver := chatconfig.NewResolver()
//	resolver.Warnf = log.Printf
//	cfg, err := resolver.Load(explicitPath) // explicitPath may be ""
//	if err != nil {
//	    log.Fatal(err)
//	}
//	timeout := cfg.GetFloat("behavior.timeout", 120.0, agentName)
package chatconfig
