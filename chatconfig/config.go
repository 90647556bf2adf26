package chatconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Origin identifies where a ConfigLayer's content came from.
type Origin int

const (
	OriginDefaults Origin = iota
	OriginGlobal
	OriginProject
	OriginExplicit
)

func (o Origin) String() string {
	switch o {
	case OriginDefaults:
		return "defaults"
	case OriginGlobal:
		return "global"
	case OriginProject:
		return "project"
	case OriginExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Layer is one source of configuration values, in precedence order.
type Layer struct {
	Origin Origin
	Path   string
	Base   map[string]interface{}
	Agents map[string]map[string]interface{}
}

// EffectiveConfig is the deep-merged view consumed at runtime.
type EffectiveConfig struct {
	base   map[string]interface{}
	agents map[string]map[string]interface{}
}

// Resolver loads and merges ConfigLayers.
type Resolver struct {
	// Warnf, when set, receives non-fatal warnings about optional layers
	// with invalid syntax. Defaults to a no-op. Type-mismatched keys are
	// not reported here; the typed getters fall back to their default.
	Warnf func(format string, args ...interface{})
}

// NewResolver returns a Resolver with a no-op warning sink.
func NewResolver() *Resolver {
	return &Resolver{Warnf: func(string, ...interface{}) {}}
}

func (r *Resolver) warn(format string, args ...interface{}) {
	if r.Warnf != nil {
		r.Warnf(format, args...)
	}
}

// Load discovers and merges all layers in precedence order. explicitPath,
// if non-empty, is a fatal startup error when it cannot be read; every
// other layer is optional and silently skipped when absent.
func (r *Resolver) Load(explicitPath string) (*EffectiveConfig, error) {
	layers := []Layer{{Origin: OriginDefaults, Base: defaultConfig()}}

	if home, err := os.UserHomeDir(); err == nil {
		if l, ok := r.loadFileLayer(OriginGlobal, filepath.Join(home, ".chatrc")); ok {
			layers = append(layers, l)
		}
	}

	if path, ok := r.findProjectFile(); ok {
		if l, ok := r.loadFileLayer(OriginProject, path); ok {
			layers = append(layers, l)
		}
	}

	if explicitPath != "" {
		raw, err := os.ReadFile(explicitPath)
		if err != nil {
			return nil, &ConfigError{Message: fmt.Sprintf("cannot read explicit config %q", explicitPath), Cause: err}
		}
		l, err := parseLayer(OriginExplicit, explicitPath, raw)
		if err != nil {
			return nil, &ConfigError{Message: fmt.Sprintf("malformed explicit config %q", explicitPath), Cause: err}
		}
		layers = append(layers, l)
	}

	return merge(layers), nil
}

// findProjectFile walks up at most three parent directories looking for
// .chatrc, returning the first one found.
func (r *Resolver) findProjectFile() (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	dir := cwd
	for i := 0; i < 4; i++ {
		candidate := filepath.Join(dir, ".chatrc")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}

// loadFileLayer reads and parses an optional layer, returning ok=false
// when the file is absent (not an error) or when parsing fails (logged
// and skipped, per §4.1: "a syntactically invalid layer is reported and
// skipped; subsequent layers still apply").
func (r *Resolver) loadFileLayer(origin Origin, path string) (Layer, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Layer{}, false
	}
	layer, err := parseLayer(origin, path, raw)
	if err != nil {
		r.warn("skipping invalid config layer %q: %v", path, err)
		return Layer{}, false
	}
	return layer, true
}

func parseLayer(origin Origin, path string, raw []byte) (Layer, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Layer{}, err
	}
	layer := Layer{Origin: origin, Path: path, Base: map[string]interface{}{}, Agents: map[string]map[string]interface{}{}}
	for k, v := range doc {
		if k == "agents" {
			if agentsMap, ok := v.(map[string]interface{}); ok {
				for agentName, overrides := range agentsMap {
					if om, ok := overrides.(map[string]interface{}); ok {
						layer.Agents[agentName] = om
					}
				}
			}
			continue
		}
		layer.Base[k] = v
	}
	return layer, nil
}

// merge folds layers lowest-to-highest precedence; within each layer,
// base sections apply before that layer's per-agent overrides. A key a
// layer sets in its base sections drops any override of that key from
// lower layers, so Get's agent-first lookup still honours §4.1's
// equivalent-precedence-order note.
func merge(layers []Layer) *EffectiveConfig {
	result := &EffectiveConfig{base: map[string]interface{}{}, agents: map[string]map[string]interface{}{}}
	var prune func(dst, src map[string]interface{})
	prune = func(dst, src map[string]interface{}) {
		for k, v := range src {
			srcMap, srcIsMap := v.(map[string]interface{})
			dstMap, dstIsMap := dst[k].(map[string]interface{})
			if srcIsMap && dstIsMap {
				prune(dstMap, srcMap)
			} else {
				delete(dst, k)
			}
		}
	}
	for _, l := range layers {
		deepMergeInto(result.base, l.Base)
		for _, overrides := range result.agents {
			prune(overrides, l.Base)
		}
		for agentName, overrides := range l.Agents {
			if result.agents[agentName] == nil {
				result.agents[agentName] = map[string]interface{}{}
			}
			deepMergeInto(result.agents[agentName], overrides)
		}
	}
	return result
}

// deepMergeInto merges src into dst in place: mappings merge key-by-key
// recursively, scalars and lists are replaced wholesale.
func deepMergeInto(dst, src map[string]interface{}) {
	for k, v := range src {
		if srcMap, ok := v.(map[string]interface{}); ok {
			if dstMap, ok := dst[k].(map[string]interface{}); ok {
				deepMergeInto(dstMap, srcMap)
				continue
			}
			merged := map[string]interface{}{}
			deepMergeInto(merged, srcMap)
			dst[k] = merged
			continue
		}
		dst[k] = v
	}
}

// Get returns the merged value at dottedKey, consulting the per-agent
// override (if agentName is non-empty and an override exists) before
// the base value, falling back to def when neither defines it.
func (c *EffectiveConfig) Get(dottedKey string, def interface{}, agentName string) interface{} {
	if agentName != "" {
		if overrides, ok := c.agents[agentName]; ok {
			if v, ok := lookup(overrides, dottedKey); ok {
				return v
			}
		}
	}
	if v, ok := lookup(c.base, dottedKey); ok {
		return v
	}
	return def
}

// Set updates the in-memory representation only; it is never persisted.
func (c *EffectiveConfig) Set(dottedKey string, value interface{}, agentName string) {
	target := c.base
	if agentName != "" {
		if c.agents[agentName] == nil {
			c.agents[agentName] = map[string]interface{}{}
		}
		target = c.agents[agentName]
	}
	setDotted(target, dottedKey, value)
}

func lookup(m map[string]interface{}, dottedKey string) (interface{}, bool) {
	parts := strings.Split(dottedKey, ".")
	var cur interface{} = m
	for _, p := range parts {
		cm, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		v, ok := cm[p]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

func setDotted(m map[string]interface{}, dottedKey string, value interface{}) {
	parts := strings.Split(dottedKey, ".")
	cur := m
	for i, p := range parts {
		if i == len(parts)-1 {
			cur[p] = value
			return
		}
		next, ok := cur[p].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			cur[p] = next
		}
		cur = next
	}
}

// GetString looks up a string value, expanding ~ and $VAR when
// dottedKey falls under the paths section, and falling back to def on
// a type mismatch without aborting the session. The mismatch is not
// logged.
func (c *EffectiveConfig) GetString(dottedKey string, def string, agentName string) string {
	v := c.Get(dottedKey, def, agentName)
	s, ok := v.(string)
	if !ok {
		return def
	}
	if strings.HasPrefix(dottedKey, "paths.") {
		return expandPath(s)
	}
	return s
}

func (c *EffectiveConfig) GetBool(dottedKey string, def bool, agentName string) bool {
	v := c.Get(dottedKey, def, agentName)
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

func (c *EffectiveConfig) GetInt(dottedKey string, def int, agentName string) int {
	v := c.Get(dottedKey, def, agentName)
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return def
	}
}

func (c *EffectiveConfig) GetFloat(dottedKey string, def float64, agentName string) float64 {
	v := c.Get(dottedKey, def, agentName)
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
		return def
	default:
		return def
	}
}

func expandPath(s string) string {
	if strings.HasPrefix(s, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			s = home + strings.TrimPrefix(s, "~")
		}
	}
	return os.Expand(s, func(name string) string {
		return os.Getenv(name)
	})
}

// ConfigError marks configuration-category failures (§7): unreadable
// explicit path, or a malformed explicit layer.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error { return e.Cause }
