package chatconfig

// defaultConfig returns the built-in defaults layer, lowest precedence.
// Values and keys mirror the recognized section.key table.
func defaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"colors": map[string]interface{}{
			"user":    "bright white",
			"agent":   "bright blue",
			"system":  "yellow",
			"error":   "bright red",
			"success": "bright green",
			"dim":     "dim",
			"reset":   "reset",
		},
		"features": map[string]interface{}{
			"auto_save":         false,
			"rich_enabled":      true,
			"show_tokens":       false,
			"show_metadata":     true,
			"readline_enabled":  true,
		},
		"paths": map[string]interface{}{
			"save_location": "~/agent-conversations",
			"log_location":  ".logs",
		},
		"behavior": map[string]interface{}{
			"max_retries":   3,
			"retry_delay":   2.0,
			"timeout":       120.0,
			"spinner_style": "dots",
		},
		"ui": map[string]interface{}{
			"show_banner":            true,
			"show_thinking_indicator": true,
			"show_duration":          true,
			"show_status_bar":        false,
		},
	}
}
