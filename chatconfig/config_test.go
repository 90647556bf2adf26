package chatconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsOnly(t *testing.T) {
	r := NewResolver()
	cfg, err := r.Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.GetInt("behavior.max_retries", -1, ""))
	assert.Equal(t, "bright white", cfg.GetString("colors.user", "", ""))
	assert.False(t, cfg.GetBool("ui.show_status_bar", true, ""))
}

func TestExplicitPathMissingIsFatal(t *testing.T) {
	r := NewResolver()
	_, err := r.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
	var cerr *ConfigError
	assert.ErrorAs(t, err, &cerr)
}

func TestLayerPrecedence(t *testing.T) {
	// Explicit layer overrides defaults for a base key.
	dir := t.TempDir()
	explicit := filepath.Join(dir, "explicit.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("behavior:\n  max_retries: 9\n"), 0o644))

	r := NewResolver()
	cfg, err := r.Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.GetInt("behavior.max_retries", -1, ""))
	// Untouched defaults remain.
	assert.Equal(t, 120.0, cfg.GetFloat("behavior.timeout", -1, ""))
}

func TestPerAgentOverride(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "explicit.yaml")
	content := "behavior:\n  timeout: 120\nagents:\n  Product Pete:\n    behavior:\n      timeout: 5\n"
	require.NoError(t, os.WriteFile(explicit, []byte(content), 0o644))

	r := NewResolver()
	cfg, err := r.Load(explicit)
	require.NoError(t, err)

	assert.Equal(t, 5.0, cfg.GetFloat("behavior.timeout", -1, "Product Pete"))
	assert.Equal(t, 120.0, cfg.GetFloat("behavior.timeout", -1, "Some Other Agent"))
}

func TestDeepMergeReplacesListsWholesale(t *testing.T) {
	dst := map[string]interface{}{
		"a": map[string]interface{}{"list": []interface{}{1, 2, 3}, "keep": "yes"},
	}
	src := map[string]interface{}{
		"a": map[string]interface{}{"list": []interface{}{9}},
	}
	deepMergeInto(dst, src)

	a := dst["a"].(map[string]interface{})
	assert.Equal(t, []interface{}{9}, a["list"])
	assert.Equal(t, "yes", a["keep"])
}

func TestMalformedLayerSkippedNotFatal(t *testing.T) {
	dir := t.TempDir()
	home := dir
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".chatrc"), []byte("not: [valid: yaml"), 0o644))

	var warned bool
	r := &Resolver{Warnf: func(format string, args ...interface{}) { warned = true }}
	cfg, err := r.Load("")
	require.NoError(t, err)
	assert.True(t, warned)
	// Falls back to defaults.
	assert.Equal(t, 3, cfg.GetInt("behavior.max_retries", -1, ""))
}

func TestSetDoesNotPersist(t *testing.T) {
	r := NewResolver()
	cfg, err := r.Load("")
	require.NoError(t, err)
	cfg.Set("behavior.max_retries", 100, "")
	assert.Equal(t, 100, cfg.GetInt("behavior.max_retries", -1, ""))

	cfg2, err := r.Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg2.GetInt("behavior.max_retries", -1, ""))
}
