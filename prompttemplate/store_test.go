package prompttemplate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializeWithPlaceholder(t *testing.T) {
	got := Materialize("Review this:\n{input}", "code X")
	assert.Equal(t, "Review this:\ncode X", got)
}

func TestMaterializeWithMultiplePlaceholders(t *testing.T) {
	got := Materialize("{input} and {input}", "X")
	assert.Equal(t, "X and X", got)
}

func TestMaterializeNoPlaceholderWithContext(t *testing.T) {
	got := Materialize("Summarize.", "the attached log")
	assert.Equal(t, "Summarize.\n\nthe attached log", got)
}

func TestMaterializeNoPlaceholderNoContext(t *testing.T) {
	got := Materialize("Summarize.", "")
	assert.Equal(t, "Summarize.", got)
}

func TestLoadMissingTemplate(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	_, err := s.Load("nope")
	require.Error(t, err)
	var nfe *NotFoundError
	assert.ErrorAs(t, err, &nfe)
}

func TestListAlphabeticalOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zeta.md"), []byte("Zeta body"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.md"), []byte("Alpha body"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("not a template"), 0o644))

	s := &Store{Dir: dir}
	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Equal(t, "zeta", list[1].Name)
}

func TestDescriptionFirstNonEmptyLine(t *testing.T) {
	body := "\n\nReview this:\n{input}\n"
	assert.Equal(t, "Review this:", Description(body, 80))
}

func TestDescriptionTruncated(t *testing.T) {
	body := "this is a very long first line that exceeds the width"
	got := Description(body, 10)
	assert.Equal(t, 10, len([]rune(got)))
}

func TestListOnMissingDirIsEmptyNotError(t *testing.T) {
	s := &Store{Dir: filepath.Join(t.TempDir(), "does-not-exist")}
	list, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}
