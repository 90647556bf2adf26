package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strands-chat/chatloop/chatsession"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "product-pete", Slug("Product Pete"))
	assert.Equal(t, "foo-bar-baz", Slug("Foo!! Bar_Baz"))
}

func TestFileName(t *testing.T) {
	start := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-05_14-30-00_product-pete.md", FileName(start, "Product Pete"))
}

func TestExportWritesMetadataAndTranscript(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)

	realSnap := chatsession.Snapshot{
		QueryCount: 1,
		Transcript: []chatsession.TranscriptEntry{
			{Role: "user", Text: "hello", Timestamp: start},
			{Role: "agent", Text: "hi", Timestamp: start},
		},
	}

	path, err := Export(dir, "Product Pete", "claude-sonnet-4-5", start, end, realSnap)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2026-03-05_14-30-00_product-pete.md"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(content)
	assert.Contains(t, body, "# Product Pete")
	assert.Contains(t, body, "## User")
	assert.Contains(t, body, "hello")
	assert.Contains(t, body, "## Agent")
	assert.Contains(t, body, "hi")
}

func TestExportCreatesSaveDirIfAbsent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "conversations")
	start := time.Now()
	_, err := Export(dir, "Bot", "model", start, start, chatsession.Snapshot{})
	require.NoError(t, err)
	_, err = os.Stat(dir)
	require.NoError(t, err)
}
