package markdown_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhub/internal/platform/markdown"
)

func TestSplitFrontmatterRoundTripsThroughRender(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(map[string]any{"type": "study-index", "schema_version": 1}, "# Study time\n")
	require.NoError(t, err)

	meta, body, err := markdown.SplitFrontmatter(rendered)
	require.NoError(t, err)
	assert.Equal(t, "study-index", meta["type"])
	assert.Equal(t, 1, meta["schema_version"])
	assert.Equal(t, "\n# Study time\n", body)
}

func TestSplitFrontmatterWithoutHeader(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.SplitFrontmatter("plain text\n")
	require.NoError(t, err)
	assert.Empty(t, meta)
	assert.Equal(t, "plain text\n", body)

	_, _, err = markdown.SplitFrontmatter("---\ntype: x\nno closing line")
	require.Error(t, err)
}

func TestSplitFrontmatterAcceptsCRLF(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.SplitFrontmatter("---\r\ntype: note\r\n---\r\nbody\r\n")
	require.NoError(t, err)
	assert.Equal(t, "note", meta["type"])
	assert.Equal(t, "body\n", body)
}

func TestReplaceManagedBlockKeepsSurroundingText(t *testing.T) {
	t.Parallel()
	const start, end = "<!-- s -->", "<!-- e -->"
	body := "intro\n" + start + "\nold\n" + end + "\noutro\n"

	got := markdown.ReplaceManagedBlock(body, start, end, "new")
	assert.Equal(t, "intro\n"+start+"\nnew\n"+end+"\noutro\n", got)

	assert.Equal(t, start+"\nnew\n"+end+"\n", markdown.ReplaceManagedBlock("  \n", start, end, "new"))
	assert.Equal(t, "intro\n\n"+start+"\nnew\n"+end+"\n", markdown.ReplaceManagedBlock("intro\n", start, end, "new"))
}

func TestReplaceManagedBlockIgnoresEndMarkerBeforeStart(t *testing.T) {
	t.Parallel()
	const start, end = "<!-- s -->", "<!-- e -->"
	body := end + "\nstray\n" + start + "\nold\n" + end + "\n"

	got := markdown.ReplaceManagedBlock(body, start, end, "new")
	assert.Equal(t, end+"\nstray\n"+start+"\nnew\n"+end+"\n", got)
}

func TestWriteNoteCreatesDirectoriesAndReplaces(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "a", "b", "note.md")
	type meta struct {
		ID string `yaml:"id"`
	}

	require.NoError(t, markdown.WriteNote(path, meta{ID: "one"}, "first\n"))
	require.NoError(t, markdown.WriteNote(path, meta{ID: "two"}, "second\n"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "---\nid: two\n---\n\nsecond\n", string(raw))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}
