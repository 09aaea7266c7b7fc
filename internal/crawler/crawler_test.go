package crawler

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCrawler_ScanNotes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "traits.md"), "# Traits\n")
	writeFile(t, filepath.Join(root, "unit2", "generics.MD"), "# Generics\n")
	writeFile(t, filepath.Join(root, "unit2", "code.rs"), "fn main() {}\n")
	writeFile(t, filepath.Join(root, "vendor", "skip.md"), "# Skip\n")
	writeFile(t, filepath.Join(root, ".git", "skip.md"), "# Skip\n")

	c := NewCrawler(nil, nil)
	var found []string
	err := c.ScanNotes(root, func(nf NoteFile) {
		rel, _ := filepath.Rel(root, nf.Path)
		found = append(found, filepath.ToSlash(rel))
		assert.Equal(t, ContentHash(nf.Content), nf.Hash)
	}, nil)
	require.NoError(t, err)

	sort.Strings(found)
	assert.Equal(t, []string{"traits.md", "unit2/generics.MD"}, found)
}

func TestCrawler_CustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.markdown"), "# A\n")
	writeFile(t, filepath.Join(root, "b.md"), "# B\n")

	c := NewCrawler([]string{".markdown"}, nil)
	assert.True(t, c.Matches("x/a.markdown"))
	assert.False(t, c.Matches("b.md"))

	n := 0
	require.NoError(t, c.ScanNotes(root, func(NoteFile) { n++ }, nil))
	assert.Equal(t, 1, n)
}

func TestCrawler_MissingRoot(t *testing.T) {
	c := NewCrawler(nil, nil)
	err := c.ScanNotes(filepath.Join(t.TempDir(), "nope"), func(NoteFile) {}, nil)
	assert.Error(t, err)
}

func TestContentHash_Stable(t *testing.T) {
	assert.Equal(t, ContentHash("# A\n"), ContentHash("# A\n"))
	assert.NotEqual(t, ContentHash("# A\n"), ContentHash("# B\n"))
	assert.Len(t, ContentHash(""), 64)
}
