package crawler

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// NoteFile is one notes file read from disk.
type NoteFile struct {
	Path    string
	Content string
	Hash    string // sha256 of Content, hex encoded
}

// Crawler scans a directory for notes files.
type Crawler struct {
	extensions []string
	ignored    []string
}

// NewCrawler creates a new crawler instance.
func NewCrawler(extensions, ignored []string) *Crawler {
	if len(extensions) == 0 {
		extensions = []string{".md"}
	}
	if len(ignored) == 0 {
		ignored = []string{".git", "vendor", "node_modules", "testdata"}
	}
	return &Crawler{
		extensions: extensions,
		ignored:    ignored,
	}
}

// Matches reports whether path has one of the configured extensions.
func (c *Crawler) Matches(path string) bool {
	return slices.Contains(c.extensions, strings.ToLower(filepath.Ext(path)))
}

// ScanNotes walks the root directory and streams every matching file.
// Files that cannot be read are passed to onError and the walk continues.
func (c *Crawler) ScanNotes(root string, onFile func(NoteFile), onError func(path string, err error)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			if path != root && slices.Contains(c.ignored, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !c.Matches(d.Name()) {
			return nil
		}

		nf, err := ReadNote(path)
		if err != nil {
			if onError != nil {
				onError(path, err)
			}
			return nil
		}
		onFile(nf)
		return nil
	})
}

// ReadNote loads a single file and hashes its content.
func ReadNote(path string) (NoteFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return NoteFile{}, err
	}
	return NoteFile{Path: path, Content: string(b), Hash: ContentHash(string(b))}, nil
}

func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
