package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

type ChangedFile struct {
	Path         string
	ChangedLines []int
}

var chunkHeader = regexp.MustCompile(`^@@ \-\d+(?:,\d+)? \+(\d+)(?:,(\d+))? @@`)

// GetChangedFiles runs git diff and returns a list of changed files with line numbers.
func GetChangedFiles(baseRef string) ([]ChangedFile, error) {
	cmd := exec.Command("git", "diff", "-U0", baseRef)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	return parseDiff(output)
}

// TopLevel returns the root of the working tree containing dir. git diff
// reports paths relative to this root.
func TopLevel(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Resolve joins every change path onto root.
func Resolve(changes []ChangedFile, root string) []ChangedFile {
	out := make([]ChangedFile, 0, len(changes))
	for _, c := range changes {
		c.Path = filepath.Join(root, filepath.FromSlash(c.Path))
		out = append(out, c)
	}
	return out
}

// LineIndex maps each changed path to the lines touched in the new version.
func LineIndex(changes []ChangedFile) map[string][]int {
	out := make(map[string][]int, len(changes))
	for _, c := range changes {
		out[c.Path] = append(out[c.Path], c.ChangedLines...)
	}
	return out
}

// FilterByExtension keeps changes whose path ends in one of exts.
func FilterByExtension(changes []ChangedFile, exts []string) []ChangedFile {
	var out []ChangedFile
	for _, c := range changes {
		if slices.Contains(exts, strings.ToLower(filepath.Ext(c.Path))) {
			out = append(out, c)
		}
	}
	return out
}

// Paths returns the path of every change.
func Paths(changes []ChangedFile) []string {
	out := make([]string, 0, len(changes))
	for _, c := range changes {
		out = append(out, c.Path)
	}
	return out
}

func parseDiff(output []byte) ([]ChangedFile, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	var changes []ChangedFile
	var currentFile *ChangedFile

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "diff --git") {
			// a/path/to/file b/path/to/file; keep the new path
			parts := strings.Fields(line)
			if len(parts) >= 4 {
				if currentFile != nil {
					changes = append(changes, *currentFile)
				}
				currentFile = &ChangedFile{Path: strings.TrimPrefix(parts[3], "b/"), ChangedLines: []int{}}
			}
			continue
		}

		if currentFile == nil || !strings.HasPrefix(line, "@@") {
			continue
		}

		matches := chunkHeader.FindStringSubmatch(line)
		if len(matches) < 2 {
			continue
		}
		startLine, _ := strconv.Atoi(matches[1])
		count := 1 // omitted length means one line
		if len(matches) > 2 && matches[2] != "" {
			count, _ = strconv.Atoi(matches[2])
		}
		// count == 0 is a pure deletion; nothing to record in the new file.
		for i := 0; i < count; i++ {
			currentFile.ChangedLines = append(currentFile.ChangedLines, startLine+i)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if currentFile != nil {
		changes = append(changes, *currentFile)
	}

	return changes, nil
}
