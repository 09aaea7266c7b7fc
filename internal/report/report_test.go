package report

import (
	"os"
	"path/filepath"
	"testing"

	"notelint/internal/crawler"
	"notelint/internal/lint"
	"notelint/internal/notes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *lint.Report {
	files := []lint.FileResult{
		{
			Path:     "lectures/traits.md",
			Hash:     crawler.ContentHash("# Traits\n## Quiz\n"),
			Title:    "Traits",
			Sections: 2,
			Issues: []notes.Issue{{
				Kind:    notes.IssueEmptySection,
				Section: 1,
				Heading: "Quiz",
				Line:    2,
				Message: `section "Quiz" has no content`,
			}},
		},
		{
			Path:       "lectures/bad.md",
			Hash:       crawler.ContentHash("intro\n"),
			ParseError: "malformed document: line 1: content before the first heading",
			ErrorLine:  1,
			Issues:     []notes.Issue{},
		},
		{
			Path:      "lectures/locked.md",
			ReadError: "open lectures/locked.md: permission denied",
			Issues:    []notes.Issue{},
		},
	}
	return &lint.Report{
		Root:        "lectures",
		GeneratedAt: "2024-01-30T09:00:00Z",
		Disabled:    []string{"trailing whitespace"},
		Files:       files,
		Summary:     lint.Summarize(files),
	}
}

func TestSaveReport_LoadReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")
	r := sampleReport()
	require.NoError(t, SaveReport(path, r))

	loaded, err := LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, r, loaded)
}

func TestSaveReport_ValidatesAgainstJSONSchema(t *testing.T) {
	r := sampleReport()
	r.Files[0].Issues[0].Kind = "not-a-valid-kind"

	path := filepath.Join(t.TempDir(), "report.json")
	err := SaveReport(path, r)
	require.Error(t, err)
	require.Contains(t, err.Error(), "schema validation")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestValidate_RejectsBadHash(t *testing.T) {
	r := sampleReport()
	r.Files[1].Hash = "xyz"
	assert.Error(t, Validate(r))
	assert.Error(t, Validate(nil))
}

func TestValidate_RejectsUnknownDisabledKind(t *testing.T) {
	r := sampleReport()
	r.Disabled = []string{"spelling"}
	assert.Error(t, Validate(r))
}
