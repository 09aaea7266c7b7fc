package lint

import (
	"slices"

	"notelint/internal/notes"
)

// FileResult is the outcome of linting one notes file.
type FileResult struct {
	Path       string        `json:"path"`
	Hash       string        `json:"hash"`
	Title      string        `json:"title,omitempty"`
	Sections   int           `json:"sections"`
	Blocks     int           `json:"blocks"`
	ReadError  string        `json:"read_error,omitempty"`
	ParseError string        `json:"parse_error,omitempty"`
	ErrorLine  int           `json:"error_line,omitempty"`
	Issues     []notes.Issue `json:"issues"`
}

// Malformed reports whether the file failed to parse.
func (r FileResult) Malformed() bool {
	return r.ParseError != ""
}

// Unreadable reports whether the file could not be read.
func (r FileResult) Unreadable() bool {
	return r.ReadError != ""
}

type Summary struct {
	Files      int            `json:"files"`
	Unreadable int            `json:"unreadable"`
	Malformed  int            `json:"malformed"`
	Issues     int            `json:"issues"`
	ByKind     map[string]int `json:"by_kind"`
}

// Report aggregates the results of one lint run.
type Report struct {
	Root        string       `json:"root"`
	GeneratedAt string       `json:"generated_at"`
	Disabled    []string     `json:"disabled,omitempty"` // issue kinds filtered out of Files, sorted
	Files       []FileResult `json:"files"`
	Summary     Summary      `json:"summary"`
}

// HasFindings reports whether any file is unreadable, malformed or has issues.
func (r *Report) HasFindings() bool {
	return r.Summary.Unreadable > 0 || r.Summary.Malformed > 0 || r.Summary.Issues > 0
}

// ByPath indexes the report's file results.
func (r *Report) ByPath() map[string]FileResult {
	if r == nil {
		return map[string]FileResult{}
	}
	out := make(map[string]FileResult, len(r.Files))
	for _, f := range r.Files {
		out[f.Path] = f
	}
	return out
}

// RestrictToLines keeps only the issues that sit on one of the given lines
// of their file. Files missing from changed, issues without a line, and
// read or parse failures are left as they are.
func (r *Report) RestrictToLines(changed map[string][]int) {
	for i := range r.Files {
		lines, ok := changed[r.Files[i].Path]
		if !ok {
			continue
		}
		kept := []notes.Issue{}
		for _, is := range r.Files[i].Issues {
			if is.Line == 0 || slices.Contains(lines, is.Line) {
				kept = append(kept, is)
			}
		}
		r.Files[i].Issues = kept
	}
	r.Summary = Summarize(r.Files)
}
