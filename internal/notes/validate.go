package notes

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// IssueKind names a class of validation finding.
type IssueKind string

const (
	IssueEmptySection       IssueKind = "empty section"
	IssueDuplicateHeading   IssueKind = "duplicate heading"
	IssueTrailingWhitespace IssueKind = "trailing whitespace"
)

// AllIssueKinds lists every kind Validate can report.
var AllIssueKinds = []IssueKind{IssueEmptySection, IssueDuplicateHeading, IssueTrailingWhitespace}

// Issue is a non-fatal finding about a document's structure.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Section int       `json:"section"` // index into Document.Sections
	Heading string    `json:"heading"`
	Line    int       `json:"line,omitempty"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%d: %s: %s", i.Line, i.Kind, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Kind, i.Message)
}

type headingKey struct {
	level   int
	heading string
}

// Validate returns the issues found in doc, section by section. The
// sequence is computed on each iteration and never modifies doc.
//
// A section without blocks is empty unless the next section is nested
// below it. Two sections with the same heading at the same level are
// duplicates; the later one is reported.
func Validate(doc *Document) iter.Seq[Issue] {
	return func(yield func(Issue) bool) {
		if doc == nil {
			return
		}
		seen := make(map[headingKey]int, len(doc.Sections))

		for i, s := range doc.Sections {
			if len(s.Blocks) == 0 && (i == len(doc.Sections)-1 || doc.Sections[i+1].Level <= s.Level) {
				if !yield(Issue{
					Kind:    IssueEmptySection,
					Section: i,
					Heading: s.Heading,
					Line:    s.Line,
					Message: fmt.Sprintf("section %q has no content", s.Heading),
				}) {
					return
				}
			}

			key := headingKey{level: s.Level, heading: s.Heading}
			if first, dup := seen[key]; dup {
				if !yield(Issue{
					Kind:    IssueDuplicateHeading,
					Section: i,
					Heading: s.Heading,
					Line:    s.Line,
					Message: fmt.Sprintf("heading %q at level %d already used by section %d", s.Heading, s.Level, first),
				}) {
					return
				}
			} else {
				seen[key] = i
			}

			if hasTrailingWhitespace(s.Heading) {
				if !yield(trailing(i, s.Heading, s.Line, "heading")) {
					return
				}
			}
			for _, blk := range s.Blocks {
				for k, line := range strings.Split(blk.Text, "\n") {
					if !hasTrailingWhitespace(line) {
						continue
					}
					ln := 0
					if blk.Line > 0 {
						ln = blk.Line + k
					}
					if !yield(trailing(i, s.Heading, ln, string(blk.Kind))) {
						return
					}
				}
			}
		}
	}
}

// Issues collects Validate into a slice.
func Issues(doc *Document) []Issue {
	return slices.Collect(Validate(doc))
}

func trailing(section int, heading string, line int, where string) Issue {
	return Issue{
		Kind:    IssueTrailingWhitespace,
		Section: section,
		Heading: heading,
		Line:    line,
		Message: fmt.Sprintf("%s line ends with whitespace", strings.ReplaceAll(where, "_", " ")),
	}
}

func hasTrailingWhitespace(s string) bool {
	return strings.HasSuffix(s, " ") || strings.HasSuffix(s, "\t")
}
