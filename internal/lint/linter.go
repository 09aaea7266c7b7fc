package lint

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sort"
	"time"

	"notelint/internal/config"
	"notelint/internal/crawler"
	"notelint/internal/notes"
)

// Linter parses and validates notes files. Each file is linted as an
// independent document.
type Linter struct {
	crawler  *crawler.Crawler
	disabled map[notes.IssueKind]bool
	kinds    []string // sorted keys of disabled
	previous map[string]FileResult
	now      func() time.Time
}

func NewLinter(cfg *config.Config) *Linter {
	if cfg == nil {
		cfg = config.Default()
	}
	disabled := make(map[notes.IssueKind]bool, len(cfg.Lint.Disabled))
	kinds := []string{}
	for _, k := range cfg.Lint.Disabled {
		if !disabled[notes.IssueKind(k)] {
			kinds = append(kinds, k)
		}
		disabled[notes.IssueKind(k)] = true
	}
	sort.Strings(kinds)
	return &Linter{
		crawler:  crawler.NewCrawler(cfg.Notes.Extensions, cfg.Notes.Ignored),
		disabled: disabled,
		kinds:    kinds,
		now:      time.Now,
	}
}

// Reuse lets the linter skip files whose content hash matches a result in
// prev. prev is ignored when it was produced with a different set of
// disabled issue kinds, since its stored issues were filtered by that set.
func (l *Linter) Reuse(prev *Report) {
	if prev == nil || !slices.Equal(prev.Disabled, l.kinds) {
		l.previous = nil
		return
	}
	l.previous = prev.ByPath()
}

// LintFile parses and validates a single file's content.
func (l *Linter) LintFile(nf crawler.NoteFile) FileResult {
	if old, ok := l.previous[nf.Path]; ok && !old.Unreadable() && old.Hash == nf.Hash {
		return old
	}

	res := FileResult{Path: nf.Path, Hash: nf.Hash, Issues: []notes.Issue{}}
	doc, err := notes.Parse(nf.Content)
	if err != nil {
		res.ParseError = err.Error()
		var me *notes.MalformedError
		if errors.As(err, &me) {
			res.ErrorLine = me.Line
		}
		return res
	}

	res.Title = doc.Title()
	res.Sections = len(doc.Sections)
	res.Blocks = doc.BlockCount()
	res.Issues = l.filter(notes.Validate(doc))
	return res
}

func (l *Linter) filter(seq iter.Seq[notes.Issue]) []notes.Issue {
	out := []notes.Issue{}
	for is := range seq {
		if l.disabled[is.Kind] {
			continue
		}
		out = append(out, is)
	}
	return out
}

// LintTree lints every notes file below root.
func (l *Linter) LintTree(root string) (*Report, error) {
	var results []FileResult
	err := l.crawler.ScanNotes(root, func(nf crawler.NoteFile) {
		results = append(results, l.LintFile(nf))
	}, func(path string, err error) {
		results = append(results, unreadable(path, err))
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return l.build(root, results), nil
}

// LintFiles lints the given paths. Paths that do not match the configured
// extensions are skipped.
func (l *Linter) LintFiles(paths []string) *Report {
	var results []FileResult
	for _, p := range paths {
		if !l.crawler.Matches(p) {
			continue
		}
		nf, err := crawler.ReadNote(p)
		if err != nil {
			results = append(results, unreadable(p, err))
			continue
		}
		results = append(results, l.LintFile(nf))
	}
	return l.build("", results)
}

func unreadable(path string, err error) FileResult {
	return FileResult{Path: path, ReadError: err.Error(), Issues: []notes.Issue{}}
}

func (l *Linter) build(root string, results []FileResult) *Report {
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	if results == nil {
		results = []FileResult{}
	}

	r := &Report{
		Root:        root,
		GeneratedAt: l.now().UTC().Format(time.RFC3339),
		Disabled:    l.kinds,
		Files:       results,
	}
	r.Summary = Summarize(results)
	return r
}

// Summarize counts files, parse failures and issues per kind.
func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results), ByKind: map[string]int{}}
	for _, f := range results {
		if f.Unreadable() {
			s.Unreadable++
		}
		if f.Malformed() {
			s.Malformed++
		}
		for _, is := range f.Issues {
			s.Issues++
			s.ByKind[string(is.Kind)]++
		}
	}
	return s
}
