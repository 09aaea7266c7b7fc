package notes

import (
	"bufio"
	"strings"
)

const maxHeadingLevel = 6

// Parse builds a Document from markdown-like text in a single pass.
// Headings (# through ######) open sections, lines starting with a bullet
// marker become list items, and runs of other non-blank lines become
// paragraphs. Content before the first heading and heading-level skips are
// rejected with a *MalformedError.
func Parse(text string) (*Document, error) {
	doc := &Document{}

	var para []string
	paraLine := 0
	flush := func() {
		if len(para) == 0 {
			return
		}
		last := &doc.Sections[len(doc.Sections)-1]
		blk := NewParagraph(strings.Join(para, "\n"))
		blk.Line = paraLine
		last.Blocks = append(last.Blocks, blk)
		para = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), len(text)+1)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		// ScanLines drops only one trailing "\r".
		raw := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(raw) == "" {
			flush()
			continue
		}
		line := strings.TrimLeft(raw, " \t")

		if level, heading, ok := parseHeading(line); ok {
			flush()
			if n := len(doc.Sections); n > 0 {
				prev := doc.Sections[n-1].Level
				if level > prev+1 {
					return nil, malformed(lineNo, "heading level %d follows level %d", level, prev)
				}
			}
			doc.Sections = append(doc.Sections, Section{Heading: heading, Level: level, Line: lineNo})
			continue
		}

		if len(doc.Sections) == 0 {
			return nil, malformed(lineNo, "content before the first heading")
		}

		if item, ok := parseListItem(line); ok {
			flush()
			blk := NewListItem(item)
			blk.Line = lineNo
			last := &doc.Sections[len(doc.Sections)-1]
			last.Blocks = append(last.Blocks, blk)
			continue
		}

		if len(para) == 0 {
			paraLine = lineNo
		}
		para = append(para, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(doc.Sections) == 0 {
		return nil, malformed(0, "no heading found")
	}
	flush()

	return doc, nil
}

// parseHeading recognizes "#".."######" followed by a space, a tab or the
// end of the line.
func parseHeading(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeadingLevel {
		return 0, "", false
	}
	rest := line[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false
	}
	return level, strings.TrimLeft(rest, " \t"), true
}

func parseListItem(line string) (string, bool) {
	switch line {
	case "-", "*", "+":
		return "", true
	}
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(line, marker) {
			return line[len(marker):], true
		}
	}
	return "", false
}
