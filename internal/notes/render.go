package notes

import "strings"

// Render serializes doc into the text form read by Parse. Sections are
// separated by a blank line, list items are written as "- text" on
// consecutive lines, and paragraphs are set apart from their neighbours by
// a blank line. The output ends with a single newline.
func Render(doc *Document) string {
	if doc == nil || len(doc.Sections) == 0 {
		return ""
	}

	var b strings.Builder
	for i, s := range doc.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat("#", s.Level))
		if s.Heading != "" {
			b.WriteString(" ")
			b.WriteString(s.Heading)
		}
		b.WriteString("\n")

		for j, blk := range s.Blocks {
			if j > 0 && (blk.Kind == Paragraph || s.Blocks[j-1].Kind == Paragraph) {
				b.WriteString("\n")
			}
			writeBlock(&b, blk)
		}
	}
	return b.String()
}

func writeBlock(b *strings.Builder, blk Block) {
	switch blk.Kind {
	case ListItem:
		b.WriteString("-")
		if blk.Text != "" {
			b.WriteString(" ")
			b.WriteString(blk.Text)
		}
		b.WriteString("\n")
	default:
		b.WriteString(blk.Text)
		b.WriteString("\n")
	}
}
