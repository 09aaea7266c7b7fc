package notes

// BlockKind tags the variant held by a Block.
type BlockKind string

const (
	Paragraph BlockKind = "paragraph"
	ListItem  BlockKind = "list_item"
)

// Block is a unit of content within a section.
type Block struct {
	Kind   BlockKind `json:"kind"`
	Text   string    `json:"text"`   // paragraph lines are joined with "\n"
	Bullet bool      `json:"bullet"` // true for list items
	Line   int       `json:"line,omitempty"`
}

// NewParagraph returns a paragraph block.
func NewParagraph(text string) Block {
	return Block{Kind: Paragraph, Text: text}
}

// NewListItem returns a bulleted list item block.
func NewListItem(text string) Block {
	return Block{Kind: ListItem, Text: text, Bullet: true}
}

// Section is a heading plus the blocks that follow it until the next heading.
type Section struct {
	Heading string  `json:"heading"`
	Level   int     `json:"level"` // 1 for #, 2 for ##, etc.
	Blocks  []Block `json:"blocks"`
	Line    int     `json:"line,omitempty"`
}

// Document is one parsed lecture-notes file. It is not modified after Parse.
type Document struct {
	Sections []Section `json:"sections"`
}

// Title returns the heading of the first section.
func (d *Document) Title() string {
	if d == nil || len(d.Sections) == 0 {
		return ""
	}
	return d.Sections[0].Heading
}

// BlockCount returns the number of blocks across all sections.
func (d *Document) BlockCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Blocks)
	}
	return n
}

// Equal reports whether a and b have the same sections and blocks.
// Source line numbers are ignored.
func Equal(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Sections) != len(b.Sections) {
		return false
	}
	for i := range a.Sections {
		sa, sb := a.Sections[i], b.Sections[i]
		if sa.Heading != sb.Heading || sa.Level != sb.Level || len(sa.Blocks) != len(sb.Blocks) {
			return false
		}
		for j := range sa.Blocks {
			ba, bb := sa.Blocks[j], sb.Blocks[j]
			if ba.Kind != bb.Kind || ba.Text != bb.Text || ba.Bullet != bb.Bullet {
				return false
			}
		}
	}
	return true
}
