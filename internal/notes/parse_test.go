package notes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TitleAndListSection(t *testing.T) {
	doc, err := Parse("# Title\n\n## Section\n- item one\n- item two\n")
	require.NoError(t, err)
	require.Len(t, doc.Sections, 2)

	assert.Equal(t, "Title", doc.Sections[0].Heading)
	assert.Equal(t, 1, doc.Sections[0].Level)
	assert.Empty(t, doc.Sections[0].Blocks)

	sec := doc.Sections[1]
	assert.Equal(t, "Section", sec.Heading)
	assert.Equal(t, 2, sec.Level)
	require.Len(t, sec.Blocks, 2)
	assert.Equal(t, ListItem, sec.Blocks[0].Kind)
	assert.True(t, sec.Blocks[0].Bullet)
	assert.Equal(t, "item one", sec.Blocks[0].Text)
	assert.Equal(t, "item two", sec.Blocks[1].Text)
	assert.Equal(t, 4, sec.Blocks[0].Line)
}

func TestParse_ParagraphsJoinUntilBlankLine(t *testing.T) {
	text := "# Traits\nA trait is a set of methods\nshared by many types.\n\nSecond paragraph.\n* starred\n+ plussed\n"
	doc, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)

	blocks := doc.Sections[0].Blocks
	require.Len(t, blocks, 4)
	assert.Equal(t, NewParagraph("A trait is a set of methods\nshared by many types."), Block{Kind: blocks[0].Kind, Text: blocks[0].Text})
	assert.Equal(t, 2, blocks[0].Line)
	assert.Equal(t, Paragraph, blocks[1].Kind)
	assert.Equal(t, "Second paragraph.", blocks[1].Text)
	assert.Equal(t, "starred", blocks[2].Text)
	assert.Equal(t, "plussed", blocks[3].Text)
	assert.False(t, blocks[1].Bullet)
}

func TestParse_HeadingForms(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		heading string
		level   int
		blocks  int
	}{
		{name: "tab separator", input: "#\tTabbed\n", heading: "Tabbed", level: 1},
		{name: "bare marker", input: "#\n", heading: "", level: 1},
		{name: "indented", input: "   # Indented\n", heading: "Indented", level: 1},
		{name: "no space is paragraph", input: "# T\n#hashtag\n", heading: "T", level: 1, blocks: 1},
		{name: "seven hashes is paragraph", input: "# T\n####### deep\n", heading: "T", level: 1, blocks: 1},
		{name: "crlf", input: "# Windows\r\ntext\r\n", heading: "Windows", level: 1, blocks: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.input)
			require.NoError(t, err)
			require.Len(t, doc.Sections, 1)
			assert.Equal(t, tt.heading, doc.Sections[0].Heading)
			assert.Equal(t, tt.level, doc.Sections[0].Level)
			assert.Len(t, doc.Sections[0].Blocks, tt.blocks)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{name: "heading level skip", input: "# Title\n### Too deep\n", line: 2},
		{name: "content before heading", input: "intro\n# Title\n", line: 1},
		{name: "list before heading", input: "\n- item\n# Title\n", line: 2},
		{name: "empty input", input: "", line: 0},
		{name: "blank input", input: "\n  \n\t\n", line: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, ErrMalformed))

			var me *MalformedError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, tt.line, me.Line)
		})
	}
}

func TestParse_LevelsMayDecreaseFreely(t *testing.T) {
	doc, err := Parse("# A\n## B\n### C\n# D\n## E\n")
	require.NoError(t, err)
	require.Len(t, doc.Sections, 5)
	assert.Equal(t, "D", doc.Sections[3].Heading)
	assert.Equal(t, 1, doc.Sections[3].Level)
}

func TestParse_SameInputSameError(t *testing.T) {
	_, err1 := Parse("# A\n### C\n")
	_, err2 := Parse("# A\n### C\n")
	require.Error(t, err1)
	assert.Equal(t, err1.Error(), err2.Error())
}

func TestDocument_TitleAndCounts(t *testing.T) {
	doc, err := Parse("# Generics\n\n## Functions\n- one\n- two\n\ntext\n")
	require.NoError(t, err)
	assert.Equal(t, "Generics", doc.Title())
	assert.Equal(t, 3, doc.BlockCount())

	var empty *Document
	assert.Equal(t, "", empty.Title())
}
