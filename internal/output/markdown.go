package output

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/bookbot/internal/book"
)

// MarkdownBuilder assembles a markdown document listing book records.
type MarkdownBuilder struct {
	content strings.Builder
}

// NewMarkdownBuilder creates a new markdown builder
func NewMarkdownBuilder() *MarkdownBuilder {
	return &MarkdownBuilder{}
}

// AddHeading adds a heading of the given level
func (mb *MarkdownBuilder) AddHeading(level int, text string) *MarkdownBuilder {
	if level < 1 {
		level = 1
	}
	fmt.Fprintf(&mb.content, "%s %s\n\n", strings.Repeat("#", level), text)
	return mb
}

// AddField adds a bold label with its value as a list item
func (mb *MarkdownBuilder) AddField(label, value string) *MarkdownBuilder {
	fmt.Fprintf(&mb.content, "- **%s:** %s\n", label, value)
	return mb
}

// AddParagraph adds a paragraph of text to the content
func (mb *MarkdownBuilder) AddParagraph(text string) *MarkdownBuilder {
	if text == "" {
		return mb
	}

	mb.content.WriteString(text)
	mb.content.WriteString("\n\n")
	return mb
}

// AddRecords adds one section per record. An empty list gets a short notice.
func (mb *MarkdownBuilder) AddRecords(records []book.Record) *MarkdownBuilder {
	if len(records) == 0 {
		return mb.AddParagraph("_No books found._")
	}

	for _, rec := range records {
		mb.AddHeading(2, rec.Title)
		mb.AddField("Authors", rec.Authors)
		mb.AddField("Published", rec.PublishedYear)
		mb.content.WriteString("\n")
		mb.AddParagraph(rec.Summary)
	}
	return mb
}

// Build returns the document with a single trailing newline
func (mb *MarkdownBuilder) Build() string {
	return strings.TrimRight(mb.content.String(), "\n") + "\n"
}
