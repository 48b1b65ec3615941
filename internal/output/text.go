package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/bookbot/internal/book"
)

type textStyles struct {
	index   lipgloss.Style
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	summary lipgloss.Style
	empty   lipgloss.Style
}

// newTextStyles binds styles to w so color is dropped when w is not a terminal.
func newTextStyles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	return textStyles{
		index: r.NewStyle().
			Foreground(lipgloss.Color("110")),
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		label: r.NewStyle().
			Foreground(lipgloss.Color("247")),
		value: r.NewStyle().
			Foreground(lipgloss.Color("252")),
		summary: r.NewStyle().
			Foreground(lipgloss.Color("248")).
			PaddingLeft(4),
		empty: r.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("178")),
	}
}

func renderText(w io.Writer, records []book.Record) error {
	styles := newTextStyles(w)

	if len(records) == 0 {
		_, err := fmt.Fprintln(w, styles.empty.Render("No books found."))
		return err
	}

	blocks := make([]string, 0, len(records))
	for i, rec := range records {
		titleLine := styles.index.Render(fmt.Sprintf("%d.", i+1)) + " " + styles.title.Render(rec.Title)
		authorsLine := "    " + styles.label.Render("Authors:") + " " + styles.value.Render(rec.Authors)
		yearLine := "    " + styles.label.Render("Published:") + " " + styles.value.Render(rec.PublishedYear)

		lines := []string{titleLine, authorsLine, yearLine}
		if rec.Summary != "" {
			lines = append(lines, styles.summary.Render(truncateSummary(rec.Summary, summaryLimit)))
		}
		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	_, err := fmt.Fprintln(w, strings.Join(blocks, "\n\n"))
	return err
}

const summaryLimit = 280

// truncateSummary shortens s to at most limit runes, ending in an ellipsis.
func truncateSummary(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
