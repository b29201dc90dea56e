package terminal

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/mrlokans/plotpoint/internal/entities"
)

// Boxes are BoxWidth display columns wide with ContentWidth columns between
// the borders and their one-column padding.
const (
	ContentWidth = 44
	BoxWidth     = ContentWidth + 4
)

var (
	topBorder    = "┌" + strings.Repeat("─", BoxWidth-2) + "┐"
	midBorder    = "├" + strings.Repeat("─", BoxWidth-2) + "┤"
	bottomBorder = "└" + strings.Repeat("─", BoxWidth-2) + "┘"
)

// Top, Separator and Bottom return the horizontal borders of a box.
func Top() string       { return topBorder }
func Separator() string { return midBorder }
func Bottom() string    { return bottomBorder }

// Row renders text as one box line, padded or truncated to ContentWidth
// display columns.
func Row(text string) string {
	if runewidth.StringWidth(text) > ContentWidth {
		text = runewidth.Truncate(text, ContentWidth, "…")
	}
	return "│ " + runewidth.FillRight(text, ContentWidth) + " │"
}

// Rowf is Row with fmt.Sprintf formatting.
func Rowf(format string, args ...any) string {
	return Row(fmt.Sprintf(format, args...))
}

// Center pads text on both sides to fill ContentWidth.
func Center(text string) string {
	width := runewidth.StringWidth(text)
	if width >= ContentWidth {
		return Row(text)
	}
	left := (ContentWidth - width) / 2
	return Row(strings.Repeat(" ", left) + text)
}

// Title renders a closed box holding a centred heading.
func Title(text string) []string {
	return []string{Top(), Center(text), Bottom()}
}

// Wrap breaks text into lines of at most width display columns, splitting on
// whitespace. A word wider than width is split across lines.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0

	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}

	for _, word := range strings.Fields(text) {
		for runewidth.StringWidth(word) > width {
			if lineWidth > 0 {
				flush()
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				// width is narrower than the first rune
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			line.WriteString(head)
			lineWidth = runewidth.StringWidth(head)
			flush()
			word = word[len(head):]
		}
		if word == "" {
			continue
		}

		wordWidth := runewidth.StringWidth(word)
		if lineWidth > 0 && lineWidth+1+wordWidth > width {
			flush()
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += wordWidth
	}

	if lineWidth > 0 {
		flush()
	}
	return lines
}

// WrappedRows wraps text to ContentWidth and renders each piece as a Row.
func WrappedRows(text string) []string {
	var rows []string
	for _, line := range Wrap(text, ContentWidth) {
		rows = append(rows, Row(line))
	}
	return rows
}

// Menu renders a numbered option box. Options are numbered from 1; the exit
// label, when not empty, is shown last as option 0.
func Menu(title string, options []string, exitLabel string) []string {
	return append([]string{Top(), Center(title), Separator()}, Options(options, exitLabel)...)
}

// Options renders numbered option rows followed by the exit row and the
// bottom border.
func Options(options []string, exitLabel string) []string {
	lines := make([]string, 0, len(options)+3)
	for i, option := range options {
		lines = append(lines, Rowf("[%d] %s", i+1, option))
	}
	if exitLabel != "" {
		lines = append(lines, Separator(), Row("[0] "+exitLabel))
	}
	return append(lines, Bottom())
}

// Extend reopens a closed box and continues it below a separator.
func Extend(box []string, more ...string) []string {
	if len(box) == 0 {
		return more
	}
	lines := make([]string, 0, len(box)+len(more))
	lines = append(lines, box[:len(box)-1]...)
	lines = append(lines, Separator())
	return append(lines, more...)
}

// BookCard renders the full description of a book.
func BookCard(d entities.BookDetails) []string {
	lines := []string{
		Top(),
		Center(d.Title),
		Separator(),
		Row("Author: " + d.Author),
		Row("Published Date: " + d.PublicationDate),
		Rowf("Page Count: %d", d.PageCount),
		Rowf("Overall Rating: %.2f (%d reviews)", d.AverageRating, d.ReviewCount),
	}
	lines = append(lines, WrappedRows("Genres: "+strings.Join(d.Genres, ", "))...)
	if len(d.Moods) > 0 {
		lines = append(lines, WrappedRows("Moods: "+strings.Join(d.Moods, ", "))...)
	}
	lines = append(lines, Separator(), Row("Synopsis:"))
	lines = append(lines, WrappedRows(d.Synopsis)...)
	return append(lines, Bottom())
}

// ReviewBlock renders one review with its author, rating and date.
func ReviewBlock(v entities.ReviewView) []string {
	lines := []string{
		Top(),
		Row("Username: " + v.Username),
		Rowf("Date: %s", v.Date.Format("2006-01-02")),
		Separator(),
	}
	text := fmt.Sprintf("Rating & Review: %d/%d - %s", v.Rating, entities.MaxRating, v.ReviewText)
	lines = append(lines, WrappedRows(text)...)
	return append(lines, Bottom())
}

// Print writes lines to w, one per line.
func Print(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
