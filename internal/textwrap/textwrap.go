// Package textwrap fills text into lines of a fixed display width.
package textwrap

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultWidth is the line width used for word lists and paragraphs
const DefaultWidth = 70

// Wrap splits text on whitespace and greedily fills lines no wider than
// width display columns. Words wider than a line are broken.
func Wrap(text string, width int) []string {
	if width <= 0 {
		width = DefaultWidth
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0

	flush := func() {
		if lineWidth > 0 {
			lines = append(lines, line.String())
		}
		line.Reset()
		lineWidth = 0
	}

	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		for w > width {
			flush()
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				break
			}
			lines = append(lines, head)
			word = word[len(head):]
			w = runewidth.StringWidth(word)
		}
		if w == 0 {
			continue
		}
		switch {
		case lineWidth == 0:
		case lineWidth+1+w <= width:
			line.WriteByte(' ')
			lineWidth++
		default:
			flush()
		}
		line.WriteString(word)
		lineWidth += w
	}
	flush()
	return lines
}

// Fill wraps text and joins the lines with newlines
func Fill(text string, width int) string {
	return strings.Join(Wrap(text, width), "\n")
}
