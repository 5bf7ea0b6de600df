package tableview

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// fit truncates s to width display cells and pads it on the right.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\t", " ")
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// wrapLines breaks s into at most limit lines of width display cells. The
// last kept line is truncated when text remains.
func wrapLines(s string, width, limit int) []string {
	if width <= 0 || limit <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		wrapped := runewidth.Wrap(para, width)
		lines = append(lines, strings.Split(wrapped, "\n")...)
	}
	if len(lines) > limit {
		last := strings.Join(lines[limit-1:], " ")
		lines = append(lines[:limit-1], last)
	}
	return lines
}

// lineCount returns how many wrapped lines s needs at width.
func lineCount(s string, width int) int {
	if width <= 0 {
		return 1
	}
	n := 0
	for _, para := range strings.Split(s, "\n") {
		n += strings.Count(runewidth.Wrap(para, width), "\n") + 1
	}
	return n
}

// truncate shortens a single-line message, adding an ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || runewidth.StringWidth(value) <= limit {
		return value
	}
	return runewidth.Truncate(value, limit, "…")
}
