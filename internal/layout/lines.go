package layout

import (
	"strings"
	"unicode/utf8"
)

// EstimateLines counts wrapped lines for text at a fixed line width.
// Each source line wraps independently. Empty text still occupies one line.
func EstimateLines(text string, charsPerLine int) int {
	if charsPerLine <= 0 {
		charsPerLine = DefaultConfig().CharsPerLine
	}
	if text == "" {
		return 1
	}
	total := 0
	for _, line := range strings.Split(text, "\n") {
		n := utf8.RuneCountInString(line)
		if n == 0 {
			total++
			continue
		}
		total += (n + charsPerLine - 1) / charsPerLine
	}
	return total
}

func countLines(text string) int {
	if text == "" {
		return 1
	}
	return strings.Count(text, "\n") + 1
}
