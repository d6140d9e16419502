package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapLines word-wraps every line of s to the given display width. Lines
// that already fit pass through untouched, so pre-sized content like plots
// is safe to run through it.
func wrapLines(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	runes := []rune(line)
	var wrapped []string
	current := make([]rune, 0, len(runes))
	currentWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		r := runes[i]
		if r == ' ' && len(current) == 0 {
			i++
			continue
		}
		w := runewidth.RuneWidth(r)
		if currentWidth+w > width && len(current) > 0 {
			if r == ' ' {
				wrapped = append(wrapped, string(current))
				current = current[:0]
				currentWidth = 0
				lastSpaceIdx = -1
				i++
				continue
			}
			if lastSpaceIdx >= 0 {
				wrapped = append(wrapped, string(current[:lastSpaceIdx]))
				current = append([]rune{}, current[lastSpaceIdx+1:]...)
			} else {
				wrapped = append(wrapped, string(current))
				current = current[:0]
			}
			currentWidth = runesWidth(current)
			lastSpaceIdx = lastSpaceIndex(current)
			continue
		}
		current = append(current, r)
		currentWidth += w
		if r == ' ' {
			lastSpaceIdx = len(current) - 1
		}
		i++
	}
	wrapped = append(wrapped, string(current))
	return wrapped
}

func runesWidth(runes []rune) int {
	total := 0
	for _, r := range runes {
		total += runewidth.RuneWidth(r)
	}
	return total
}

func lastSpaceIndex(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
