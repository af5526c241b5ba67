package layout

import (
	"strings"

	"github.com/wudi/pdfreport/fonts"
)

// Wrapper breaks text into lines using estimated glyph widths.
type Wrapper struct {
	est *fonts.Estimator
}

func NewWrapper(est *fonts.Estimator) *Wrapper {
	return &Wrapper{est: est}
}

// Wrap collapses whitespace runs and greedily fills lines no wider than
// width. A word wider than width on its own is split at character
// boundaries; in that case a piece may still exceed width when a single
// character does. The result always has at least one line.
func (w *Wrapper) Wrap(text string, width, size float64, font fonts.Font) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		if current != "" {
			if w.est.Measure(current+" "+word, size, font) <= width {
				current += " " + word
				continue
			}
		}
		if w.est.Measure(word, size, font) > width {
			pieces := w.splitToken(word, width, size, font)
			if current != "" {
				lines = append(lines, current)
			}
			lines = append(lines, pieces[:len(pieces)-1]...)
			current = pieces[len(pieces)-1]
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// splitToken cuts token into the longest prefixes that fit width. Every
// piece holds at least one character, so nothing is dropped.
func (w *Wrapper) splitToken(token string, width, size float64, font fonts.Font) []string {
	var pieces []string
	current := ""
	for _, r := range token {
		candidate := current + string(r)
		if current != "" && w.est.Measure(candidate, size, font) > width {
			pieces = append(pieces, current)
			current = string(r)
			continue
		}
		current = candidate
	}
	if current != "" {
		pieces = append(pieces, current)
	}
	if len(pieces) == 0 {
		return []string{token}
	}
	return pieces
}
