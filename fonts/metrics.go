package fonts

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// WidthTable holds per-character weights, in em units, used to estimate
// the advance of proportional text. It is a heuristic, not font metrics.
type WidthTable struct {
	Space   float64
	Narrow  float64
	Wide    float64
	Upper   float64
	Digit   float64
	Default float64

	// NarrowChars and WideChars are checked before the upper-case and
	// digit classes.
	NarrowChars string
	WideChars   string

	// MonoAdvance is the fixed advance of every character in a
	// monospace font.
	MonoAdvance float64
}

// DefaultWidthTable approximates Helvetica and Courier.
func DefaultWidthTable() WidthTable {
	return WidthTable{
		Space:       0.28,
		Narrow:      0.25,
		Wide:        0.86,
		Upper:       0.68,
		Digit:       0.56,
		Default:     0.53,
		NarrowChars: "ilI.,:;!'|",
		WideChars:   "mwMW@%#&Q",
		MonoAdvance: 0.6,
	}
}

// Estimator measures strings with a WidthTable.
type Estimator struct {
	table WidthTable
}

func NewEstimator(table WidthTable) *Estimator {
	return &Estimator{table: table}
}

// Measure returns the estimated width of text at size points in font.
func (e *Estimator) Measure(text string, size float64, font Font) float64 {
	if font.Monospace {
		return float64(utf8.RuneCountInString(text)) * size * e.table.MonoAdvance
	}
	total := 0.0
	for _, r := range text {
		total += e.weight(r)
	}
	return total * size
}

func (e *Estimator) weight(r rune) float64 {
	switch {
	case r == ' ':
		return e.table.Space
	case strings.ContainsRune(e.table.NarrowChars, r):
		return e.table.Narrow
	case strings.ContainsRune(e.table.WideChars, r):
		return e.table.Wide
	case unicode.IsUpper(r):
		return e.table.Upper
	case unicode.IsDigit(r):
		return e.table.Digit
	default:
		return e.table.Default
	}
}
