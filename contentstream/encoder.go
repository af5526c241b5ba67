// Package contentstream encodes drawing and text primitives as content
// stream operators and collects them into per-page buffers.
//
// Callers position everything in a top-left-origin system (y grows
// downwards); the encoder flips to the bottom-left origin of the file
// format when it emits coordinates.
package contentstream

import (
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/wudi/pdfreport/fonts"
	"github.com/wudi/pdfreport/ir/raw"
)

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

func (c Color) String() string {
	return Number(c.R) + " " + Number(c.G) + " " + Number(c.B)
}

// Fill returns the non-stroking color operator, with a trailing space so
// it can prefix a painting operator.
func (c Color) Fill() string { return c.String() + " rg " }

// Stroke returns the stroking color operator.
func (c Color) Stroke() string { return c.String() + " RG " }

// TextStyle selects font, size and fill color for a text run.
type TextStyle struct {
	Font  fonts.Font
	Size  float64
	Color Color
}

// Number formats a coordinate or size with fixed precision.
func Number(f float64) string { return raw.FormatNumber(f) }

// Escape prefixes backslashes and parentheses with a backslash.
func Escape(text string) string { return string(raw.EscapeLiteral([]byte(text))) }

// Encoder emits operators for a page of the given height.
type Encoder struct {
	pageHeight float64
}

func NewEncoder(pageHeight float64) *Encoder {
	return &Encoder{pageHeight: pageHeight}
}

// PageHeight returns the height used for the coordinate flip.
func (e *Encoder) PageHeight() float64 { return e.pageHeight }

// FillRect paints the rectangle whose top-left corner is (x, y).
func (e *Encoder) FillRect(x, y, width, height float64) string {
	return e.rect(x, y, width, height) + " re f\n"
}

// StrokeRect outlines the rectangle whose top-left corner is (x, y).
func (e *Encoder) StrokeRect(x, y, width, height float64) string {
	return e.rect(x, y, width, height) + " re S\n"
}

// FilledRect sets the fill color and paints a rectangle.
func (e *Encoder) FilledRect(c Color, x, y, width, height float64) string {
	return c.Fill() + e.FillRect(x, y, width, height)
}

// OutlinedRect sets stroke color and line width and outlines a rectangle.
func (e *Encoder) OutlinedRect(c Color, lineWidth, x, y, width, height float64) string {
	return c.Stroke() + Number(lineWidth) + " w " + e.StrokeRect(x, y, width, height)
}

// Line strokes a straight segment.
func (e *Encoder) Line(x1, y1, x2, y2 float64) string {
	return Number(x1) + " " + Number(e.pageHeight-y1) + " m " +
		Number(x2) + " " + Number(e.pageHeight-y2) + " l S\n"
}

// Rule sets stroke color and width and strokes a line.
func (e *Encoder) Rule(c Color, lineWidth, x1, y1, x2, y2 float64) string {
	return c.Stroke() + Number(lineWidth) + " w " + e.Line(x1, y1, x2, y2)
}

// Text emits a single run whose top edge sits at y.
func (e *Encoder) Text(x, y float64, text string, style TextStyle) string {
	baseline := e.pageHeight - y - style.Size
	return "BT " + style.Color.Fill() + "/" + style.Font.Resource + " " + Number(style.Size) + " Tf " +
		"1 0 0 1 " + Number(x) + " " + Number(baseline) + " Tm " +
		"(" + Literal(text) + ") Tj ET"
}

// TextLines emits a text block that sets the leading once and advances
// with T* between lines. An empty slice is drawn as one empty line.
func (e *Encoder) TextLines(x, y float64, lines []string, style TextStyle, leading float64) string {
	if len(lines) == 0 {
		lines = []string{""}
	}
	baseline := e.pageHeight - y - style.Size
	parts := make([]string, 0, 6+2*len(lines))
	parts = append(parts,
		"BT",
		style.Color.String()+" rg",
		"/"+style.Font.Resource+" "+Number(style.Size)+" Tf",
		Number(leading)+" TL",
		"1 0 0 1 "+Number(x)+" "+Number(baseline)+" Tm",
		"("+Literal(lines[0])+") Tj",
	)
	for _, line := range lines[1:] {
		parts = append(parts, "T*", "("+Literal(line)+") Tj")
	}
	parts = append(parts, "ET")
	return strings.Join(parts, " ")
}

func (e *Encoder) rect(x, y, width, height float64) string {
	bottom := e.pageHeight - y - height
	return Number(x) + " " + Number(bottom) + " " + Number(width) + " " + Number(height)
}

// Literal encodes text for a (...) string operand: runes are mapped to
// WinAnsi bytes ('?' when a rune has no mapping) and then escaped.
func Literal(text string) string {
	return Escape(WinAnsi(text))
}

// WinAnsi maps text to Windows-1252 bytes, matching /WinAnsiEncoding on
// the standard fonts.
func WinAnsi(text string) string {
	ascii := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = '?'
		}
		b.WriteByte(c)
	}
	return b.String()
}
