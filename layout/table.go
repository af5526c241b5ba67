package layout

import (
	"fmt"
	"math"

	"github.com/wudi/pdfreport/contentstream"
	"github.com/wudi/pdfreport/fonts"
)

const (
	cellInset        = 4.0
	cellPadding      = 8.0
	headerLeadingAdd = 1.8
	headerLineWidth  = 0.5
	bodyLineWidth    = 0.45
)

// TableSpec is the content of one table. Every row must have as many
// cells as Headers, and Widths must sum to the content width.
type TableSpec struct {
	Headers []string
	Rows    [][]string
	Widths  []float64
}

// TableStyle configures fonts and spacing. Zero sizes and empty font names
// take the DefaultTableStyle values; RepeatHeader is used as given.
type TableStyle struct {
	BodyFont     fonts.Name
	BodySize     float64
	BodyLeading  float64
	HeaderFont   fonts.Name
	HeaderSize   float64
	RepeatHeader bool
}

func DefaultTableStyle() TableStyle {
	return TableStyle{
		BodyFont:     fonts.Regular,
		BodySize:     8,
		BodyLeading:  10.5,
		HeaderFont:   fonts.Bold,
		HeaderSize:   8.4,
		RepeatHeader: true,
	}
}

func (s TableStyle) withDefaults() TableStyle {
	def := DefaultTableStyle()
	if s.BodyFont == "" {
		s.BodyFont = def.BodyFont
	}
	if s.BodySize <= 0 {
		s.BodySize = def.BodySize
	}
	if s.BodyLeading <= 0 {
		s.BodyLeading = def.BodyLeading
	}
	if s.HeaderFont == "" {
		s.HeaderFont = def.HeaderFont
	}
	if s.HeaderSize <= 0 {
		s.HeaderSize = def.HeaderSize
	}
	return s
}

// wrappedRow holds the wrapped lines of each cell and the row height.
type wrappedRow struct {
	cells  [][]string
	height float64
}

// Table draws the header and then each row, checking for a page break
// before every row. After a break the header is drawn again when
// style.RepeatHeader is set. Shape, widths and fonts are checked before
// anything is emitted.
func (d *Document) Table(spec TableSpec, style TableStyle) error {
	style = style.withDefaults()
	if err := d.checkTable(spec); err != nil {
		return err
	}
	bodyFont, err := d.font(style.BodyFont)
	if err != nil {
		return err
	}
	headerFont, err := d.font(style.HeaderFont)
	if err != nil {
		return err
	}

	headerLeading := style.HeaderSize + headerLeadingAdd
	header := d.wrapRow(spec.Headers, spec.Widths, style.HeaderSize, headerLeading, headerFont)
	rows := make([]wrappedRow, len(spec.Rows))
	for i, cells := range spec.Rows {
		rows[i] = d.wrapRow(cells, spec.Widths, style.BodySize, style.BodyLeading, bodyFont)
	}

	// Keep the header with the first row.
	first := header.height
	if len(rows) > 0 {
		first += rows[0].height
	}
	headerStyle := contentstream.TextStyle{Font: headerFont, Size: style.HeaderSize, Color: d.theme.AccentDark}
	d.EnsureSpace(first)
	d.drawHeader(header, spec.Widths, headerStyle, headerLeading)

	body := contentstream.TextStyle{Font: bodyFont, Size: style.BodySize, Color: d.theme.Ink}
	for _, row := range rows {
		if d.EnsureSpace(row.height) && style.RepeatHeader {
			d.drawHeader(header, spec.Widths, headerStyle, headerLeading)
		}
		d.drawRow(row, spec.Widths, body, style.BodyLeading)
	}
	return nil
}

func (d *Document) checkTable(spec TableSpec) error {
	cols := len(spec.Headers)
	if cols == 0 {
		return fmt.Errorf("%w: no columns", ErrTableShape)
	}
	if len(spec.Widths) != cols {
		return fmt.Errorf("%w: %d widths for %d columns", ErrTableShape, len(spec.Widths), cols)
	}
	for i, row := range spec.Rows {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrTableShape, i, len(row), cols)
		}
	}
	sum := 0.0
	for i, w := range spec.Widths {
		if w <= 0 {
			return fmt.Errorf("%w: column %d has width %v", ErrTableWidths, i, w)
		}
		sum += w
	}
	if cw := d.geom.ContentWidth(); math.Abs(sum-cw) > widthTolerance {
		return fmt.Errorf("%w: sum %v, content width %v", ErrTableWidths, sum, cw)
	}
	return nil
}

func (d *Document) wrapRow(cells []string, widths []float64, size, leading float64, font fonts.Font) wrappedRow {
	row := wrappedRow{cells: make([][]string, len(cells))}
	most := 1
	for i, cell := range cells {
		row.cells[i] = d.wrapText(cell, widths[i]-2*cellInset, size, font)
		if n := len(row.cells[i]); n > most {
			most = n
		}
	}
	row.height = float64(most)*leading + cellPadding
	return row
}

func (d *Document) drawHeader(row wrappedRow, widths []float64, style contentstream.TextStyle, leading float64) {
	page := d.Page()
	x, y := d.geom.Margins.Left, d.cursorY
	for i, lines := range row.cells {
		page.Add(d.enc.FilledRect(d.theme.SoftFill, x, y, widths[i], row.height))
		page.Add(d.enc.OutlinedRect(d.theme.Rule, headerLineWidth, x, y, widths[i], row.height))
		page.Add(d.enc.TextLines(x+cellInset, y+cellInset, lines, style, leading))
		x += widths[i]
	}
	d.advance(row.height)
}

func (d *Document) drawRow(row wrappedRow, widths []float64, style contentstream.TextStyle, leading float64) {
	page := d.Page()
	x, y := d.geom.Margins.Left, d.cursorY
	for i, lines := range row.cells {
		page.Add(d.enc.OutlinedRect(d.theme.Rule, bodyLineWidth, x, y, widths[i], row.height))
		page.Add(d.enc.TextLines(x+cellInset, y+cellInset, lines, style, leading))
		x += widths[i]
	}
	d.advance(row.height)
}
