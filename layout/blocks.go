package layout

import (
	"strings"

	"github.com/wudi/pdfreport/contentstream"
	"github.com/wudi/pdfreport/fonts"
)

const (
	sectionBand    = 20.0
	sectionAdvance = 28.0
	accentBar      = 6.0

	subheadSpace   = 18.0
	subheadAdvance = 16.0

	paragraphPadding = 2.0
	bulletGutter     = 10.0
	bulletPadding    = 1.0

	calloutInset   = 12.0
	calloutTitle   = 22.0
	calloutBottom  = 10.0
	calloutGap     = 10.0
	calloutSize    = 10.2
	calloutLeading = 13.0
)

// SectionTitle draws a soft band with an accent bar and a bold heading.
func (d *Document) SectionTitle(text string) {
	d.EnsureSpace(sectionAdvance)
	left, y := d.geom.Margins.Left, d.cursorY
	page := d.Page()
	page.Add(d.enc.FilledRect(d.theme.SoftFill, left, y, d.geom.ContentWidth(), sectionBand))
	page.Add(d.enc.FilledRect(d.theme.Accent, left, y, accentBar, sectionBand))
	page.Add(d.enc.Text(left+14, y+4, text, contentstream.TextStyle{
		Font: d.mustFont(fonts.Bold), Size: 13, Color: d.theme.Ink,
	}))
	d.advance(sectionAdvance)
}

// Subhead draws a single bold line in the dark accent color.
func (d *Document) Subhead(text string) {
	d.EnsureSpace(subheadSpace)
	d.Page().Add(d.enc.Text(d.geom.Margins.Left, d.cursorY, text, contentstream.TextStyle{
		Font: d.mustFont(fonts.Bold), Size: 11, Color: d.theme.AccentDark,
	}))
	d.advance(subheadAdvance)
}

// ParagraphStyle configures Paragraph. Zero numeric fields and an empty
// font fall back to DefaultParagraphStyle.
type ParagraphStyle struct {
	Font    fonts.Name
	Size    float64
	Leading float64
	Color   *contentstream.Color
}

func DefaultParagraphStyle() ParagraphStyle {
	return ParagraphStyle{Font: fonts.Regular, Size: 10.5, Leading: 14}
}

// Paragraph wraps text across the content width with the default style.
func (d *Document) Paragraph(text string) {
	style := DefaultParagraphStyle()
	d.paragraph(text, d.mustFont(style.Font), style.Size, style.Leading, d.theme.Ink)
}

// ParagraphStyled wraps and draws text. The height, line count times
// leading plus padding, is reserved before anything is drawn.
func (d *Document) ParagraphStyled(text string, style ParagraphStyle) error {
	def := DefaultParagraphStyle()
	if style.Font == "" {
		style.Font = def.Font
	}
	if style.Size <= 0 {
		style.Size = def.Size
	}
	if style.Leading <= 0 {
		style.Leading = def.Leading
	}
	color := d.theme.Ink
	if style.Color != nil {
		color = *style.Color
	}
	font, err := d.font(style.Font)
	if err != nil {
		return err
	}
	d.paragraph(text, font, style.Size, style.Leading, color)
	return nil
}

func (d *Document) paragraph(text string, font fonts.Font, size, leading float64, color contentstream.Color) {
	lines := d.wrapText(text, d.geom.ContentWidth(), size, font)
	height := float64(len(lines))*leading + paragraphPadding
	d.EnsureSpace(height)
	d.Page().Add(d.enc.TextLines(d.geom.Margins.Left, d.cursorY, lines, contentstream.TextStyle{
		Font: font, Size: size, Color: color,
	}, leading))
	d.advance(height)
}

// BulletStyle configures Bullets. Zero fields fall back to
// DefaultBulletStyle.
type BulletStyle struct {
	Size    float64
	Leading float64
	Indent  float64
	Marker  string
}

func DefaultBulletStyle() BulletStyle {
	return BulletStyle{Size: 10.2, Leading: 13.5, Indent: 12, Marker: "-"}
}

// Bullets draws a list with the default style.
func (d *Document) Bullets(items []string) {
	d.BulletsStyled(items, DefaultBulletStyle())
}

// BulletsStyled draws one marker and a wrapped text block per item. Each
// item reserves its own space, so a list may continue on the next page.
func (d *Document) BulletsStyled(items []string, style BulletStyle) {
	def := DefaultBulletStyle()
	if style.Size <= 0 {
		style.Size = def.Size
	}
	if style.Leading <= 0 {
		style.Leading = def.Leading
	}
	if style.Indent <= 0 {
		style.Indent = def.Indent
	}
	if style.Marker == "" {
		style.Marker = def.Marker
	}
	regular, bold := d.mustFont(fonts.Regular), d.mustFont(fonts.Bold)
	left := d.geom.Margins.Left
	textWidth := d.geom.ContentWidth() - style.Indent - bulletGutter

	for _, item := range items {
		lines := d.wrapText(item, textWidth, style.Size, regular)
		height := float64(len(lines))*style.Leading
		if height < style.Leading {
			height = style.Leading
		}
		height += bulletPadding
		d.EnsureSpace(height)
		page := d.Page()
		page.Add(d.enc.Text(left, d.cursorY, style.Marker, contentstream.TextStyle{
			Font: bold, Size: style.Size, Color: d.theme.AccentDark,
		}))
		page.Add(d.enc.TextLines(left+style.Indent, d.cursorY, lines, contentstream.TextStyle{
			Font: regular, Size: style.Size, Color: d.theme.Ink,
		}, style.Leading))
		d.advance(height)
	}
}

// Callout draws a filled, outlined box with a title band and wrapped body
// text. The whole box, and the gap below it, is placed on one page.
func (d *Document) Callout(title, text string) {
	regular, bold := d.mustFont(fonts.Regular), d.mustFont(fonts.Bold)
	width := d.geom.ContentWidth()
	lines := d.wrapText(text, width-2*calloutInset, calloutSize, regular)
	height := calloutTitle + float64(len(lines))*calloutLeading + calloutBottom
	d.EnsureSpace(height + calloutGap)

	left, y := d.geom.Margins.Left, d.cursorY
	page := d.Page()
	page.Add(d.enc.FilledRect(d.theme.SoftFill, left, y, width, height))
	page.Add(d.enc.OutlinedRect(d.theme.Accent, 1, left, y, width, height))
	page.Add(d.enc.Text(left+calloutInset, y+8, title, contentstream.TextStyle{
		Font: bold, Size: 11, Color: d.theme.AccentDark,
	}))
	page.Add(d.enc.TextLines(left+calloutInset, y+24, lines, contentstream.TextStyle{
		Font: regular, Size: calloutSize, Color: d.theme.Ink,
	}, calloutLeading))
	d.advance(height + calloutGap)
}

// Cover describes the title block of a report's first page.
type Cover struct {
	Lines     []string // title, one entry per line
	Tagline   string
	Generated string
}

const (
	coverBand    = 210.0
	coverContent = 236.0
)

// Cover draws the title band on a fresh page and moves the cursor below
// it. When the current page already holds blocks, a new page is started.
func (d *Document) Cover(c Cover) {
	if !d.fresh {
		d.NewPage()
	}
	regular, bold := d.mustFont(fonts.Regular), d.mustFont(fonts.Bold)
	left := d.geom.Margins.Left + 22
	page := d.Page()
	page.Add(d.enc.FilledRect(d.theme.SoftFill, 0, 0, d.geom.PageWidth, coverBand))
	page.Add(d.enc.FilledRect(d.theme.Accent, d.geom.Margins.Left, 86, 8, 88))
	page.Add(d.enc.TextLines(left, 94, c.Lines, contentstream.TextStyle{
		Font: bold, Size: 21, Color: d.theme.Ink,
	}, 25))
	if c.Tagline != "" {
		page.Add(d.enc.Text(left, 144, c.Tagline, contentstream.TextStyle{
			Font: regular, Size: 12, Color: d.theme.Muted,
		}))
	}
	if c.Generated != "" {
		page.Add(d.enc.Text(left, 166, c.Generated, contentstream.TextStyle{
			Font: regular, Size: 11, Color: d.theme.AccentDark,
		}))
	}
	d.cursorY = coverContent
	d.fresh = false
}

// CodeStyle configures Code.
type CodeStyle struct {
	Size    float64
	Leading float64
}

func DefaultCodeStyle() CodeStyle {
	return CodeStyle{Size: 9, Leading: 11.5}
}

// Code draws preformatted text in the monospace font. Each source line is
// wrapped on its own and keeps its indentation. Unlike a paragraph, a
// code block is split across pages when it does not fit.
func (d *Document) Code(text string) error {
	return d.CodeStyled(text, DefaultCodeStyle())
}

func (d *Document) CodeStyled(text string, style CodeStyle) error {
	def := DefaultCodeStyle()
	if style.Size <= 0 {
		style.Size = def.Size
	}
	if style.Leading <= 0 {
		style.Leading = def.Leading
	}
	mono, err := d.font(fonts.Mono)
	if err != nil {
		return err
	}
	width := d.geom.ContentWidth()
	var lines []string
	for _, src := range strings.Split(text, "\n") {
		src = strings.ReplaceAll(strings.TrimRight(src, " \t\r"), "\t", "    ")
		body := strings.TrimLeft(src, " ")
		indent := src[:len(src)-len(body)]
		for _, l := range d.wrapText(body, width-d.est.Measure(indent, style.Size, mono), style.Size, mono) {
			lines = append(lines, indent+l)
		}
	}

	ts := contentstream.TextStyle{Font: mono, Size: style.Size, Color: d.theme.Ink}
	for len(lines) > 0 {
		room := int((d.geom.ContentBottom() - d.cursorY - paragraphPadding) / style.Leading)
		if room < 1 {
			if !d.fresh {
				d.NewPage()
				continue
			}
			room = 1
		}
		if room > len(lines) {
			room = len(lines)
		}
		chunk := lines[:room]
		lines = lines[room:]
		d.Page().Add(d.enc.TextLines(d.geom.Margins.Left, d.cursorY, chunk, ts, style.Leading))
		d.advance(float64(len(chunk))*style.Leading + paragraphPadding)
	}
	return nil
}

// PageBreak moves the flow to a new page unless the current one is still
// empty.
func (d *Document) PageBreak() {
	if !d.fresh {
		d.NewPage()
	}
}
