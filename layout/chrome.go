package layout

import (
	"fmt"

	"github.com/wudi/pdfreport/contentstream"
	"github.com/wudi/pdfreport/fonts"
)

// Chrome is the running header and footer text applied by Decorate.
type Chrome struct {
	Title      string
	Subtitle   string
	FooterNote string
}

// Decorate appends header and footer operators to every page once the
// flow is complete, since the footer counter needs the final page count.
// The first page gets a plain band instead of the running header.
func (d *Document) Decorate(c Chrome) error {
	if d.decorated {
		return ErrDecorated
	}
	regular, bold := d.mustFont(fonts.Regular), d.mustFont(fonts.Bold)
	g := d.geom
	left, right := g.Margins.Left, g.PageWidth-g.Margins.Right
	footerRule := g.PageHeight - g.Margins.Bottom - g.FooterHeight + 4
	footerText := g.PageHeight - g.Margins.Bottom - 12
	muted := func(f fonts.Font, size float64) contentstream.TextStyle {
		return contentstream.TextStyle{Font: f, Size: size, Color: d.theme.Muted}
	}

	total := len(d.pages)
	for i, page := range d.pages {
		if i == 0 {
			page.Add(d.enc.FilledRect(d.theme.SoftFill, 0, 0, g.PageWidth, g.Margins.Top+12))
		} else {
			ruleY := g.Margins.Top + g.HeaderHeight - 6
			page.Extend(
				d.enc.Rule(d.theme.Rule, 0.5, left, ruleY, right, ruleY),
				d.enc.Text(left, g.Margins.Top+4, c.Title, muted(bold, 10)),
				d.enc.Text(right-110, g.Margins.Top+4, c.Subtitle, muted(regular, 8.5)),
			)
		}
		page.Extend(
			d.enc.Rule(d.theme.Rule, 0.5, left, footerRule, right, footerRule),
			d.enc.Text(left, footerText, c.FooterNote, muted(regular, 8.5)),
			d.enc.Text(right-54, footerText, fmt.Sprintf("%d / %d", i+1, total), muted(bold, 8.5)),
		)
	}
	d.decorated = true
	return nil
}
