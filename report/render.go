package report

import (
	"fmt"
	"os"

	"github.com/wudi/pdfreport/fonts"
	"github.com/wudi/pdfreport/layout"
)

// Render lays out every block of desc on a new document, then decorates
// the pages with the description's title, subtitle and footer note.
func Render(desc *Description, opts ...layout.Option) (*layout.Document, error) {
	doc, err := layout.New(opts...)
	if err != nil {
		return nil, err
	}
	if c := desc.Cover; c != nil {
		lines := c.Lines
		if len(lines) == 0 {
			lines = []string{desc.Title}
		}
		doc.Cover(layout.Cover{Lines: lines, Tagline: c.Tagline, Generated: c.Generated})
	}
	for i, b := range desc.Blocks {
		if err := desc.renderBlock(doc, b); err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, b.Kind, err)
		}
	}
	err = doc.Decorate(layout.Chrome{
		Title:      desc.Title,
		Subtitle:   desc.Subtitle,
		FooterNote: desc.FooterNote,
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Description) renderBlock(doc *layout.Document, b Block) error {
	switch b.Kind {
	case KindSection:
		doc.SectionTitle(b.Text)
	case KindSubhead:
		doc.Subhead(b.Text)
	case KindParagraph:
		style := layout.DefaultParagraphStyle()
		if b.Font != "" {
			style.Font = fonts.Name(b.Font)
		}
		if b.Size > 0 {
			style.Size = b.Size
		}
		if b.Leading > 0 {
			style.Leading = b.Leading
		}
		return doc.ParagraphStyled(b.Text, style)
	case KindBullets:
		style := layout.DefaultBulletStyle()
		if b.Size > 0 {
			style.Size = b.Size
		}
		if b.Leading > 0 {
			style.Leading = b.Leading
		}
		doc.BulletsStyled(b.Items, style)
	case KindCallout:
		doc.Callout(b.Title, b.Text)
	case KindTable:
		return d.renderTable(doc, b)
	case KindCode:
		text, err := d.text(b)
		if err != nil {
			return err
		}
		style := layout.DefaultCodeStyle()
		if b.Size > 0 {
			style.Size = b.Size
		}
		if b.Leading > 0 {
			style.Leading = b.Leading
		}
		return doc.CodeStyled(text, style)
	case KindMarkdown:
		text, err := d.text(b)
		if err != nil {
			return err
		}
		return doc.RenderMarkdown([]byte(text))
	case KindHTML:
		text, err := d.text(b)
		if err != nil {
			return err
		}
		return doc.RenderHTML(text)
	case KindPageBreak:
		doc.PageBreak()
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidBlock, b.Kind)
	}
	return nil
}

func (d *Description) text(b Block) (string, error) {
	if b.Text != "" {
		return b.Text, nil
	}
	data, err := os.ReadFile(d.path(b.Source))
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}
	return string(data), nil
}

func (d *Description) renderTable(doc *layout.Document, b Block) error {
	rows := b.Rows
	if b.CSV != "" {
		records, err := LoadRows(d.path(b.CSV))
		if err != nil {
			return err
		}
		fields := b.Fields
		if len(fields) == 0 {
			fields = b.Headers
		}
		rows = Project(records, fields)
	}
	widths, err := ResolveWidths(b.Widths, len(b.Headers), doc.Geometry().ContentWidth())
	if err != nil {
		return err
	}
	style := layout.DefaultTableStyle()
	if b.Font != "" {
		style.BodyFont = fonts.Name(b.Font)
	}
	if b.Size > 0 {
		style.BodySize = b.Size
	}
	if b.Leading > 0 {
		style.BodyLeading = b.Leading
	}
	if b.RepeatHeader != nil {
		style.RepeatHeader = *b.RepeatHeader
	}
	return doc.Table(layout.TableSpec{Headers: b.Headers, Rows: rows, Widths: widths}, style)
}
