package layout

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// DefaultCalloutTitle titles a callout built from a quote that does not
// open with strong text.
const DefaultCalloutTitle = "Note"

// RenderMarkdown parses CommonMark with GFM tables and lays the blocks out
// in order: level-1 headings become section titles, deeper headings
// subheads, lists bullets, block quotes callouts and code blocks
// monospace text. Table columns share the content width equally.
func (d *Document) RenderMarkdown(source []byte) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(source))
	return d.walkMarkdown(doc, source)
}

func (d *Document) walkMarkdown(node ast.Node, src []byte) error {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading:
			if n.Level == 1 {
				d.SectionTitle(inlineText(n, src))
			} else {
				d.Subhead(inlineText(n, src))
			}
		case *ast.Paragraph, *ast.TextBlock:
			d.Paragraph(inlineText(n, src))
		case *ast.List:
			d.Bullets(listItems(n, src))
		case *ast.Blockquote:
			d.Callout(quoteCallout(n, src))
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if err := d.Code(codeLines(n, src)); err != nil {
				return err
			}
		case *east.Table:
			if err := d.markdownTable(n, src); err != nil {
				return err
			}
		}
	}
	return nil
}

// inlineText flattens the inline children of n into one string. Soft and
// hard line breaks become spaces; raw HTML is dropped.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	collectInline(&buf, n, src)
	return strings.TrimSpace(buf.String())
}

func collectInline(buf *bytes.Buffer, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.AutoLink:
			buf.Write(t.Label(src))
		case *ast.RawHTML:
		default:
			collectInline(buf, c, src)
		}
	}
}

// listItems returns one entry per item, nested lists flattened in
// document order.
func listItems(list *ast.List, src []byte) []string {
	var items []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var own []string
		var nested []string
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, listItems(sub, src)...)
				continue
			}
			if s := inlineText(c, src); s != "" {
				own = append(own, s)
			}
		}
		items = append(items, strings.Join(own, " "))
		items = append(items, nested...)
	}
	return items
}

// quoteCallout uses a leading strong span as the callout title.
func quoteCallout(q *ast.Blockquote, src []byte) (string, string) {
	title := DefaultCalloutTitle
	var body []string
	for c := q.FirstChild(); c != nil; c = c.NextSibling() {
		if p, ok := c.(*ast.Paragraph); ok && c == q.FirstChild() {
			if em, ok := p.FirstChild().(*ast.Emphasis); ok && em.Level == 2 {
				title = inlineText(em, src)
				p.RemoveChild(p, em)
			}
		}
		if s := inlineText(c, src); s != "" {
			body = append(body, s)
		}
	}
	return title, strings.Join(body, " ")
}

func codeLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (d *Document) markdownTable(t *east.Table, src []byte) error {
	var headers []string
	var rows [][]string
	for c := t.FirstChild(); c != nil; c = c.NextSibling() {
		var cells []string
		for cell := c.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if _, ok := cell.(*east.TableCell); ok {
				cells = append(cells, inlineText(cell, src))
			}
		}
		switch c.(type) {
		case *east.TableHeader:
			headers = cells
		case *east.TableRow:
			rows = append(rows, cells)
		}
	}
	if len(headers) == 0 {
		return nil
	}
	for i := range rows {
		rows[i] = fitCells(rows[i], len(headers))
	}
	return d.Table(TableSpec{
		Headers: headers,
		Rows:    rows,
		Widths:  EqualWidths(d.geom.ContentWidth(), len(headers)),
	}, DefaultTableStyle())
}

// EqualWidths splits total into n columns; the last column absorbs the
// rounding remainder so the widths sum to total.
func EqualWidths(total float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	widths := make([]float64, n)
	each := total / float64(n)
	used := 0.0
	for i := 0; i < n-1; i++ {
		widths[i] = each
		used += each
	}
	widths[n-1] = total - used
	return widths
}

// fitCells pads or truncates a row to n cells.
func fitCells(cells []string, n int) []string {
	if len(cells) >= n {
		return cells[:n]
	}
	out := make([]string, n)
	copy(out, cells)
	return out
}
