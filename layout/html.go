package layout

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML lays out an HTML fragment or document. h1 becomes a section
// title and h2 to h6 subheads; p and runs of loose inline content become
// paragraphs; ul and
// ol become bullet lists; blockquote and aside become callouts titled by
// their title attribute or a leading strong element; table becomes a
// table with equal column widths; pre becomes a code block.
func (d *Document) RenderHTML(source string) error {
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return err
	}
	return d.walkHTML(doc)
}

func (d *Document) walkHTML(n *html.Node) error {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Head, atom.Script, atom.Style, atom.Template:
			return nil
		case atom.H1:
			d.SectionTitle(extractText(n))
			return nil
		case atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			d.Subhead(extractText(n))
			return nil
		case atom.P:
			d.Paragraph(extractText(n))
			return nil
		case atom.Ul, atom.Ol:
			d.Bullets(htmlItems(n))
			return nil
		case atom.Blockquote, atom.Aside:
			d.Callout(htmlCallout(n))
			return nil
		case atom.Pre:
			return d.Code(strings.TrimPrefix(strings.TrimRight(rawText(n), "\n"), "\n"))
		case atom.Table:
			return d.htmlTable(n)
		}
	}
	return d.walkChildren(n)
}

// walkChildren renders block children in order. Adjacent text and inline
// elements are joined into a single paragraph.
func (d *Document) walkChildren(n *html.Node) error {
	var run []*html.Node
	flush := func() {
		var sb strings.Builder
		for _, c := range run {
			collectText(&sb, c)
		}
		run = run[:0]
		if s := strings.Join(strings.Fields(sb.String()), " "); s != "" {
			d.Paragraph(s)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isInline(c) {
			run = append(run, c)
			continue
		}
		flush()
		if err := d.walkHTML(c); err != nil {
			return err
		}
	}
	flush()
	return nil
}

// isInline reports text nodes and phrasing elements such as em, a or
// span. Comments count as inline so they do not split a paragraph.
func isInline(n *html.Node) bool {
	switch n.Type {
	case html.TextNode, html.CommentNode:
		return true
	case html.ElementNode:
		switch n.DataAtom {
		case atom.A, atom.Abbr, atom.B, atom.Br, atom.Cite, atom.Code, atom.Em,
			atom.I, atom.Kbd, atom.Mark, atom.Q, atom.S, atom.Small, atom.Span,
			atom.Strong, atom.Sub, atom.Sup, atom.Time, atom.U, atom.Var:
			return true
		}
	}
	return false
}

// extractText concatenates descendant text with whitespace collapsed.
// br separates words.
func extractText(n *html.Node) string {
	var sb strings.Builder
	collectText(&sb, n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(sb *strings.Builder, n *html.Node) {
	switch {
	case n.Type == html.TextNode:
		sb.WriteString(n.Data)
	case n.Type == html.ElementNode && n.DataAtom == atom.Br:
		sb.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(sb, c)
	}
}

// rawText keeps whitespace, for pre.
func rawText(n *html.Node) string {
	var sb strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return sb.String()
}

// htmlItems collects li text, flattening nested lists after their parent
// item.
func htmlItems(list *html.Node) []string {
	var items []string
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		var own strings.Builder
		var nested []string
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Ul || c.DataAtom == atom.Ol) {
				nested = append(nested, htmlItems(c)...)
				continue
			}
			own.WriteString(" ")
			if c.Type == html.TextNode {
				own.WriteString(c.Data)
			} else {
				own.WriteString(extractText(c))
			}
		}
		items = append(items, strings.Join(strings.Fields(own.String()), " "))
		items = append(items, nested...)
	}
	return items
}

func htmlCallout(n *html.Node) (string, string) {
	var title string
	for _, a := range n.Attr {
		if a.Key == "title" {
			title = strings.TrimSpace(a.Val)
		}
	}
	var body []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		if title == "" && len(body) == 0 {
			if isStrong(c) {
				title = extractText(c)
				continue
			}
			if c.Type == html.ElementNode && c.DataAtom == atom.P {
				if first := firstElement(c); first != nil && isStrong(first) {
					title = extractText(first)
					c.RemoveChild(first)
				}
			}
		}
		if c.Type == html.TextNode {
			body = append(body, strings.Join(strings.Fields(c.Data), " "))
		} else if s := extractText(c); s != "" {
			body = append(body, s)
		}
	}
	if title == "" {
		title = DefaultCalloutTitle
	}
	return title, strings.Join(body, " ")
}

func isStrong(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.Strong || n.DataAtom == atom.B)
}

// firstElement returns the first non-blank child of n.
func firstElement(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		return c
	}
	return nil
}

// htmlTable takes the first row with th cells as the header, or the first
// row when none has th cells.
func (d *Document) htmlTable(t *html.Node) error {
	var trs []*html.Node
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			trs = append(trs, n)
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Table && n != t {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(t)
	if len(trs) == 0 {
		return nil
	}

	headerAt := 0
	for i, tr := range trs {
		if hasHeaderCell(tr) {
			headerAt = i
			break
		}
	}
	headers := rowCells(trs[headerAt])
	if len(headers) == 0 {
		return nil
	}
	var rows [][]string
	for i, tr := range trs {
		if i == headerAt {
			continue
		}
		rows = append(rows, fitCells(rowCells(tr), len(headers)))
	}
	return d.Table(TableSpec{
		Headers: headers,
		Rows:    rows,
		Widths:  EqualWidths(d.geom.ContentWidth(), len(headers)),
	}, DefaultTableStyle())
}

func hasHeaderCell(tr *html.Node) bool {
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Th {
			return true
		}
	}
	return false
}

func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Th || c.DataAtom == atom.Td) {
			cells = append(cells, extractText(c))
		}
	}
	return cells
}
