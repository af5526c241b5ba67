package contentstream

import "strings"

// Page is the append-only operator buffer behind one page's content
// stream.
type Page struct {
	ops []string
}

func NewPage() *Page { return &Page{} }

// Add appends one operator string.
func (p *Page) Add(op string) { p.ops = append(p.ops, op) }

// Extend appends several operator strings in order.
func (p *Page) Extend(ops ...string) { p.ops = append(p.ops, ops...) }

// Content joins the operators with newlines. It does not modify the page,
// so the same page can be serialized any number of times.
func (p *Page) Content() []byte {
	if len(p.ops) == 0 {
		return nil
	}
	return []byte(strings.Join(p.ops, "\n") + "\n")
}
