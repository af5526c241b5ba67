package layout

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	src := `# Overview

Intro with *emphasis* and ` + "`code`" + ` here
continued on a second line.

## Findings

- first item
- second [link](https://example.com)
  - nested item

> **Heads up** check the numbers.

| Name | Count |
|------|-------|
| alpha | 1 |
| beta |

` + "```" + `
func main() {
    run()
}
` + "```" + `
`
	d := newDoc(t)
	if err := d.RenderMarkdown([]byte(src)); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	out := allContent(d)
	for _, want := range []string{
		"/F2 13 Tf 1 0 0 1 56 707 Tm (Overview) Tj",
		"(Intro with emphasis and code here continued on a second line.) Tj",
		"(Findings) Tj",
		"(first item) Tj",
		"(second link) Tj",
		"(nested item) Tj",
		"(Heads up) Tj",
		"(check the numbers.) Tj",
		"(Name) Tj",
		"(alpha) Tj",
		"(beta) Tj",
		"(func main\\(\\) {) Tj T* (    run\\(\\)) Tj T* (}) Tj",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
	if strings.Count(out, "(-) Tj") != 3 {
		t.Fatalf("expected three bullet markers")
	}
}

func TestRenderMarkdown_QuoteWithoutTitle(t *testing.T) {
	d := newDoc(t)
	if err := d.RenderMarkdown([]byte("> plain quote\n")); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	out := allContent(d)
	if !strings.Contains(out, "("+DefaultCalloutTitle+") Tj") || !strings.Contains(out, "(plain quote) Tj") {
		t.Fatalf("unexpected callout:\n%s", out)
	}
}
