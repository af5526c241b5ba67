package contentstream

import (
	"strings"
	"testing"

	"github.com/wudi/pdfreport/fonts"
)

func regular(t *testing.T) fonts.Font {
	t.Helper()
	f, ok := fonts.Standard().Lookup(fonts.Regular)
	if !ok {
		t.Fatal("regular font missing")
	}
	return f
}

func TestEscape_RoundTrip(t *testing.T) {
	in := `path (a\b) and ((nested))`
	got := Escape(in)
	want := `path \(a\\b\) and \(\(nested\)\)`
	if got != want {
		t.Fatalf("Escape = %q, want %q", got, want)
	}

	// Removing one escaping backslash before each special yields the input.
	var b strings.Builder
	for i := 0; i < len(got); i++ {
		if got[i] == '\\' {
			i++
			if i >= len(got) || !strings.ContainsRune(`\()`, rune(got[i])) {
				t.Fatalf("backslash not followed by special at %d", i)
			}
		}
		b.WriteByte(got[i])
	}
	if b.String() != in {
		t.Fatalf("unescaped = %q, want %q", b.String(), in)
	}
}

func TestEncoder_RectanglesFlipOrigin(t *testing.T) {
	e := NewEncoder(792)
	if got, want := e.FillRect(42, 68, 528, 20), "42 704 528 20 re f\n"; got != want {
		t.Fatalf("FillRect = %q, want %q", got, want)
	}
	if got, want := e.StrokeRect(0, 0, 612, 792), "0 0 612 792 re S\n"; got != want {
		t.Fatalf("StrokeRect = %q, want %q", got, want)
	}
	white := Color{1, 1, 1}
	if got, want := e.FilledRect(white, 0, 0, 612, 792), "1 1 1 rg 0 0 612 792 re f\n"; got != want {
		t.Fatalf("FilledRect = %q, want %q", got, want)
	}
	rule := Color{0.82, 0.78, 0.73}
	if got, want := e.OutlinedRect(rule, 0.45, 42, 100, 100, 20), "0.82 0.78 0.73 RG 0.45 w 42 672 100 20 re S\n"; got != want {
		t.Fatalf("OutlinedRect = %q, want %q", got, want)
	}
}

func TestEncoder_Line(t *testing.T) {
	e := NewEncoder(792)
	if got, want := e.Line(42, 62, 570, 62), "42 730 m 570 730 l S\n"; got != want {
		t.Fatalf("Line = %q, want %q", got, want)
	}
}

func TestEncoder_Text(t *testing.T) {
	e := NewEncoder(792)
	style := TextStyle{Font: regular(t), Size: 10, Color: Color{0.14, 0.15, 0.18}}
	got := e.Text(42, 100, "Hello (world)", style)
	want := `BT 0.14 0.15 0.18 rg /F1 10 Tf 1 0 0 1 42 682 Tm (Hello \(world\)) Tj ET`
	if got != want {
		t.Fatalf("Text = %q, want %q", got, want)
	}
}

func TestEncoder_TextLines(t *testing.T) {
	e := NewEncoder(792)
	style := TextStyle{Font: regular(t), Size: 10.5, Color: Color{0, 0, 0}}
	got := e.TextLines(42, 68, []string{"one", "two"}, style, 14)
	want := "BT 0 0 0 rg /F1 10.5 Tf 14 TL 1 0 0 1 42 713.5 Tm (one) Tj T* (two) Tj ET"
	if got != want {
		t.Fatalf("TextLines = %q, want %q", got, want)
	}

	empty := e.TextLines(42, 68, nil, style, 14)
	if !strings.Contains(empty, "() Tj") || strings.Contains(empty, "T*") {
		t.Fatalf("empty block should draw one empty line: %q", empty)
	}
}

func TestWinAnsi(t *testing.T) {
	if got := WinAnsi("plain"); got != "plain" {
		t.Fatalf("ascii altered: %q", got)
	}
	if got := WinAnsi("café – ok"); got != "caf\xe9 \x96 ok" {
		t.Fatalf("WinAnsi = %q", got)
	}
	if got := WinAnsi("日本"); got != "??" {
		t.Fatalf("unmapped runes should become '?', got %q", got)
	}
}

func TestPage_Content(t *testing.T) {
	p := NewPage()
	if p.Content() != nil {
		t.Fatal("empty page should have no content")
	}
	p.Add("a")
	p.Extend("b", "c")
	if got := string(p.Content()); got != "a\nb\nc\n" {
		t.Fatalf("Content = %q", got)
	}
	if string(p.Content()) != string(p.Content()) {
		t.Fatal("Content must not mutate the page")
	}
}
