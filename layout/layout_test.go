package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/wudi/pdfreport/fonts"
	"github.com/wudi/pdfreport/observability"
)

func newDoc(t *testing.T, opts ...Option) *Document {
	t.Helper()
	d, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func allContent(d *Document) string {
	var sb strings.Builder
	for _, p := range d.Pages() {
		sb.Write(p.Content())
	}
	return sb.String()
}

// shortGeometry has a 300pt content width and a content area from 68 to 128.
func shortGeometry() Geometry {
	return Geometry{
		PageWidth:    384,
		PageHeight:   190,
		Margins:      Margins{Top: 44, Bottom: 40, Left: 42, Right: 42},
		HeaderHeight: 24,
		FooterHeight: 22,
	}
}

func TestNew_InvalidGeometry(t *testing.T) {
	g := DefaultGeometry()
	g.Margins.Left = 600
	if _, err := New(WithGeometry(g)); err == nil {
		t.Fatal("expected error for margins wider than page")
	}
}

func TestNew_FontSetNeedsRegularAndBold(t *testing.T) {
	set, err := fonts.NewSet(fonts.Font{Name: fonts.Regular, Resource: "F1", BaseFont: "Helvetica"})
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if _, err := New(WithFonts(set)); !errors.Is(err, ErrUnknownFont) {
		t.Fatalf("expected ErrUnknownFont, got %v", err)
	}
}

func TestNewPage_ResetsCursor(t *testing.T) {
	d := newDoc(t)
	if d.PageCount() != 1 || d.Cursor() != 68 {
		t.Fatalf("initial state: pages=%d cursor=%v", d.PageCount(), d.Cursor())
	}
	d.Paragraph("hello")
	d.NewPage()
	if d.PageCount() != 2 || d.Cursor() != d.Geometry().ContentTop() {
		t.Fatalf("after NewPage: pages=%d cursor=%v", d.PageCount(), d.Cursor())
	}
	if !strings.HasPrefix(string(d.Page().Content()), "1 1 1 rg 0 0 612 792 re f") {
		t.Fatalf("new page should start with background: %q", d.Page().Content())
	}
}

func TestEnsureSpace_FreshPageIsKept(t *testing.T) {
	d := newDoc(t)
	if d.EnsureSpace(10000) {
		t.Fatal("fresh page must not be abandoned")
	}
	d.Paragraph("x")
	if !d.EnsureSpace(10000) {
		t.Fatal("expected a page break")
	}
	if d.EnsureSpace(10000) {
		t.Fatal("second call on the new page must not add another page")
	}
	if d.PageCount() != 2 {
		t.Fatalf("pages = %d, want 2", d.PageCount())
	}
}

type warnRecorder struct {
	observability.NopLogger
	warnings []string
}

func (r *warnRecorder) Warn(msg string, _ ...observability.Field) { r.warnings = append(r.warnings, msg) }

func TestEnsureSpace_WarnsOnOversizedBlock(t *testing.T) {
	rec := &warnRecorder{}
	d := newDoc(t, WithLogger(rec))
	d.EnsureSpace(100)
	if len(rec.warnings) != 0 {
		t.Fatalf("unexpected warnings %v", rec.warnings)
	}
	d.EnsureSpace(10000)
	if len(rec.warnings) != 1 || rec.warnings[0] != "layout: block taller than page" {
		t.Fatalf("warnings = %v", rec.warnings)
	}
}

func TestFlow_CursorStaysInContentArea(t *testing.T) {
	d := newDoc(t)
	text := strings.Repeat("pagination keeps every block inside the content area ", 6)
	bottom := d.Geometry().ContentBottom()
	for i := 0; i < 60; i++ {
		pages := d.PageCount()
		switch i % 4 {
		case 0:
			d.SectionTitle("Section")
		case 1:
			d.Paragraph(text)
		case 2:
			d.Bullets([]string{text, "short"})
		case 3:
			d.Callout("Note", text)
		}
		if d.Cursor() > bottom {
			t.Fatalf("block %d left cursor at %v past %v", i, d.Cursor(), bottom)
		}
		if d.PageCount() < pages {
			t.Fatalf("page count decreased")
		}
	}
	if d.PageCount() < 2 {
		t.Fatalf("expected pagination, got %d pages", d.PageCount())
	}
}

func TestParagraph_Height(t *testing.T) {
	d := newDoc(t)
	start := d.Cursor()
	d.Paragraph("")
	if got := d.Cursor() - start; got != 16 {
		t.Fatalf("empty paragraph height = %v, want 16", got)
	}
	if !strings.Contains(string(d.Page().Content()), "() Tj") {
		t.Fatal("empty paragraph should draw one empty line")
	}
}

func TestParagraphStyled_UnknownFont(t *testing.T) {
	d := newDoc(t)
	before := len(d.Page().Content())
	err := d.ParagraphStyled("x", ParagraphStyle{Font: "serif"})
	if !errors.Is(err, ErrUnknownFont) {
		t.Fatalf("expected ErrUnknownFont, got %v", err)
	}
	if len(d.Page().Content()) != before {
		t.Fatal("nothing should be drawn on error")
	}
}

func TestSectionTitleAndSubhead(t *testing.T) {
	d := newDoc(t)
	d.SectionTitle("Overview")
	if d.Cursor() != 96 {
		t.Fatalf("cursor after title = %v, want 96", d.Cursor())
	}
	d.Subhead("Details")
	if d.Cursor() != 112 {
		t.Fatalf("cursor after subhead = %v, want 112", d.Cursor())
	}
	out := allContent(d)
	for _, want := range []string{
		"0.96 0.93 0.88 rg 42 704 528 20 re f",
		"0.74 0.47 0.18 rg 42 704 6 20 re f",
		"/F2 13 Tf 1 0 0 1 56 707 Tm (Overview) Tj ET",
		"0.41 0.25 0.08 rg /F2 11 Tf 1 0 0 1 42 685 Tm (Details) Tj ET",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
}

func TestBullets_ItemsPaginateIndependently(t *testing.T) {
	d := newDoc(t, WithGeometry(shortGeometry()))
	items := []string{"one", "two", "three", "four", "five"}
	d.Bullets(items)
	if d.PageCount() < 2 {
		t.Fatalf("list should continue on a second page, pages=%d", d.PageCount())
	}
	out := allContent(d)
	for _, item := range items {
		if !strings.Contains(out, "("+item+") Tj") {
			t.Fatalf("item %q missing", item)
		}
	}
	if strings.Count(out, "(-) Tj") != len(items) {
		t.Fatalf("expected one marker per item")
	}
}

func TestCallout_IsAtomic(t *testing.T) {
	d := newDoc(t, WithGeometry(shortGeometry()))
	d.Paragraph("filler")
	d.Paragraph("filler")
	d.Callout("Heads up", "callout body")
	if d.PageCount() != 2 {
		t.Fatalf("callout should move to page 2, pages=%d", d.PageCount())
	}
	page := string(d.Pages()[1].Content())
	if !strings.Contains(page, "(Heads up) Tj") || !strings.Contains(page, "(callout body) Tj") {
		t.Fatalf("callout split across pages:\n%s", page)
	}
}

func TestCover_StartsOwnPage(t *testing.T) {
	d := newDoc(t)
	d.Paragraph("intro")
	d.Cover(Cover{Lines: []string{"Quarterly", "Report"}, Tagline: "Tag", Generated: "Generated 2024-01-01"})
	if d.PageCount() != 2 {
		t.Fatalf("cover on a used page should start a new one, pages=%d", d.PageCount())
	}
	if d.Cursor() != 236 {
		t.Fatalf("cursor = %v, want 236", d.Cursor())
	}
	page := string(d.Page().Content())
	for _, want := range []string{"(Quarterly) Tj T* (Report) Tj", "(Tag) Tj", "(Generated 2024-01-01) Tj"} {
		if !strings.Contains(page, want) {
			t.Fatalf("missing %q", want)
		}
	}
}

func TestDecorate(t *testing.T) {
	d := newDoc(t)
	d.Paragraph("first")
	d.NewPage()
	d.Paragraph("second")
	if err := d.Decorate(Chrome{Title: "Report", Subtitle: "Sub", FooterNote: "Internal"}); err != nil {
		t.Fatalf("Decorate: %v", err)
	}
	first := string(d.Pages()[0].Content())
	second := string(d.Pages()[1].Content())
	if strings.Contains(first, "(Report) Tj") {
		t.Fatal("first page should not carry the running title")
	}
	for _, want := range []string{"(1 / 2) Tj", "(Internal) Tj"} {
		if !strings.Contains(first, want) {
			t.Fatalf("page 1 missing %q", want)
		}
	}
	for _, want := range []string{"(Report) Tj", "(Sub) Tj", "(2 / 2) Tj", "42 730 m 570 730 l S"} {
		if !strings.Contains(second, want) {
			t.Fatalf("page 2 missing %q:\n%s", want, second)
		}
	}
	if err := d.Decorate(Chrome{}); !errors.Is(err, ErrDecorated) {
		t.Fatalf("expected ErrDecorated, got %v", err)
	}
}

func TestCode_SplitsAcrossPages(t *testing.T) {
	d := newDoc(t, WithGeometry(shortGeometry()))
	var lines []string
	for i := 0; i < 12; i++ {
		lines = append(lines, "  line")
	}
	if err := d.Code(strings.Join(lines, "\n")); err != nil {
		t.Fatalf("Code: %v", err)
	}
	if d.PageCount() < 2 {
		t.Fatalf("expected code to span pages, pages=%d", d.PageCount())
	}
	out := allContent(d)
	if strings.Count(out, "(  line) Tj") != 12 {
		t.Fatalf("expected 12 indented lines in\n%s", out)
	}
	if !strings.Contains(out, "/F3 9 Tf") {
		t.Fatal("code should use the monospace font")
	}
}
