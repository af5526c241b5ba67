package layout

import (
	"errors"
	"fmt"

	"github.com/wudi/pdfreport/contentstream"
	"github.com/wudi/pdfreport/fonts"
	"github.com/wudi/pdfreport/observability"
)

var (
	// ErrTableWidths reports column widths that do not add up to the
	// content width.
	ErrTableWidths = errors.New("layout: table widths must equal content width")
	// ErrTableShape reports a table whose widths or rows do not match the
	// header column count.
	ErrTableShape = errors.New("layout: table shape mismatch")
	// ErrUnknownFont reports a block style naming a font missing from the
	// document's font set.
	ErrUnknownFont = errors.New("layout: unknown font")
	// ErrDecorated is returned when page chrome is applied twice.
	ErrDecorated = errors.New("layout: pages already decorated")
)

// widthTolerance bounds the difference between a table's summed widths
// and the content width.
const widthTolerance = 0.2

// Margins defines page margins in points.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// Geometry fixes page size, margins and the header and footer bands.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	Margins      Margins
	HeaderHeight float64
	FooterHeight float64
}

// DefaultGeometry is US Letter with the report margins.
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:    612,
		PageHeight:   792,
		Margins:      Margins{Top: 44, Bottom: 40, Left: 42, Right: 42},
		HeaderHeight: 24,
		FooterHeight: 22,
	}
}

func (g Geometry) ContentWidth() float64  { return g.PageWidth - g.Margins.Left - g.Margins.Right }
func (g Geometry) ContentTop() float64    { return g.Margins.Top + g.HeaderHeight }
func (g Geometry) ContentBottom() float64 { return g.PageHeight - g.Margins.Bottom - g.FooterHeight }

func (g Geometry) validate() error {
	if g.PageWidth <= 0 || g.PageHeight <= 0 {
		return fmt.Errorf("layout: invalid page size %vx%v", g.PageWidth, g.PageHeight)
	}
	if g.ContentWidth() <= 0 {
		return fmt.Errorf("layout: margins leave no content width")
	}
	if g.ContentBottom() <= g.ContentTop() {
		return fmt.Errorf("layout: margins leave no content height")
	}
	return nil
}

// Theme holds the report palette.
type Theme struct {
	Ink        contentstream.Color
	Muted      contentstream.Color
	Accent     contentstream.Color
	AccentDark contentstream.Color
	SoftFill   contentstream.Color
	Rule       contentstream.Color
	Background contentstream.Color
}

func DefaultTheme() Theme {
	return Theme{
		Ink:        contentstream.Color{R: 0.14, G: 0.15, B: 0.18},
		Muted:      contentstream.Color{R: 0.34, G: 0.36, B: 0.39},
		Accent:     contentstream.Color{R: 0.74, G: 0.47, B: 0.18},
		AccentDark: contentstream.Color{R: 0.41, G: 0.25, B: 0.08},
		SoftFill:   contentstream.Color{R: 0.96, G: 0.93, B: 0.88},
		Rule:       contentstream.Color{R: 0.82, G: 0.78, B: 0.73},
		Background: contentstream.Color{R: 1, G: 1, B: 1},
	}
}

// Document owns the pages of one report and the flow cursor that places
// blocks on them. It is not safe for concurrent use.
type Document struct {
	geom   Geometry
	theme  Theme
	fonts  *fonts.Set
	table  fonts.WidthTable
	logger observability.Logger

	est  *fonts.Estimator
	wrap *Wrapper
	enc  *contentstream.Encoder

	pages     []*contentstream.Page
	cursorY   float64
	fresh     bool // no block placed on the current page yet
	decorated bool
}

// Option configures a Document.
type Option func(*Document)

func WithGeometry(g Geometry) Option {
	return func(d *Document) { d.geom = g }
}

func WithTheme(t Theme) Option {
	return func(d *Document) { d.theme = t }
}

// WithFonts replaces the standard font set. The set must provide the
// Regular and Bold logical names.
func WithFonts(s *fonts.Set) Option {
	return func(d *Document) { d.fonts = s }
}

func WithWidthTable(t fonts.WidthTable) Option {
	return func(d *Document) { d.table = t }
}

func WithLogger(l observability.Logger) Option {
	return func(d *Document) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a document holding one empty page.
func New(opts ...Option) (*Document, error) {
	d := &Document{
		geom:   DefaultGeometry(),
		theme:  DefaultTheme(),
		fonts:  fonts.Standard(),
		table:  fonts.DefaultWidthTable(),
		logger: observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.geom.validate(); err != nil {
		return nil, err
	}
	if d.fonts == nil {
		return nil, fmt.Errorf("layout: nil font set")
	}
	for _, name := range []fonts.Name{fonts.Regular, fonts.Bold} {
		if _, ok := d.fonts.Lookup(name); !ok {
			return nil, fmt.Errorf("%w: font set lacks %q", ErrUnknownFont, name)
		}
	}
	d.est = fonts.NewEstimator(d.table)
	d.wrap = NewWrapper(d.est)
	d.enc = contentstream.NewEncoder(d.geom.PageHeight)
	d.NewPage()
	return d, nil
}

func (d *Document) Geometry() Geometry { return d.geom }
func (d *Document) Theme() Theme       { return d.theme }
func (d *Document) Fonts() *fonts.Set  { return d.fonts }
func (d *Document) Wrapper() *Wrapper  { return d.wrap }
func (d *Document) Cursor() float64    { return d.cursorY }
func (d *Document) PageCount() int     { return len(d.pages) }

// Encoder returns the primitive encoder for custom drawing on Page().
func (d *Document) Encoder() *contentstream.Encoder { return d.enc }

// PageSize reports the media box dimensions shared by every page.
func (d *Document) PageSize() (width, height float64) {
	return d.geom.PageWidth, d.geom.PageHeight
}

// Pages returns the page buffers in order. The slice is a copy; the pages
// are shared.
func (d *Document) Pages() []*contentstream.Page {
	out := make([]*contentstream.Page, len(d.pages))
	copy(out, d.pages)
	return out
}

// Page returns the page currently receiving blocks.
func (d *Document) Page() *contentstream.Page { return d.pages[len(d.pages)-1] }

// NewPage starts a page, paints its background and moves the cursor to
// the top of the content area.
func (d *Document) NewPage() {
	page := contentstream.NewPage()
	page.Add(d.enc.FilledRect(d.theme.Background, 0, 0, d.geom.PageWidth, d.geom.PageHeight))
	d.pages = append(d.pages, page)
	d.cursorY = d.geom.ContentTop()
	d.fresh = true
}

// EnsureSpace starts a new page when a block of the given height would
// cross the content bottom. A page that has not received a block yet is
// never abandoned, so repeated calls have no further effect. It reports
// whether a page was added.
func (d *Document) EnsureSpace(height float64) bool {
	if d.cursorY+height <= d.geom.ContentBottom() {
		return false
	}
	if d.fresh {
		d.logger.Warn("layout: block taller than page",
			observability.Int("page", len(d.pages)),
			observability.Float64("height", height))
		return false
	}
	d.NewPage()
	d.logger.Debug("layout: new page",
		observability.Int("page", len(d.pages)),
		observability.Float64("height", height))
	return true
}

// advance moves the cursor past a drawn block.
func (d *Document) advance(height float64) {
	d.cursorY += height
	d.fresh = false
}

func (d *Document) font(name fonts.Name) (fonts.Font, error) {
	f, ok := d.fonts.Lookup(name)
	if !ok {
		return fonts.Font{}, fmt.Errorf("%w: %q", ErrUnknownFont, name)
	}
	return f, nil
}

// mustFont returns a font New has already verified.
func (d *Document) mustFont(name fonts.Name) fonts.Font {
	f, _ := d.fonts.Lookup(name)
	return f
}

func (d *Document) wrapText(text string, width, size float64, font fonts.Font) []string {
	return d.wrap.Wrap(text, width, size, font)
}
