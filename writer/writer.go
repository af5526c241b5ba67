// Package writer turns laid-out pages into a file: it reserves object ids
// in a fixed order, populates them, and writes the object records, the
// cross-reference table and the trailer with offsets taken from the bytes
// actually written.
package writer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/wudi/pdfreport/contentstream"
	"github.com/wudi/pdfreport/fonts"
	"github.com/wudi/pdfreport/ir/raw"
	"github.com/wudi/pdfreport/observability"
)

var (
	// ErrObjectOrder reports a Config.Order that does not name every
	// object kind exactly once.
	ErrObjectOrder = errors.New("writer: invalid object order")
	ErrNoPages     = errors.New("writer: document has no pages")
	ErrPageIndex   = errors.New("writer: page index out of range")
)

type Version string

const (
	PDF14 Version = "1.4"
	PDF17 Version = "1.7"
)

// ObjectKind groups the objects of a file for id assignment.
type ObjectKind int

const (
	KindFonts ObjectKind = iota
	KindPageTree
	KindPages
	KindContents
	KindCatalog
	KindInfo
)

func (k ObjectKind) String() string {
	switch k {
	case KindFonts:
		return "fonts"
	case KindPageTree:
		return "page-tree"
	case KindPages:
		return "pages"
	case KindContents:
		return "contents"
	case KindCatalog:
		return "catalog"
	case KindInfo:
		return "info"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// DefaultOrder assigns ids to fonts, the page tree, each page, each
// content stream, the catalog and finally the info dictionary.
func DefaultOrder() []ObjectKind {
	return []ObjectKind{KindFonts, KindPageTree, KindPages, KindContents, KindCatalog, KindInfo}
}

// Info is the document information dictionary. Empty fields are omitted.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
}

type Config struct {
	Version Version
	// Order lists every kind once. KindInfo may be left out when Info is
	// nil.
	Order []ObjectKind
	Info  *Info
	// FileID adds a trailer /ID derived from the object bodies, so equal
	// input still yields equal output.
	FileID bool
	Tracer observability.Tracer
}

func DefaultConfig() Config {
	return Config{
		Version: PDF14,
		Order:   DefaultOrder(),
		Tracer:  observability.NopTracer(),
	}
}

// Source is what the writer needs from a laid-out document.
type Source interface {
	Fonts() *fonts.Set
	Pages() []*contentstream.Page
	PageSize() (width, height float64)
}

type Writer interface {
	// Write serializes every page of src.
	Write(ctx context.Context, src Source, w io.Writer, cfg Config) error
	// WritePage serializes the page at index as a one-page file.
	WritePage(ctx context.Context, src Source, index int, w io.Writer, cfg Config) error
}

// Interceptor observes each object record around its write. An error
// aborts the write.
type Interceptor interface {
	BeforeWrite(ctx context.Context, ref raw.ObjectRef, obj raw.Object) error
	AfterWrite(ctx context.Context, ref raw.ObjectRef, obj raw.Object, offset, bytesWritten int64) error
}

// Completer is implemented by interceptors that want the totals of a
// finished write.
type Completer interface {
	Complete(ctx context.Context, s Summary)
}

// Summary describes a finished write.
type Summary struct {
	Objects    int
	Pages      int
	Bytes      int64
	XRefOffset int64
}

type WriterBuilder struct{ interceptors []Interceptor }

func (b *WriterBuilder) WithInterceptor(i Interceptor) *WriterBuilder {
	b.interceptors = append(b.interceptors, i)
	return b
}

func (b *WriterBuilder) Build() Writer { return &impl{interceptors: b.interceptors} }

// validOrder reports whether order names each required kind once, and
// KindInfo once when an info dictionary is written.
func validOrder(order []ObjectKind, withInfo bool) error {
	seen := make(map[ObjectKind]bool, len(order))
	for _, k := range order {
		if k < KindFonts || k > KindInfo {
			return fmt.Errorf("%w: unknown kind %v", ErrObjectOrder, k)
		}
		if seen[k] {
			return fmt.Errorf("%w: %v listed twice", ErrObjectOrder, k)
		}
		seen[k] = true
	}
	for _, k := range DefaultOrder() {
		if k == KindInfo && !withInfo {
			continue
		}
		if !seen[k] {
			return fmt.Errorf("%w: %v missing", ErrObjectOrder, k)
		}
	}
	return nil
}
