// Package fonts describes the standard, non-embedded fonts a document
// references and estimates the width of text set in them.
package fonts

import "fmt"

// Name is the logical name a layout uses to pick a font.
type Name string

const (
	Regular  Name = "regular"
	Bold     Name = "bold"
	Mono     Name = "mono"
	MonoBold Name = "mono-bold"
)

// Font maps a logical name to a page resource name and a standard Type1
// base font.
type Font struct {
	Name      Name
	Resource  string // e.g. "F1"; used as /F1 in content streams
	BaseFont  string // e.g. "Helvetica"
	Monospace bool
}

// Set is an ordered, immutable collection of fonts shared by every page
// of a document. The order decides object numbering in the writer.
type Set struct {
	fonts []Font
	index map[Name]int
}

// NewSet builds a Set. Logical and resource names must be unique.
func NewSet(fonts ...Font) (*Set, error) {
	s := &Set{fonts: make([]Font, 0, len(fonts)), index: make(map[Name]int, len(fonts))}
	resources := make(map[string]bool, len(fonts))
	for _, f := range fonts {
		if f.Name == "" || f.Resource == "" || f.BaseFont == "" {
			return nil, fmt.Errorf("fonts: incomplete font %+v", f)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("fonts: duplicate logical name %q", f.Name)
		}
		if resources[f.Resource] {
			return nil, fmt.Errorf("fonts: duplicate resource name %q", f.Resource)
		}
		resources[f.Resource] = true
		s.index[f.Name] = len(s.fonts)
		s.fonts = append(s.fonts, f)
	}
	return s, nil
}

// Standard returns Helvetica, Helvetica-Bold, Courier and Courier-Bold as
// F1..F4.
func Standard() *Set {
	s, err := NewSet(
		Font{Name: Regular, Resource: "F1", BaseFont: "Helvetica"},
		Font{Name: Bold, Resource: "F2", BaseFont: "Helvetica-Bold"},
		Font{Name: Mono, Resource: "F3", BaseFont: "Courier", Monospace: true},
		Font{Name: MonoBold, Resource: "F4", BaseFont: "Courier-Bold", Monospace: true},
	)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the font registered under name.
func (s *Set) Lookup(name Name) (Font, bool) {
	i, ok := s.index[name]
	if !ok {
		return Font{}, false
	}
	return s.fonts[i], true
}

// Fonts returns a copy of the fonts in registration order.
func (s *Set) Fonts() []Font {
	out := make([]Font, len(s.fonts))
	copy(out, s.fonts)
	return out
}

func (s *Set) Len() int { return len(s.fonts) }
