package writer

import (
	"fmt"

	"github.com/wudi/pdfreport/contentstream"
	"github.com/wudi/pdfreport/fonts"
	"github.com/wudi/pdfreport/ir/raw"
)

// graph is a fully reserved and populated arena plus the trailer refs.
type graph struct {
	arena *Arena
	root  raw.ObjectRef
	info  *raw.ObjectRef
	pages int
}

// refs holds the ids reserved for each object kind.
type refs struct {
	fonts    []raw.ObjectRef
	tree     raw.ObjectRef
	pages    []raw.ObjectRef
	contents []raw.ObjectRef
	catalog  raw.ObjectRef
	info     *raw.ObjectRef
}

func buildGraph(set *fonts.Set, pages []*contentstream.Page, width, height float64, cfg Config) (*graph, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	if set == nil || set.Len() == 0 {
		return nil, fmt.Errorf("writer: no fonts")
	}
	order := cfg.Order
	if order == nil {
		order = DefaultOrder()
	}
	if err := validOrder(order, cfg.Info != nil); err != nil {
		return nil, err
	}

	arena := NewArena()
	var r refs
	for _, kind := range order {
		switch kind {
		case KindFonts:
			for range set.Fonts() {
				r.fonts = append(r.fonts, arena.Reserve())
			}
		case KindPageTree:
			r.tree = arena.Reserve()
		case KindPages:
			for range pages {
				r.pages = append(r.pages, arena.Reserve())
			}
		case KindContents:
			for range pages {
				r.contents = append(r.contents, arena.Reserve())
			}
		case KindCatalog:
			r.catalog = arena.Reserve()
		case KindInfo:
			if cfg.Info != nil {
				ref := arena.Reserve()
				r.info = &ref
			}
		}
	}

	if err := populate(arena, r, set, pages, width, height, cfg.Info); err != nil {
		return nil, err
	}
	if err := arena.Validate(); err != nil {
		return nil, err
	}
	return &graph{arena: arena, root: r.catalog, info: r.info, pages: len(pages)}, nil
}

func populate(arena *Arena, r refs, set *fonts.Set, pages []*contentstream.Page, width, height float64, info *Info) error {
	resFonts := raw.Dict()
	for i, f := range set.Fonts() {
		if err := arena.Set(r.fonts[i], fontDict(f)); err != nil {
			return err
		}
		resFonts.Set(f.Resource, raw.Ref(r.fonts[i].Num, 0))
	}
	resources := raw.Dict()
	resources.Set("Font", resFonts)
	mediaBox := raw.NewArray(raw.NumberInt(0), raw.NumberInt(0), raw.NumberFloat(width), raw.NumberFloat(height))

	kids := raw.NewArray()
	for i, page := range pages {
		pd := raw.Dict()
		pd.Set("Type", raw.NameLiteral("Page"))
		pd.Set("Parent", raw.Ref(r.tree.Num, 0))
		pd.Set("MediaBox", mediaBox)
		pd.Set("Resources", resources)
		pd.Set("Contents", raw.Ref(r.contents[i].Num, 0))
		if err := arena.Set(r.pages[i], pd); err != nil {
			return err
		}
		if err := arena.Set(r.contents[i], raw.NewStream(nil, page.Content())); err != nil {
			return err
		}
		kids.Append(raw.Ref(r.pages[i].Num, 0))
	}

	tree := raw.Dict()
	tree.Set("Type", raw.NameLiteral("Pages"))
	tree.Set("Kids", kids)
	tree.Set("Count", raw.NumberInt(int64(len(pages))))
	if err := arena.Set(r.tree, tree); err != nil {
		return err
	}

	catalog := raw.Dict()
	catalog.Set("Type", raw.NameLiteral("Catalog"))
	catalog.Set("Pages", raw.Ref(r.tree.Num, 0))
	if err := arena.Set(r.catalog, catalog); err != nil {
		return err
	}

	if r.info != nil {
		if err := arena.Set(*r.info, infoDict(info)); err != nil {
			return err
		}
	}
	return nil
}

func fontDict(f fonts.Font) *raw.DictObj {
	d := raw.Dict()
	d.Set("Type", raw.NameLiteral("Font"))
	d.Set("Subtype", raw.NameLiteral("Type1"))
	d.Set("BaseFont", raw.NameLiteral(f.BaseFont))
	d.Set("Encoding", raw.NameLiteral("WinAnsiEncoding"))
	return d
}

func infoDict(info *Info) *raw.DictObj {
	d := raw.Dict()
	for _, kv := range []struct{ key, val string }{
		{"Title", info.Title},
		{"Author", info.Author},
		{"Subject", info.Subject},
		{"Creator", info.Creator},
		{"Producer", info.Producer},
	} {
		if kv.val != "" {
			d.Set(kv.key, raw.Str([]byte(contentstream.WinAnsi(kv.val))))
		}
	}
	return d
}
