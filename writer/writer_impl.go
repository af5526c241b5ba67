package writer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"

	"github.com/wudi/pdfreport/ir/raw"
	"github.com/wudi/pdfreport/observability"
)

// binaryMarker follows the header line so transfer tools treat the file
// as binary.
const binaryMarker = "%\xe2\xe3\xcf\xd3\n"

type impl struct{ interceptors []Interceptor }

func (w *impl) Write(ctx context.Context, src Source, out io.Writer, cfg Config) error {
	width, height := src.PageSize()
	g, err := buildGraph(src.Fonts(), src.Pages(), width, height, cfg)
	if err != nil {
		return err
	}
	return w.emit(ctx, g, out, cfg)
}

func (w *impl) WritePage(ctx context.Context, src Source, index int, out io.Writer, cfg Config) error {
	pages := src.Pages()
	if index < 0 || index >= len(pages) {
		return fmt.Errorf("%w: %d of %d", ErrPageIndex, index, len(pages))
	}
	width, height := src.PageSize()
	g, err := buildGraph(src.Fonts(), pages[index:index+1], width, height, cfg)
	if err != nil {
		return err
	}
	return w.emit(ctx, g, out, cfg)
}

// SerializeObject renders one indirect object record.
func SerializeObject(ref raw.ObjectRef, obj raw.Object) []byte {
	var buf bytes.Buffer
	buf.WriteString(strconv.Itoa(ref.Num))
	buf.WriteString(" ")
	buf.WriteString(strconv.Itoa(ref.Gen))
	buf.WriteString(" obj\n")
	buf.Write(raw.Serialize(obj))
	buf.WriteString("\nendobj\n")
	return buf.Bytes()
}

// countingWriter tracks the offset of the next byte.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func (w *impl) emit(ctx context.Context, g *graph, out io.Writer, cfg Config) (err error) {
	if err := g.arena.Validate(); err != nil {
		return err
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = observability.NopTracer()
	}
	ctx, span := tracer.StartSpan(ctx, observability.SpanWrite)
	defer func() {
		if err != nil {
			span.SetError(err)
		}
		span.Finish()
	}()

	version := cfg.Version
	if version == "" {
		version = PDF14
	}
	cw := &countingWriter{w: out}
	if _, err := io.WriteString(cw, "%PDF-"+string(version)+"\n"+binaryMarker); err != nil {
		return fmt.Errorf("writer: header: %w", err)
	}

	n := g.arena.Len()
	offsets := make([]int64, n)
	var bodies bytes.Buffer
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		ref := raw.ObjectRef{Num: i + 1}
		obj, _ := g.arena.Get(ref)
		for _, ic := range w.interceptors {
			if err := ic.BeforeWrite(ctx, ref, obj); err != nil {
				return err
			}
		}
		record := SerializeObject(ref, obj)
		offsets[i] = cw.n
		if _, err := cw.Write(record); err != nil {
			return fmt.Errorf("writer: object %d: %w", ref.Num, err)
		}
		if cfg.FileID {
			bodies.Write(record)
		}
		for _, ic := range w.interceptors {
			if err := ic.AfterWrite(ctx, ref, obj, offsets[i], int64(len(record))); err != nil {
				return err
			}
		}
	}

	xrefAt := cw.n
	var tail bytes.Buffer
	tail.WriteString("xref\n0 " + strconv.Itoa(n+1) + "\n")
	tail.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&tail, "%010d 00000 n \n", off)
	}
	tail.WriteString("trailer\n")
	tail.Write(raw.Serialize(trailerDict(g, n, cfg.FileID, bodies.Bytes())))
	tail.WriteString("\nstartxref\n" + strconv.FormatInt(xrefAt, 10) + "\n%%EOF\n")
	if _, err := cw.Write(tail.Bytes()); err != nil {
		return fmt.Errorf("writer: xref: %w", err)
	}

	span.SetTag(observability.TagObjectCount, n)
	span.SetTag(observability.TagPageCount, g.pages)
	span.SetTag(observability.TagBytesWritten, cw.n)
	summary := Summary{Objects: n, Pages: g.pages, Bytes: cw.n, XRefOffset: xrefAt}
	for _, ic := range w.interceptors {
		if c, ok := ic.(Completer); ok {
			c.Complete(ctx, summary)
		}
	}
	return nil
}

func trailerDict(g *graph, n int, withID bool, bodies []byte) *raw.DictObj {
	d := raw.Dict()
	d.Set("Size", raw.NumberInt(int64(n+1)))
	d.Set("Root", raw.Ref(g.root.Num, 0))
	if g.info != nil {
		d.Set("Info", raw.Ref(g.info.Num, 0))
	}
	if withID {
		id := uuid.NewSHA1(uuid.NameSpaceOID, bodies)
		d.Set("ID", raw.NewArray(raw.HexStr(id[:]), raw.HexStr(id[:])))
	}
	return d
}
