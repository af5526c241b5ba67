package xref_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/wudi/pdfreport/xref"
)

func buildSimplePDF(shift int64) ([]byte, map[int]int64) {
	buf := &bytes.Buffer{}
	buf.WriteString("%PDF-1.4\n")

	offsets := make(map[int]int64)

	offsets[1] = int64(buf.Len())
	buf.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = int64(buf.Len())
	buf.WriteString("2 0 obj\n<< /Type /Pages /Kids [] /Count 0 >>\nendobj\n")

	xrefOffset := buf.Len()
	buf.WriteString("xref\n0 3\n")
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 2; i++ {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]+shift))
	}
	buf.WriteString("trailer\n<< /Size 3 /Root 1 0 R /ID [<AB> <AB>] >>\n")
	buf.WriteString("startxref\n")
	buf.WriteString(fmt.Sprintf("%d\n", xrefOffset))
	buf.WriteString("%%EOF\n")

	return buf.Bytes(), offsets
}

func TestParse(t *testing.T) {
	pdf, offsets := buildSimplePDF(0)
	table, err := xref.Parse(pdf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if table.Size != 3 || table.TrailerSize != 3 || table.Root != 1 {
		t.Fatalf("unexpected table: size=%d trailer=%d root=%d", table.Size, table.TrailerSize, table.Root)
	}
	for num, want := range offsets {
		off, gen, ok := table.Lookup(num)
		if !ok || off != want || gen != 0 {
			t.Fatalf("object %d: got (%d, %d, %v), want offset %d", num, off, gen, ok, want)
		}
	}
	if objs := table.Objects(); len(objs) != 2 || objs[0] != 1 || objs[1] != 2 {
		t.Fatalf("Objects = %v", objs)
	}
	if _, _, ok := table.Lookup(0); ok {
		t.Fatal("free entry should not be in use")
	}
	if err := xref.Verify(pdf, table); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if u := xref.Unindexed(pdf, table); len(u) != 0 {
		t.Fatalf("Unindexed = %v", u)
	}
}

func TestResolve(t *testing.T) {
	pdf, _ := buildSimplePDF(0)
	table, err := xref.Resolve(context.Background(), bytes.NewReader(pdf))
	if err != nil || table.Root != 1 {
		t.Fatalf("Resolve: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := xref.Resolve(ctx, bytes.NewReader(pdf)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestVerify_OffsetMismatch(t *testing.T) {
	pdf, _ := buildSimplePDF(1)
	table, err := xref.Parse(pdf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := xref.Verify(pdf, table); !errors.Is(err, xref.ErrOffsetMismatch) {
		t.Fatalf("expected ErrOffsetMismatch, got %v", err)
	}
	if u := xref.Unindexed(pdf, table); len(u) != 2 {
		t.Fatalf("Unindexed = %v, want both objects", u)
	}
}

func TestParse_Malformed(t *testing.T) {
	good, _ := buildSimplePDF(0)
	tests := map[string][]byte{
		"no startxref":   []byte("%PDF-1.4\n1 0 obj\nnull\nendobj\n"),
		"bad offset":     []byte("%PDF-1.4\nstartxref\n99999\n%%EOF\n"),
		"no root":        bytes.Replace(good, []byte("/Root 1 0 R"), []byte("/Info 1 0 R"), 1),
		"no trailer":     bytes.Replace(good, []byte("trailer"), []byte("xxxxxxx"), 1),
		"bad subsection": bytes.Replace(good, []byte("xref\n0 3"), []byte("xref\n0 x"), 1),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := xref.Parse(data); !errors.Is(err, xref.ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestVerify_SizeDisagreement(t *testing.T) {
	good, _ := buildSimplePDF(0)
	pdf := bytes.Replace(good, []byte("/Size 3"), []byte("/Size 4"), 1)
	table, err := xref.Parse(pdf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := xref.Verify(pdf, table); !errors.Is(err, xref.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestVerify_EOFMarker(t *testing.T) {
	good, _ := buildSimplePDF(0)
	tests := map[string][]byte{
		"single percent": bytes.Replace(good, []byte("%%EOF"), []byte("%EOF"), 1),
		"missing":        bytes.TrimSuffix(good, []byte("%%EOF\n")),
	}
	for name, pdf := range tests {
		t.Run(name, func(t *testing.T) {
			table, err := xref.Parse(pdf)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if err := xref.Verify(pdf, table); !errors.Is(err, xref.ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
	if err := xref.Verify(append(good, '\r', '\n'), mustParse(t, good)); err != nil {
		t.Fatalf("trailing newline rejected: %v", err)
	}
}

func mustParse(t *testing.T, data []byte) *xref.Table {
	t.Helper()
	table, err := xref.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return table
}
