// Package xref reads the classic cross-reference table and trailer of a
// file and checks them against the bytes they index.
package xref

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrMalformed reports a missing or unparsable startxref, xref section
	// or trailer.
	ErrMalformed = errors.New("xref: malformed cross-reference data")
	// ErrOffsetMismatch reports an entry whose offset does not start the
	// object record it names.
	ErrOffsetMismatch = errors.New("xref: offset does not point at object")
)

type entry struct {
	offset int64
	gen    int
}

// Table is one parsed xref section with its trailer.
type Table struct {
	entries map[int]entry
	// Size is the number of entries declared by the subsection header,
	// the free entry 0 included.
	Size int
	// TrailerSize is the trailer's /Size.
	TrailerSize int
	Root        int
	StartXRef   int64
}

func (t *Table) Lookup(objNum int) (offset int64, gen int, found bool) {
	e, ok := t.entries[objNum]
	if !ok {
		return 0, 0, false
	}
	return e.offset, e.gen, true
}

// Objects lists in-use object numbers in ascending order.
func (t *Table) Objects() []int {
	out := make([]int, 0, len(t.entries))
	for k := range t.entries {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// Resolve reads r completely and parses it.
func Resolve(ctx context.Context, r io.Reader) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse locates startxref and reads the xref section and trailer it
// points at.
func Parse(data []byte) (*Table, error) {
	startxref := bytes.LastIndex(data, []byte("startxref"))
	if startxref < 0 {
		return nil, fmt.Errorf("%w: startxref not found", ErrMalformed)
	}
	offset, err := firstInt(data[startxref+len("startxref"):])
	if err != nil {
		return nil, fmt.Errorf("%w: startxref: %v", ErrMalformed, err)
	}
	if offset <= 0 || offset >= int64(len(data)) {
		return nil, fmt.Errorf("%w: xref offset out of range: %d", ErrMalformed, offset)
	}

	sc := bufio.NewScanner(bytes.NewReader(data[offset:]))
	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "xref" {
		return nil, fmt.Errorf("%w: xref keyword not found at %d", ErrMalformed, offset)
	}

	t := &Table{entries: make(map[int]entry), StartXRef: offset}
	sawTrailer := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "trailer") {
			sawTrailer = true
			break
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: invalid subsection header %q", ErrMalformed, line)
		}
		start, err1 := strconv.Atoi(parts[0])
		count, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: invalid subsection header %q", ErrMalformed, line)
		}
		if start+count > t.Size {
			t.Size = start + count
		}
		for i := 0; i < count; i++ {
			if !sc.Scan() {
				return nil, fmt.Errorf("%w: unexpected end of xref section", ErrMalformed)
			}
			fields := strings.Fields(sc.Text())
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: invalid entry %q", ErrMalformed, sc.Text())
			}
			off, err := strconv.ParseInt(fields[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: entry offset %q", ErrMalformed, fields[0])
			}
			gen, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: entry generation %q", ErrMalformed, fields[1])
			}
			if fields[2] != "n" {
				continue
			}
			t.entries[start+i] = entry{offset: off, gen: gen}
		}
	}
	if !sawTrailer {
		return nil, fmt.Errorf("%w: trailer not found", ErrMalformed)
	}

	var trailer strings.Builder
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "startxref" {
			break
		}
		trailer.WriteString(line)
		trailer.WriteByte(' ')
	}
	if err := t.parseTrailer(trailer.String()); err != nil {
		return nil, err
	}
	return t, nil
}

// parseTrailer reads /Size n and /Root n g R from the trailer dictionary.
func (t *Table) parseTrailer(s string) error {
	fields := strings.Fields(strings.NewReplacer("<<", " ", ">>", " ").Replace(s))
	for i, f := range fields {
		switch f {
		case "/Size":
			if i+1 < len(fields) {
				t.TrailerSize, _ = strconv.Atoi(fields[i+1])
			}
		case "/Root":
			if i+3 < len(fields) && fields[i+3] == "R" {
				t.Root, _ = strconv.Atoi(fields[i+1])
			}
		}
	}
	if t.TrailerSize <= 0 {
		return fmt.Errorf("%w: trailer lacks /Size", ErrMalformed)
	}
	if t.Root <= 0 {
		return fmt.Errorf("%w: trailer lacks /Root", ErrMalformed)
	}
	return nil
}

func firstInt(p []byte) (int64, error) {
	sc := bufio.NewScanner(bytes.NewReader(p))
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		return strconv.ParseInt(text, 10, 64)
	}
	return 0, errors.New("missing value")
}
