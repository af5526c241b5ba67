package xref

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// Verify checks that the trailer and xref sizes agree, that every object
// number below Size is in use, that /Root is indexed, and that each
// offset lands on the first byte of "<num> <gen> obj". The file must end
// with the %%EOF marker line.
func Verify(data []byte, t *Table) error {
	if !bytes.HasSuffix(bytes.TrimRight(data, "\r\n"), []byte("\n%%EOF")) {
		return fmt.Errorf("%w: missing %%%%EOF marker", ErrMalformed)
	}
	if t.TrailerSize != t.Size {
		return fmt.Errorf("%w: trailer /Size %d, xref declares %d", ErrMalformed, t.TrailerSize, t.Size)
	}
	for num := 1; num < t.Size; num++ {
		off, gen, ok := t.Lookup(num)
		if !ok {
			return fmt.Errorf("%w: object %d has no entry", ErrMalformed, num)
		}
		want := strconv.Itoa(num) + " " + strconv.Itoa(gen) + " obj"
		if off < 0 || off+int64(len(want)) > int64(len(data)) || string(data[off:off+int64(len(want))]) != want {
			return fmt.Errorf("%w: object %d at %d", ErrOffsetMismatch, num, off)
		}
	}
	if _, _, ok := t.Lookup(t.Root); !ok {
		return fmt.Errorf("%w: root %d not indexed", ErrMalformed, t.Root)
	}
	return nil
}

var objectHeader = regexp.MustCompile(`(?m)^(\d+) (\d+) obj\b`)

// Scan finds object headers at line starts and returns their offsets by
// object number, independent of any xref table. A later header for the
// same number wins.
func Scan(data []byte) map[int]int64 {
	out := make(map[int]int64)
	for _, m := range objectHeader.FindAllSubmatchIndex(data, -1) {
		num, err := strconv.Atoi(string(data[m[2]:m[3]]))
		if err != nil {
			continue
		}
		out[num] = int64(m[0])
	}
	return out
}

// Unindexed returns, in ascending order, the object numbers Scan finds in
// data whose header offset differs from the table entry or which have no
// entry at all.
func Unindexed(data []byte, t *Table) []int {
	found := Scan(data)
	nums := make([]int, 0, len(found))
	for num := range found {
		nums = append(nums, num)
	}
	sort.Ints(nums)
	var out []int
	for _, num := range nums {
		if off, _, ok := t.Lookup(num); !ok || off != found[num] {
			out = append(out, num)
		}
	}
	return out
}
