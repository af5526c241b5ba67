package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is one record of tabular input keyed by field name.
type Row map[string]string

// ReadRows reads CSV with a header line. Cells are trimmed of surrounding
// whitespace; short records leave the missing fields empty.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = strings.TrimSpace(rec[i])
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
}

// LoadRows reads a CSV file.
func LoadRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rows: %w", err)
	}
	defer f.Close()
	return ReadRows(f)
}

// Project turns rows into table cells, one per field in order. A field
// missing from a row yields an empty cell.
func Project(rows []Row, fields []string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(fields))
		for j, f := range fields {
			cells[j] = row[f]
		}
		out[i] = cells
	}
	return out
}

// ResolveWidths fills zero entries with an equal share of what the
// non-zero entries leave of total. No widths at all means equal columns.
func ResolveWidths(widths []float64, columns int, total float64) ([]float64, error) {
	if len(widths) == 0 {
		widths = make([]float64, columns)
	}
	if len(widths) != columns {
		return nil, fmt.Errorf("%w: %d widths for %d columns", ErrInvalidBlock, len(widths), columns)
	}
	fixed, zeros := 0.0, 0
	for _, w := range widths {
		if w == 0 {
			zeros++
		}
		fixed += w
	}
	out := make([]float64, len(widths))
	copy(out, widths)
	if zeros == 0 {
		return out, nil
	}
	rest := total - fixed
	if rest <= 0 {
		return nil, fmt.Errorf("%w: fixed widths %v leave no room in %v", ErrInvalidBlock, fixed, total)
	}
	share := rest / float64(zeros)
	last := -1
	used := 0.0
	for i, w := range out {
		if w == 0 {
			out[i] = share
			last = i
		}
		used += out[i]
	}
	// Absorb rounding in the last filled column.
	out[last] += total - used
	return out, nil
}
