package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wudi/pdfreport/writer"
)

const (
	creator  = "reportgen"
	producer = "pdfreport"
)

// WriterConfig returns the writer configuration for desc: the defaults
// plus an info dictionary and, if requested, a file identifier.
func (d *Description) WriterConfig() writer.Config {
	cfg := writer.DefaultConfig()
	cfg.Info = &writer.Info{
		Title:    d.Title,
		Author:   d.Author,
		Subject:  d.Subtitle,
		Creator:  creator,
		Producer: producer,
	}
	cfg.FileID = d.Output.FileID
	return cfg
}

// ExtractName is the file name of the single-page extract for the page
// at index.
func ExtractName(index int) string {
	return fmt.Sprintf("page-%03d.pdf", index+1)
}

// WriteOutputs writes the combined file named by out.File and, when
// out.ExtractsDir is set, one file per page. Missing parent directories
// are created. It returns the paths written.
// A file that fails midway is removed; files completed before it are kept.
func WriteOutputs(ctx context.Context, w writer.Writer, src writer.Source, out OutputConfig, cfg writer.Config) ([]string, error) {
	if out.File == "" {
		return nil, errors.New("report: output file is required")
	}
	if err := os.MkdirAll(filepath.Dir(out.File), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	var written []string
	err := writeFile(out.File, func(f io.Writer) error {
		return w.Write(ctx, src, f, cfg)
	})
	if err != nil {
		return written, err
	}
	written = append(written, out.File)

	if out.ExtractsDir == "" {
		return written, nil
	}
	if err := os.MkdirAll(out.ExtractsDir, 0o755); err != nil {
		return written, fmt.Errorf("failed to create extracts dir: %w", err)
	}
	for i := range src.Pages() {
		path := filepath.Join(out.ExtractsDir, ExtractName(i))
		err := writeFile(path, func(f io.Writer) error {
			return w.WritePage(ctx, src, i, f, cfg)
		})
		if err != nil {
			return written, fmt.Errorf("page %d: %w", i+1, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return fn(f)
}
