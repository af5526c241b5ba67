// Package report renders a YAML report description into a laid-out
// document and writes the combined file and per-page extracts.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wudi/pdfreport/fonts"
)

// ErrInvalidBlock reports a block that cannot be rendered as described.
var ErrInvalidBlock = errors.New("report: invalid block")

// Block kinds.
const (
	KindSection   = "section"
	KindSubhead   = "subhead"
	KindParagraph = "paragraph"
	KindBullets   = "bullets"
	KindCallout   = "callout"
	KindTable     = "table"
	KindCode      = "code"
	KindMarkdown  = "markdown"
	KindHTML      = "html"
	KindPageBreak = "page_break"
)

// Description is the root of a report file.
type Description struct {
	Title      string       `yaml:"title"`
	Subtitle   string       `yaml:"subtitle"`
	Author     string       `yaml:"author"`
	FooterNote string       `yaml:"footer_note"`
	Cover      *CoverConfig `yaml:"cover"`
	Output     OutputConfig `yaml:"output"`
	Blocks     []Block      `yaml:"blocks"`

	// baseDir resolves relative csv, source and output paths.
	baseDir string
}

type CoverConfig struct {
	Lines     []string `yaml:"lines"`
	Tagline   string   `yaml:"tagline"`
	Generated string   `yaml:"generated"`
}

// OutputConfig names the combined file and, optionally, a directory for
// single-page extracts. Relative paths in a loaded description are taken
// from the description's directory, like csv and source paths; use
// Description.Outputs to get them resolved.
type OutputConfig struct {
	File        string `yaml:"file"`
	ExtractsDir string `yaml:"extracts_dir"`
	FileID      bool   `yaml:"file_id"`
}

// Block is one entry of the flow. Which fields apply depends on Kind.
type Block struct {
	Kind  string   `yaml:"kind"`
	Text  string   `yaml:"text"`
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
	// Source is a file holding the markdown, html or code text; it is
	// read when Text is empty.
	Source string `yaml:"source"`

	Font    string  `yaml:"font"`
	Size    float64 `yaml:"size"`
	Leading float64 `yaml:"leading"`

	Headers []string   `yaml:"headers"`
	Rows    [][]string `yaml:"rows"`
	// CSV loads rows from a file; Fields picks and orders its columns
	// and defaults to Headers.
	CSV    string    `yaml:"csv"`
	Fields []string  `yaml:"fields"`
	Widths []float64 `yaml:"widths"`
	// RepeatHeader defaults to true.
	RepeatHeader *bool `yaml:"repeat_header"`
}

// Default returns a description with the output defaults set.
func Default() *Description {
	return &Description{
		Title:  "Report",
		Output: OutputConfig{File: "report.pdf"},
	}
}

// Load reads a description file over Default and validates it. Relative
// paths inside it are resolved against the file's directory.
func Load(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	desc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	desc.baseDir = filepath.Dir(path)
	return desc, nil
}

// Parse decodes and validates a description held in memory.
func Parse(data []byte) (*Description, error) {
	desc := Default()
	if err := yaml.Unmarshal(data, desc); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return desc, nil
}

// SetBaseDir changes the directory relative paths are resolved against.
func (d *Description) SetBaseDir(dir string) { d.baseDir = dir }

// Outputs returns Output with relative paths resolved against the
// description's directory.
func (d *Description) Outputs() OutputConfig {
	out := d.Output
	out.File = d.path(out.File)
	out.ExtractsDir = d.path(out.ExtractsDir)
	return out
}

func (d *Description) path(p string) string {
	if p == "" || filepath.IsAbs(p) || d.baseDir == "" {
		return p
	}
	return filepath.Join(d.baseDir, p)
}

// Validate checks every block for the fields its kind needs.
func (d *Description) Validate() error {
	if d.Output.File == "" {
		return errors.New("report: output file is required")
	}
	for i, b := range d.Blocks {
		if err := b.validate(); err != nil {
			return fmt.Errorf("block %d (%s): %w", i, b.Kind, err)
		}
	}
	return nil
}

func (b Block) validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalidBlock}, args...)...)
	}
	if b.Size < 0 || b.Leading < 0 {
		return invalid("negative size or leading")
	}
	if b.Font != "" {
		if _, ok := fonts.Standard().Lookup(fonts.Name(b.Font)); !ok {
			return invalid("unknown font %q", b.Font)
		}
	}
	switch b.Kind {
	case KindSection, KindSubhead:
		if b.Text == "" {
			return invalid("text is required")
		}
	case KindParagraph:
	case KindBullets:
		if len(b.Items) == 0 {
			return invalid("items are required")
		}
	case KindCallout:
		if b.Title == "" {
			return invalid("title is required")
		}
	case KindTable:
		if len(b.Headers) == 0 {
			return invalid("headers are required")
		}
		if len(b.Widths) != 0 && len(b.Widths) != len(b.Headers) {
			return invalid("%d widths for %d headers", len(b.Widths), len(b.Headers))
		}
		if b.CSV != "" && len(b.Rows) > 0 {
			return invalid("rows and csv are exclusive")
		}
		if len(b.Fields) != 0 && len(b.Fields) != len(b.Headers) {
			return invalid("%d fields for %d headers", len(b.Fields), len(b.Headers))
		}
		if len(b.Fields) != 0 && b.CSV == "" {
			return invalid("fields need a csv source")
		}
		for _, w := range b.Widths {
			if w < 0 {
				return invalid("negative width %v", w)
			}
		}
	case KindCode, KindMarkdown, KindHTML:
		if b.Text == "" && b.Source == "" {
			return invalid("text or source is required")
		}
	case KindPageBreak:
	default:
		return invalid("unknown kind %q", b.Kind)
	}
	return nil
}
