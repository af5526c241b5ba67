package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/wudi/pdfreport/layout"
	"github.com/wudi/pdfreport/observability"
	"github.com/wudi/pdfreport/report"
	"github.com/wudi/pdfreport/writer"
)

type options struct {
	descPath    string
	outFile     string
	extractsDir string
	fileID      bool
	verbose     bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "reportgen: %v\n", err)
		os.Exit(2)
	}
	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "reportgen: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: reportgen [flags] <report.yaml>\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.outFile, "o", "", "Combined output file (overrides output.file)")
	flag.StringVar(&opts.extractsDir, "pages", "", "Directory for single-page extracts (overrides output.extracts_dir)")
	flag.BoolVar(&opts.fileID, "id", false, "Add a trailer /ID derived from the file content")
	flag.BoolVar(&opts.verbose, "v", false, "Log every object written")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing report description")
	}
	opts.descPath = flag.Arg(0)
	return opts, nil
}

func run(ctx context.Context, opts options) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := observability.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))).
		With(observability.String("report", opts.descPath))

	desc, err := report.Load(opts.descPath)
	if err != nil {
		return err
	}
	// Flag paths are relative to the working directory.
	out := desc.Outputs()
	if opts.outFile != "" {
		out.File = opts.outFile
	}
	if opts.extractsDir != "" {
		out.ExtractsDir = opts.extractsDir
	}
	if opts.fileID {
		desc.Output.FileID = true
	}

	doc, err := report.Render(desc, layout.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	w := (&writer.WriterBuilder{}).
		WithInterceptor(writer.LoggingInterceptor(logger)).
		Build()
	paths, err := report.WriteOutputs(ctx, w, doc, out, desc.WriterConfig())
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	logger.Info("reportgen: done",
		observability.Int("pages", doc.PageCount()),
		observability.Int("files", len(paths)),
		observability.String("output", out.File))
	return nil
}
