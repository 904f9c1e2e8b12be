package main

import (
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

// ErrNoInput reports a run with no input files.
var ErrNoInput = errors.New("no input files given")

// cliFlags holds all parsed command-line flags.
type cliFlags struct {
	output    string
	outputDir string
	config    string

	embedStyles  bool
	completePage bool
	embedImages  bool
	outline      bool
	mimeHTML     bool

	style          string
	highlightStyle string
	transparentBg  bool

	backend string
	timeout time.Duration
	workers int
	verbose bool
	version bool

	inputs []string
}

// parseFlags parses args (excluding the program name is not required; pass
// os.Args) into cliFlags.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}

	fs := flag.NewFlagSet("mdexport", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output HTML file (single input only; default: input with .html extension)")
	fs.StringVar(&f.outputDir, "output-dir", "", "directory for output files (default: next to each input)")
	fs.StringVarP(&f.config, "config", "c", "", "config file path or name")

	fs.BoolVar(&f.embedStyles, "embed-styles", true, "inline stylesheet resources as data URIs")
	fs.BoolVar(&f.completePage, "complete-page", true, "rewrite body resources (embed or copy)")
	fs.BoolVar(&f.embedImages, "embed-images", true, "embed images as data URIs instead of copying")
	fs.BoolVar(&f.outline, "outline", false, "add a heading outline panel")
	fs.BoolVar(&f.mimeHTML, "mht", false, "export as MIME HTML (unsupported; fails fast)")

	fs.StringVar(&f.style, "style", "", "rendering style: CSS file path or embedded style name")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "syntax highlight style: CSS file path or embedded style name")
	fs.BoolVar(&f.transparentBg, "transparent-bg", false, "render with a transparent background")

	fs.StringVar(&f.backend, "backend", "chromium", "render backend: chromium or local")
	fs.DurationVar(&f.timeout, "timeout", 30*time.Second, "per-document export timeout")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel exports (0 = auto)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose logging")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: mdexport [flags] <input.md> [input2.md ...]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	f.inputs = fs.Args()
	if !f.version && len(f.inputs) == 0 {
		fs.Usage()
		return nil, ErrNoInput
	}
	if f.output != "" && len(f.inputs) > 1 {
		return nil, errors.New("--output is only valid with a single input file")
	}
	return f, nil
}
