package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	mdexport "github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/config"
	"github.com/alnah/go-mdexport/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Exit codes, following Unix conventions.
const (
	exitSuccess = 0
	exitGeneral = 1
	exitUsage   = 2
)

func main() {
	flags, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}

	if flags.version {
		fmt.Println("mdexport " + Version)
		os.Exit(exitSuccess)
	}

	log := newLogger(flags.verbose)
	defer func() { _ = log.Sync() }()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		log.Debug(fmt.Sprintf(format, args...))
	}))

	if err := run(flags, log); err != nil {
		log.Error("export failed", zap.Error(err))
		if hint := hintFor(err); hint != "" {
			fmt.Fprintln(os.Stderr, strings.TrimPrefix(hint, "\n"))
		}
		os.Exit(exitGeneral)
	}
}

// hintFor maps well-known failures to actionable CLI hints.
func hintFor(err error) string {
	switch {
	case errors.Is(err, mdexport.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, mdexport.ErrExportTimeout):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths("mdexport"))
	default:
		return ""
	}
}

// newLogger builds a console logger; verbose enables debug output.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// run exports every input file, in parallel when more than one worker is
// available.
func run(flags *cliFlags, log *zap.Logger) error {
	cfg, err := loadConfig(flags.config)
	if err != nil {
		return err
	}

	opts := buildOptions(flags)
	factory := backendFactory(flags.backend)

	poolSize := resolvePoolSize(flags.workers, len(flags.inputs))
	log.Debug("starting batch export",
		zap.Int("inputs", len(flags.inputs)),
		zap.Int("workers", poolSize))

	pool := NewExporterPool(poolSize, func() (*mdexport.Exporter, error) {
		exp := mdexport.NewExporter(
			mdexport.WithConfig(cfg),
			mdexport.WithLogger(log),
			mdexport.WithTimeout(flags.timeout),
			mdexport.WithBackendFactory(factory),
		)
		if err := exp.Prepare(opts); err != nil {
			return nil, err
		}
		return exp, nil
	})
	defer func() { _ = pool.Close() }()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		lastErr error
	)

	for _, input := range flags.inputs {
		wg.Add(1)
		go func(input string) {
			defer wg.Done()

			outputPath := resolveOutputPath(flags, input)
			if err := exportOne(pool, opts, input, outputPath); err != nil {
				log.Error("export failed",
					zap.String("input", input),
					zap.Error(err))
				mu.Lock()
				lastErr = err
				mu.Unlock()
				return
			}
			log.Info("exported",
				zap.String("input", input),
				zap.String("output", outputPath))
		}(input)
	}
	wg.Wait()

	return lastErr
}

// exportOne borrows an exporter from the pool for a single document.
func exportOne(pool *ExporterPool, opts mdexport.ExportOptions, input, outputPath string) error {
	exp, err := pool.Acquire()
	if err != nil {
		return err
	}
	defer pool.Release(exp)

	doc := mdexport.NewFileDocument(input)
	if !doc.IsMarkdown() {
		return fmt.Errorf("not a markdown file: %s", input)
	}
	return exp.DoExport(opts, doc, outputPath)
}

// loadConfig loads the named config, or defaults when none is given.
func loadConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		cfg, err := config.Load("mdexport")
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return config.Default(), nil
			}
			return nil, err
		}
		return cfg, nil
	}
	return config.Load(nameOrPath)
}

// buildOptions maps CLI flags to export options.
func buildOptions(flags *cliFlags) mdexport.ExportOptions {
	return mdexport.ExportOptions{
		Format: mdexport.FormatHTML,
		HTML: &mdexport.HTMLExportOptions{
			EmbedStyles:       flags.embedStyles,
			CompletePage:      flags.completePage,
			EmbedImages:       flags.embedImages,
			AddOutlinePanel:   flags.outline,
			UseMimeHTMLFormat: flags.mimeHTML,
		},
		RenderingStyleFile:       flags.style,
		SyntaxHighlightStyleFile: flags.highlightStyle,
		TransparentBackground:    flags.transparentBg,
	}
}

// backendFactory selects the render backend implementation.
func backendFactory(name string) mdexport.BackendFactory {
	if name == "local" {
		return mdexport.NewLocalBackend
	}
	return mdexport.NewChromiumBackend
}

// resolveOutputPath decides where an input's export lands.
func resolveOutputPath(flags *cliFlags, input string) string {
	if flags.output != "" {
		return flags.output
	}
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".html"
	if flags.outputDir != "" {
		return filepath.Join(flags.outputDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}
