package mdexport

import (
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-mdexport/internal/assets"
	"github.com/alnah/go-mdexport/internal/config"
	"github.com/alnah/go-mdexport/internal/rewrite"
	tpl "github.com/alnah/go-mdexport/internal/template"
)

// Exporter coordinates one export session: it owns a single render backend,
// drives the readiness wait, and hands rendered fragments to the rewriter
// and assembler. At most one export may be in flight per Exporter; a
// concurrent DoExport is a programming error, not a queued request.
type Exporter struct {
	cfg    exporterConfig
	log    *zap.Logger
	appCfg *config.Config

	backend         RenderBackend
	previewSkeleton string
	exportSkeleton  string

	state     readiness
	exporting atomic.Bool
	stopped   atomic.Bool
}

// NewExporter creates an Exporter with default configuration. Call Prepare
// before DoExport.
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		cfg: exporterConfig{
			timeout:        defaultTimeout,
			pollInterval:   defaultPollInterval,
			settleDelay:    defaultSettleDelay,
			backendFactory: NewChromiumBackend,
		},
		log:    zap.NewNop(),
		appCfg: config.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Prepare builds the preview and export skeletons for the given options and
// constructs a fresh render backend wired to the readiness state. Each
// Prepare gets its own backend; backends are never reused across sessions.
// Panics if a backend is already owned or an export is in progress.
func (e *Exporter) Prepare(opts ExportOptions) error {
	if e.backend != nil || e.exporting.Load() {
		panic("mdexport: Prepare called while a session is active")
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	preview, err := tpl.GeneratePreview(
		e.appCfg.Markdown,
		opts.RenderingStyleFile,
		opts.SyntaxHighlightStyleFile,
		opts.TransparentBackground,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateBuild, err)
	}

	addOutline := opts.HTML != nil && opts.HTML.AddOutlinePanel
	export, err := tpl.GenerateExport(addOutline)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateBuild, err)
	}

	backend, err := e.cfg.backendFactory(BackendEvents{
		LoadFinished: e.state.MarkLoadFinished,
		WorkFinished: e.state.MarkWorkFinished,
		Failed:       e.state.Fail,
	}, e.appCfg, e.log)
	if err != nil {
		return err
	}

	e.previewSkeleton = preview
	e.exportSkeleton = export
	e.backend = backend
	return nil
}

// Close tears down the session's backend and skeletons. After Close a new
// Prepare starts a fresh session. Panics if an export is in progress.
func (e *Exporter) Close() error {
	if e.exporting.Load() {
		panic("mdexport: Close called with an export in progress")
	}
	var err error
	if e.backend != nil {
		err = e.backend.Close()
		e.backend = nil
	}
	e.previewSkeleton = ""
	e.exportSkeleton = ""
	return err
}

// Stop requests cancellation of an in-flight export. Idempotent; it has no
// effect outside an active export.
func (e *Exporter) Stop() {
	e.stopped.Store(true)
}

// DoExport renders doc and writes the export to outputPath. It returns only
// after completion, failure or cancellation. Cancellation surfaces as
// ErrExportCancelled so callers can distinguish a user stop from a render
// or write failure.
//
// Preconditions (programming errors, enforced by panic): Prepare was
// called, doc is markdown, and no other export is in progress on this
// Exporter.
func (e *Exporter) DoExport(opts ExportOptions, doc Document, outputPath string) error {
	if e.backend == nil {
		panic("mdexport: DoExport called before Prepare")
	}
	if !doc.IsMarkdown() {
		panic("mdexport: DoExport requires a markdown document")
	}
	if !e.exporting.CompareAndSwap(false, true) {
		panic("mdexport: export already in progress")
	}
	defer e.exporting.Store(false)

	e.stopped.Store(false)

	// Unsupported configurations fail before any rendering work begins.
	if err := opts.Validate(); err != nil {
		return err
	}

	e.state.Reset()

	text, err := doc.Read()
	if err != nil {
		return err
	}

	base := rewrite.FileURL(doc.Path())
	e.backend.Start(e.previewSkeleton, base, text)

	if err := e.waitReady(doc); err != nil {
		return err
	}

	// Extra settle time for backend-internal async completion that has no
	// explicit signal. A heuristic, not a guarantee.
	time.Sleep(e.cfg.settleDelay)
	if e.stopped.Load() {
		return ErrExportCancelled
	}

	switch opts.Format {
	case FormatHTML:
		return e.doExportHTML(*opts.HTML, doc, base, outputPath)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
}

// waitReady blocks until both readiness signals fire, polling cancellation
// once per slice.
func (e *Exporter) waitReady(doc Document) error {
	deadline := time.Now().Add(e.cfg.timeout)
	for e.state.State() != stateReady {
		time.Sleep(e.cfg.pollInterval)

		if e.stopped.Load() {
			return ErrExportCancelled
		}
		if e.state.State() == stateFailed {
			e.log.Warn("render backend failed",
				zap.String("path", doc.Path()),
				zap.Error(e.state.Err()))
			return fmt.Errorf("%w: %s", ErrRenderFailed, doc.Path())
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: no readiness after %s", ErrExportTimeout, e.cfg.timeout)
		}
	}
	return nil
}

// doExportHTML requests content extraction and writes the document once the
// fragments arrive. The buffered content channel guarantees at most one
// delivery per request, replacing the manual subscribe/unsubscribe dance a
// callback API would need.
func (e *Exporter) doExportHTML(opt HTMLExportOptions, doc Document, base *url.URL, outputPath string) error {
	content := e.backend.Content()

	// A cancelled or timed-out export can leave its late delivery sitting in
	// the buffer; drop it so this request only ever sees its own fragments.
	select {
	case <-content:
	default:
	}

	e.backend.RequestContent()

	ticker := time.NewTicker(e.cfg.pollInterval)
	defer ticker.Stop()
	deadline := time.After(e.cfg.timeout)

	for {
		select {
		case frags := <-content:
			if frags.Body == "" {
				e.log.Warn("render produced empty body", zap.String("path", doc.Path()))
				return fmt.Errorf("%w: %s", ErrEmptyBody, doc.Path())
			}
			if e.stopped.Load() {
				return ErrExportCancelled
			}
			return e.newAssembler().writeHTMLFile(outputPath, base, frags, opt)

		case <-ticker.C:
			if e.stopped.Load() {
				return ErrExportCancelled
			}

		case <-deadline:
			return fmt.Errorf("%w: no content after %s", ErrExportTimeout, e.cfg.timeout)
		}
	}
}

// newAssembler builds the assembler for the current session.
func (e *Exporter) newAssembler() *assembler {
	return &assembler{
		skeleton: e.exportSkeleton,
		appName:  e.appCfg.AppName(),
		rewriter: rewrite.New(rewrite.NewResolver(assets.Content(), e.log), e.log),
		log:      e.log,
	}
}
