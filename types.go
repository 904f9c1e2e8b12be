package mdexport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-mdexport/internal/config"
)

// Export format constants.
const (
	FormatHTML = "html"
	FormatPDF  = "pdf" // declared for dispatch, not implemented
)

// HTMLExportOptions controls the HTML export mode.
type HTMLExportOptions struct {
	EmbedStyles       bool // Inline stylesheet resources as data URIs
	CompletePage      bool // Rewrite body resources (embed or relink)
	EmbedImages       bool // With CompletePage: embed images instead of copying
	AddOutlinePanel   bool // Add a heading outline panel to the output
	UseMimeHTMLFormat bool // Unsupported; rejected before rendering starts
}

// ExportOptions selects the target format and rendering styles for one
// export session.
type ExportOptions struct {
	Format string            // "html" is the only implemented format
	HTML   *HTMLExportOptions // Required when Format is FormatHTML

	// Style references: a file path, an embedded style name, or empty for
	// the configured defaults.
	RenderingStyleFile       string
	SyntaxHighlightStyleFile string

	// TransparentBackground renders without painting a page background.
	TransparentBackground bool
}

// Validate checks option consistency. UseMimeHTMLFormat is rejected here so
// an unsupported configuration fails before any rendering work begins.
func (o *ExportOptions) Validate() error {
	switch o.Format {
	case FormatHTML:
		if o.HTML == nil {
			return fmt.Errorf("%w: HTML export requires HTML options", ErrUnsupportedFormat)
		}
		if o.HTML.UseMimeHTMLFormat {
			return ErrMimeHTMLUnsupported
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, o.Format)
	}
}

// Document is the file abstraction the exporter consumes: content bytes, a
// path for base-URL resolution, and a content-type check.
type Document interface {
	// Path returns the document's filesystem path.
	Path() string
	// Read returns the raw document text.
	Read() (string, error)
	// IsMarkdown reports whether the document's content type is markdown.
	IsMarkdown() bool
}

// FileDocument is an os-backed Document.
type FileDocument struct {
	path string
}

// NewFileDocument creates a Document for a file on disk.
func NewFileDocument(path string) *FileDocument {
	return &FileDocument{path: path}
}

func (d *FileDocument) Path() string { return d.path }

func (d *FileDocument) Read() (string, error) {
	data, err := os.ReadFile(d.path) // #nosec G304 -- document path is caller-provided
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadDocument, err)
	}
	return string(data), nil
}

// markdownExtensions lists content types recognized as markdown.
var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".mkd":      true,
	".mdown":    true,
}

func (d *FileDocument) IsMarkdown() bool {
	return markdownExtensions[strings.ToLower(filepath.Ext(d.path))]
}

// Compile-time interface check.
var _ Document = (*FileDocument)(nil)

// Timing defaults for the export wait loops.
const (
	defaultTimeout      = 30 * time.Second
	defaultPollInterval = 100 * time.Millisecond
	defaultSettleDelay  = 200 * time.Millisecond
)

// exporterConfig holds internal configuration for an Exporter.
type exporterConfig struct {
	timeout        time.Duration
	pollInterval   time.Duration
	settleDelay    time.Duration
	backendFactory BackendFactory
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithTimeout bounds the readiness and content waits. A backend that never
// reports readiness turns into an export failure instead of a hang.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdexport: WithTimeout duration must be positive")
	}
	return func(e *Exporter) {
		e.cfg.timeout = d
	}
}

// WithPollInterval sets the cancellation poll slice for the wait loops.
// Panics if d <= 0.
func WithPollInterval(d time.Duration) Option {
	if d <= 0 {
		panic("mdexport: WithPollInterval duration must be positive")
	}
	return func(e *Exporter) {
		e.cfg.pollInterval = d
	}
}

// WithSettleDelay sets the extra wait applied after both readiness signals
// fire. The delay absorbs backend-internal completion that has no explicit
// signal; it is a documented heuristic, not a correctness guarantee.
// Zero disables it. Panics if d < 0.
func WithSettleDelay(d time.Duration) Option {
	if d < 0 {
		panic("mdexport: WithSettleDelay duration must not be negative")
	}
	return func(e *Exporter) {
		e.cfg.settleDelay = d
	}
}

// WithLogger sets the logger used for export diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(e *Exporter) {
		if log != nil {
			e.log = log
		}
	}
}

// WithConfig sets the application configuration (app name, style files,
// export defaults).
func WithConfig(cfg *config.Config) Option {
	return func(e *Exporter) {
		if cfg != nil {
			e.appCfg = cfg
		}
	}
}

// WithBackendFactory overrides how render backends are constructed. Used to
// select the local renderer or to inject fakes in tests.
func WithBackendFactory(factory BackendFactory) Option {
	return func(e *Exporter) {
		if factory != nil {
			e.cfg.backendFactory = factory
		}
	}
}
