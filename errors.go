package mdexport

import "errors"

// Sentinel errors for export operations.
var (
	// ErrUnsupportedFormat reports a target format with no implementation.
	ErrUnsupportedFormat = errors.New("export format not supported")

	// ErrMimeHTMLUnsupported reports the MIME HTML (.mht) option, which must
	// fail fast instead of being silently ignored.
	ErrMimeHTMLUnsupported = errors.New("MIME HTML format not supported")

	// ErrExportCancelled reports an export aborted by Stop. Distinct from
	// render failures so callers can react differently to a user stop.
	ErrExportCancelled = errors.New("export cancelled")

	// ErrRenderFailed reports a backend load or render failure.
	ErrRenderFailed = errors.New("render backend failed")

	// ErrEmptyBody reports a render that produced no body content.
	ErrEmptyBody = errors.New("render produced empty body")

	// ErrExportTimeout reports a readiness or content wait that never
	// completed within the configured timeout.
	ErrExportTimeout = errors.New("export timed out")

	// ErrWriteOutput reports a failure writing the exported file.
	ErrWriteOutput = errors.New("failed to write output file")

	// ErrReadDocument reports a failure reading the source document.
	ErrReadDocument = errors.New("failed to read source document")

	// Backend construction errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// ErrTemplateBuild reports a failure generating the preview or export
	// template during Prepare.
	ErrTemplateBuild = errors.New("failed to build export template")
)
