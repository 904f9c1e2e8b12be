package mdexport

import (
	"net/url"

	"go.uber.org/zap"

	"github.com/alnah/go-mdexport/internal/config"
)

// ContentFragments holds the markup pieces a backend emits once per content
// request. An empty Body signals a failed render.
type ContentFragments struct {
	Head  string
	Style string
	Body  string
}

// BackendEvents carries the completion callbacks a backend fires while
// rendering. LoadFinished and WorkFinished may fire in either order; Failed
// fires at most once and supersedes both. Callbacks run on backend
// goroutines and must be safe to call from there.
type BackendEvents struct {
	LoadFinished func()
	WorkFinished func()
	Failed       func(err error)
}

// RenderBackend is the embedded engine that turns a styled document
// skeleton plus raw markdown into head/style/body fragments. A backend
// instance is exclusively owned by one Exporter and serves one Prepare
// session; it is never reused across sessions.
type RenderBackend interface {
	// Start begins loading the skeleton and markdown; it returns
	// immediately and reports progress through the BackendEvents passed at
	// construction. base is the location relative resource URLs resolve
	// against.
	Start(skeleton string, base *url.URL, markdown string)

	// RequestContent asks for the rendered fragments. At most one
	// ContentFragments value is delivered on Content per request.
	RequestContent()

	// Content returns the channel content-ready results arrive on. The
	// channel is buffered so a late consumer cannot block the backend.
	Content() <-chan ContentFragments

	// Close releases backend resources.
	Close() error
}

// BackendFactory constructs a fresh backend for one export session.
type BackendFactory func(events BackendEvents, cfg *config.Config, log *zap.Logger) (RenderBackend, error)
