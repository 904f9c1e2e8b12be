package mdexport

import (
	"context"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-mdexport/internal/config"
	"github.com/alnah/go-mdexport/internal/render"
	tpl "github.com/alnah/go-mdexport/internal/template"
)

// localBackend renders markdown in-process with goldmark. It needs no
// browser: the head and style fragments come straight from the preview
// skeleton, the body from the markdown renderer.
type localBackend struct {
	events   BackendEvents
	renderer *render.Renderer
	log      *zap.Logger
	content  chan ContentFragments

	mu       sync.Mutex
	skeleton string
	body     string
	cancel   context.CancelFunc
}

// NewLocalBackend creates a browserless render backend.
func NewLocalBackend(events BackendEvents, cfg *config.Config, log *zap.Logger) (RenderBackend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	codeStyle := config.DefaultCodeBlockStyle
	if cfg != nil && cfg.Markdown.CodeBlockStyle != "" {
		codeStyle = cfg.Markdown.CodeBlockStyle
	}
	return &localBackend{
		events:   events,
		renderer: render.New(codeStyle),
		log:      log,
		content:  make(chan ContentFragments, 1),
	}, nil
}

func (b *localBackend) Start(skeleton string, base *url.URL, markdown string) {
	ctx, cancel := context.WithCancel(context.Background())

	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
	}
	b.skeleton = skeleton
	b.cancel = cancel
	b.mu.Unlock()

	// The skeleton is immediately usable, so loading completes up front;
	// render work follows asynchronously.
	b.events.LoadFinished()

	go func() {
		body, err := b.renderer.Render(ctx, markdown)
		if err != nil {
			b.log.Debug("local render failed", zap.Error(err))
			b.events.Failed(err)
			return
		}
		b.mu.Lock()
		b.body = body
		b.mu.Unlock()
		b.events.WorkFinished()
	}()
}

func (b *localBackend) RequestContent() {
	b.mu.Lock()
	frags := ContentFragments{
		Style: tpl.StyleContent(b.skeleton),
		Body:  b.body,
	}
	b.mu.Unlock()

	// Buffered channel; at most one delivery per request.
	select {
	case b.content <- frags:
	default:
	}
}

func (b *localBackend) Content() <-chan ContentFragments {
	return b.content
}

func (b *localBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	return nil
}

// Compile-time interface check.
var _ RenderBackend = (*localBackend)(nil)
