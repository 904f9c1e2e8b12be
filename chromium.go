package mdexport

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alnah/go-mdexport/internal/config"
	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/process"
	"github.com/alnah/go-mdexport/internal/render"
	tpl "github.com/alnah/go-mdexport/internal/template"
)

// loadTimeout bounds the page load and idle waits inside the backend. The
// coordinator applies its own overall timeout on top.
const loadTimeout = 30 * time.Second

// extractContentJS pulls the head, collected style blocks and body from the
// rendered page.
const extractContentJS = `() => {
	const styles = Array.from(document.querySelectorAll('style'))
		.map(s => s.textContent).join('\n');
	const head = document.head.cloneNode(true);
	head.querySelectorAll('style, title').forEach(n => n.remove());
	return {
		head: head.innerHTML,
		style: styles,
		body: document.body.innerHTML,
	};
}`

// chromiumBackend renders the preview document in headless Chrome via
// go-rod. Rod automatically downloads Chromium on first run if not found.
// The browser normalizes the DOM, executes scripts shipped in the skeleton,
// and hands back the final head/style/body fragments.
type chromiumBackend struct {
	events   BackendEvents
	renderer *render.Renderer
	log      *zap.Logger
	content  chan ContentFragments

	mu         sync.Mutex
	browser    *rod.Browser
	launcher   *launcher.Launcher
	page       *rod.Page
	tmpCleanup func()
	closed     bool
}

// NewChromiumBackend creates a headless-Chrome render backend.
func NewChromiumBackend(events BackendEvents, cfg *config.Config, log *zap.Logger) (RenderBackend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	codeStyle := config.DefaultCodeBlockStyle
	if cfg != nil && cfg.Markdown.CodeBlockStyle != "" {
		codeStyle = cfg.Markdown.CodeBlockStyle
	}
	return &chromiumBackend{
		events:   events,
		renderer: render.New(codeStyle),
		log:      log,
		content:  make(chan ContentFragments, 1),
	}, nil
}

// ensureBrowser lazily connects to the browser.
func (b *chromiumBackend) ensureBrowser() error {
	if b.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	b.browser = browser
	b.launcher = l
	return nil
}

func (b *chromiumBackend) Start(skeleton string, base *url.URL, markdown string) {
	// A prepared session serves exports back to back; release the previous
	// export's page and temp file before this one claims the slots.
	b.mu.Lock()
	prevPage := b.page
	b.page = nil
	prevCleanup := b.tmpCleanup
	b.tmpCleanup = nil
	b.mu.Unlock()
	if prevPage != nil {
		_ = prevPage.Close()
	}
	if prevCleanup != nil {
		prevCleanup()
	}

	go func() {
		body, err := b.renderer.Render(context.Background(), markdown)
		if err != nil {
			b.events.Failed(err)
			return
		}

		page := tpl.FillBodyContent(skeleton, body)
		tmpPath, cleanup, err := fileutil.WriteTempFile(page, "html")
		if err != nil {
			b.events.Failed(err)
			return
		}

		b.mu.Lock()
		if b.closed {
			b.mu.Unlock()
			cleanup()
			return
		}
		b.tmpCleanup = cleanup
		if err := b.ensureBrowser(); err != nil {
			b.mu.Unlock()
			b.events.Failed(err)
			return
		}
		browser := b.browser
		b.mu.Unlock()

		p, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
		if err != nil {
			b.events.Failed(fmt.Errorf("%w: %v", ErrPageCreate, err))
			return
		}

		b.mu.Lock()
		b.page = p
		b.mu.Unlock()

		if err := p.Timeout(loadTimeout).WaitLoad(); err != nil {
			b.events.Failed(fmt.Errorf("%w: %v", ErrPageLoad, err))
			return
		}
		b.events.LoadFinished()

		// Scripts in the skeleton may keep working after the load event;
		// treat network/JS quiescence as work completion.
		if err := p.WaitIdle(loadTimeout); err != nil {
			b.events.Failed(fmt.Errorf("%w: %v", ErrPageLoad, err))
			return
		}
		b.events.WorkFinished()
	}()
}

func (b *chromiumBackend) RequestContent() {
	go func() {
		b.mu.Lock()
		page := b.page
		b.mu.Unlock()

		frags := ContentFragments{}
		if page != nil {
			obj, err := page.Eval(extractContentJS)
			if err != nil {
				b.log.Debug("content extraction failed", zap.Error(err))
			} else {
				frags.Head = obj.Value.Get("head").Str()
				frags.Style = obj.Value.Get("style").Str()
				frags.Body = obj.Value.Get("body").Str()
			}
		}

		// Buffered channel; at most one delivery per request. An empty body
		// is the failure signal the coordinator acts on.
		select {
		case b.content <- frags:
		default:
		}
	}()
}

func (b *chromiumBackend) Content() <-chan ContentFragments {
	return b.content
}

func (b *chromiumBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true

	var err error
	if b.page != nil {
		err = b.page.Close()
		b.page = nil
	}
	if b.browser != nil {
		err = multierr.Append(err, b.browser.Close())
		b.browser = nil
	}
	if b.launcher != nil {
		// The browser close above tears down the DevTools session; the
		// group kill reaps any renderer children the launcher leaves behind.
		pid := b.launcher.PID()
		b.launcher.Kill()
		process.KillProcessGroup(pid)
		b.launcher = nil
	}
	if b.tmpCleanup != nil {
		b.tmpCleanup()
		b.tmpCleanup = nil
	}
	return err
}

// Compile-time interface check.
var _ RenderBackend = (*chromiumBackend)(nil)
