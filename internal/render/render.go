// Package render converts markdown text into an HTML body fragment.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// ErrRender reports a markdown conversion failure.
var ErrRender = errors.New("markdown rendering failed")

// Renderer converts markdown to an HTML body fragment using goldmark.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer with GFM extensions, footnotes, auto heading IDs
// and chroma-based syntax highlighting. Unknown code block styles fall back
// to chroma's default.
func New(codeBlockStyle string) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle(resolveCodeStyle(codeBlockStyle)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Anchor targets for the outline panel
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(), // Self-closing tags
		),
	)
	return &Renderer{md: md}
}

// Render converts markdown content to a body fragment. Supports context
// cancellation via goroutine + select since goldmark doesn't natively
// support context.
func (r *Renderer) Render(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		body string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(Normalize(content)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRender, err)}
			return
		}
		done <- result{body: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.body, res.err
	}
}

// Normalize converts Windows and old Mac line endings to Unix so byte
// offsets stay stable across the rewrite passes.
func Normalize(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

// resolveCodeStyle validates a chroma style name, falling back to the
// library default for unknown names.
func resolveCodeStyle(name string) string {
	if _, ok := chromastyles.Registry[name]; ok {
		return name
	}
	return chromastyles.Fallback.Name
}
