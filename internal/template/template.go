// Package template generates and fills the HTML skeletons used for live
// preview rendering and for export output. Skeletons carry named
// placeholders that are replaced one at a time; leftover placeholders are
// stripped before a document is written out.
package template

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/alnah/go-mdexport/internal/assets"
	"github.com/alnah/go-mdexport/internal/config"
	"github.com/alnah/go-mdexport/internal/fileutil"
)

// Placeholder markers recognized in HTML skeletons.
const (
	PlaceholderTitle   = "${TITLE}"
	PlaceholderHead    = "${HEAD_CONTENT}"
	PlaceholderStyle   = "${STYLE_CONTENT}"
	PlaceholderBody    = "${BODY_CONTENT}"
	PlaceholderOutline = "${OUTLINE_CONTENT}"
)

// allPlaceholders lists every marker Strip removes.
var allPlaceholders = []string{
	PlaceholderTitle,
	PlaceholderHead,
	PlaceholderStyle,
	PlaceholderBody,
	PlaceholderOutline,
}

// FillTitle replaces the title placeholder with an escaped title.
func FillTitle(tmpl, title string) string {
	return strings.Replace(tmpl, PlaceholderTitle, html.EscapeString(title), 1)
}

// FillHeadContent replaces the head placeholder with raw head markup.
func FillHeadContent(tmpl, head string) string {
	return strings.Replace(tmpl, PlaceholderHead, head, 1)
}

// FillStyleContent replaces the style placeholder with raw CSS.
func FillStyleContent(tmpl, style string) string {
	return strings.Replace(tmpl, PlaceholderStyle, style, 1)
}

// FillBodyContent replaces the body placeholder with raw body markup.
func FillBodyContent(tmpl, body string) string {
	return strings.Replace(tmpl, PlaceholderBody, body, 1)
}

// FillOutlineContent replaces the outline placeholder with outline markup.
func FillOutlineContent(tmpl, outline string) string {
	return strings.Replace(tmpl, PlaceholderOutline, outline, 1)
}

// Strip removes any placeholders left unfilled so they never leak into
// written documents.
func Strip(tmpl string) string {
	for _, p := range allPlaceholders {
		tmpl = strings.ReplaceAll(tmpl, p, "")
	}
	return tmpl
}

// StyleContent returns the CSS between the first <style> and </style> tags,
// or empty when the document carries no style block.
func StyleContent(doc string) string {
	lower := strings.ToLower(doc)
	start := strings.Index(lower, "<style>")
	if start == -1 {
		return ""
	}
	start += len("<style>")
	end := strings.Index(lower[start:], "</style>")
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(doc[start : start+end])
}

// transparentBackgroundCSS overrides the page background when the export
// should not paint one.
const transparentBackgroundCSS = `
body {
  background: transparent !important;
}
`

// GeneratePreview builds the live-preview skeleton: the preview template
// with the rendering and highlight styles resolved and baked into its style
// block. The body placeholder stays open for the render backend to fill.
func GeneratePreview(cfg config.MarkdownConfig, styleFile, highlightFile string, transparentBg bool) (string, error) {
	tmpl, err := assets.Template("preview")
	if err != nil {
		return "", err
	}

	css, err := resolveStyles(cfg, styleFile, highlightFile)
	if err != nil {
		return "", err
	}
	if transparentBg {
		css += transparentBackgroundCSS
	}

	tmpl = FillTitle(tmpl, "preview")
	tmpl = FillHeadContent(tmpl, `<meta name="generator" content="`+config.DefaultAppName+`">`)
	tmpl = FillStyleContent(tmpl, css)
	return tmpl, nil
}

// GenerateExport builds the export skeleton. Title, head, style and body
// placeholders stay open for the assembler; the outline placeholder is
// removed up front unless an outline panel was requested.
func GenerateExport(addOutlinePanel bool) (string, error) {
	tmpl, err := assets.Template("export")
	if err != nil {
		return "", err
	}
	if !addOutlinePanel {
		tmpl = strings.Replace(tmpl, PlaceholderOutline+"\n", "", 1)
		tmpl = strings.Replace(tmpl, PlaceholderOutline, "", 1)
	}
	return tmpl, nil
}

// resolveStyles loads the rendering and highlight stylesheets, preferring
// per-export overrides over configured files over embedded defaults.
func resolveStyles(cfg config.MarkdownConfig, styleFile, highlightFile string) (string, error) {
	if styleFile == "" {
		styleFile = cfg.RenderingStyleFile
	}
	if highlightFile == "" {
		highlightFile = cfg.SyntaxHighlightStyleFile
	}

	style, err := loadStyle(styleFile, "default")
	if err != nil {
		return "", err
	}
	highlight, err := loadStyle(highlightFile, "highlight")
	if err != nil {
		return "", err
	}
	return style + "\n" + highlight, nil
}

// loadStyle resolves a style reference: a file path is read from disk, a
// bare name is loaded from the embedded styles, and empty falls back to the
// named embedded default.
func loadStyle(ref, fallback string) (string, error) {
	if ref == "" {
		return assets.Style(fallback)
	}
	if fileutil.IsFilePath(ref) {
		data, err := os.ReadFile(ref) // #nosec G304 -- style path comes from configuration
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", ref, err)
		}
		return string(data), nil
	}
	return assets.Style(ref)
}
