// Package rewrite rewrites resource references inside rendered HTML and CSS
// fragments: stylesheet url() values become data URIs, and <img> tags are
// either inlined as data URIs or relinked to files copied next to the
// exported document.
//
// Every pass is a single left-to-right scan. The cursor only ever advances:
// already-processed text is never rescanned, and neither is text just
// spliced in by a replacement, so a partial rewrite can never corrupt the
// fragment. A reference that cannot be resolved is left byte-for-byte
// intact and scanning continues.
package rewrite

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Patterns are a compatibility contract with existing export templates:
// the image pattern captures the attributes before src, the URL value and
// the attributes after src; the style pattern only matches file: and qrc:
// scheme values terminated by a semicolon.
var (
	imgTagPattern   = regexp.MustCompile(`<img ([^>]*)src="([^"]+)"([^>]*)>`)
	styleURLPattern = regexp.MustCompile(`\burl\("((?:file|qrc):[^")]+)"\);`)
)

// Rewriter runs the rewrite passes using a Resolver for resource access.
type Rewriter struct {
	res *Resolver
	log *zap.Logger
}

// New creates a Rewriter. A nil logger is replaced with a no-op one.
func New(res *Resolver, log *zap.Logger) *Rewriter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Rewriter{res: res, log: log}
}

// EmbedStyleResources replaces file: and qrc: url() references in CSS with
// data URIs. Returns the rewritten text and whether anything changed.
// Running the pass on its own output is a no-op: data URIs no longer match
// the scheme whitelist.
func (w *Rewriter) EmbedStyleResources(css string) (string, bool) {
	altered := false
	var out strings.Builder
	pos := 0

	for pos < len(css) {
		loc := styleURLPattern.FindStringSubmatchIndex(css[pos:])
		if loc == nil {
			break
		}
		matchStart, matchEnd := pos+loc[0], pos+loc[1]
		ref := css[pos+loc[2] : pos+loc[3]]

		out.WriteString(css[pos:matchStart])
		dataURI := w.res.ToDataURI(parseURL(ref), false)
		if dataURI == "" {
			// Unresolvable: keep the reference untouched.
			out.WriteString(css[matchStart:matchEnd])
		} else {
			out.WriteString("url('" + dataURI + "');")
			altered = true
		}
		pos = matchEnd
	}
	out.WriteString(css[pos:])
	return out.String(), altered
}

// EmbedBodyResources replaces <img> src values with data URIs resolved
// against base. With an empty base the fragment is returned unchanged.
func (w *Rewriter) EmbedBodyResources(base *url.URL, html string) (string, bool) {
	return w.rewriteImages(base, html, func(src *url.URL) (string, bool) {
		dataURI := w.res.ToDataURI(src, true)
		if dataURI == "" {
			return "", false
		}
		return "src='" + dataURI + "'", true
	})
}

// RelinkBodyResources copies <img> resources into folder and relinks the
// tags to a "./<folder-name>/<file-name>" relative path. The folder is
// created on the first successful copy. With an empty base the fragment is
// returned unchanged.
func (w *Rewriter) RelinkBodyResources(base *url.URL, folder, html string) (string, bool) {
	return w.rewriteImages(base, html, func(src *url.URL) (string, bool) {
		target := w.res.CopyResource(src, folder)
		if target == "" {
			return "", false
		}
		return `src="` + resourceRelativePath(target) + `"`, true
	})
}

// rewriteImages scans for image tags and applies replace to each resolved
// src URL. replace returns the new src attribute text and whether the tag
// should be rewritten.
func (w *Rewriter) rewriteImages(base *url.URL, html string, replace func(src *url.URL) (string, bool)) (string, bool) {
	altered := false
	if base == nil || base.String() == "" {
		return html, altered
	}

	var out strings.Builder
	pos := 0

	for pos < len(html) {
		loc := imgTagPattern.FindStringSubmatchIndex(html[pos:])
		if loc == nil {
			break
		}
		matchStart, matchEnd := pos+loc[0], pos+loc[1]
		before := html[pos+loc[2] : pos+loc[3]]
		src := html[pos+loc[4] : pos+loc[5]]
		after := html[pos+loc[6] : pos+loc[7]]

		out.WriteString(html[pos:matchStart])

		srcURL := resolveAgainst(base, src)
		if src == "" || srcURL == nil {
			out.WriteString(html[matchStart:matchEnd])
			pos = matchEnd
			continue
		}

		if newSrc, ok := replace(srcURL); ok {
			out.WriteString("<img " + before + newSrc + after + ">")
			altered = true
		} else {
			out.WriteString(html[matchStart:matchEnd])
		}
		pos = matchEnd
	}
	out.WriteString(html[pos:])
	return out.String(), altered
}

// parseURL parses a raw reference, returning nil when it is not a URL.
func parseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	return u
}

// resolveAgainst resolves a possibly-relative reference against base.
func resolveAgainst(base *url.URL, ref string) *url.URL {
	parsed, err := url.Parse(ref)
	if err != nil {
		return nil
	}
	return base.ResolveReference(parsed)
}

// resourceRelativePath builds the "./<parent>/<name>" form from the last
// two segments of a copied resource's path.
func resourceRelativePath(target string) string {
	slashed := filepath.ToSlash(target)
	idx := strings.LastIndex(slashed, "/")
	if idx <= 0 {
		return "./" + slashed
	}
	idx2 := strings.LastIndex(slashed[:idx], "/")
	if idx2 < 0 {
		return "./" + slashed
	}
	return "." + slashed[idx2:]
}

// FileURL converts a local file path into a file: URL suitable as a rewrite
// base location.
func FileURL(path string) *url.URL {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
}
