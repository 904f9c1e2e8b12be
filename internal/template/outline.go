package template

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// heading is one entry extracted from a body fragment.
type heading struct {
	Level int    // 1-6
	ID    string // anchor id, may be empty
	Text  string // plain text content
}

// BuildOutline renders a nested outline panel from the h1-h6 headings of a
// body fragment. Returns empty when the fragment has no headings.
func BuildOutline(body string) string {
	headings := extractHeadings(body)
	if len(headings) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="outline-panel">`)

	var open []int // stack of levels with an open <ul>
	for _, h := range headings {
		for len(open) > 0 && open[len(open)-1] >= h.Level {
			buf.WriteString("</li></ul>")
			open = open[:len(open)-1]
		}
		buf.WriteString("<ul>")
		open = append(open, h.Level)

		buf.WriteString("<li>")
		if h.ID != "" {
			buf.WriteString(`<a href="#`)
			writeEscaped(&buf, h.ID)
			buf.WriteString(`">`)
			writeEscaped(&buf, h.Text)
			buf.WriteString("</a>")
		} else {
			buf.WriteString("<span>")
			writeEscaped(&buf, h.Text)
			buf.WriteString("</span>")
		}
	}
	for range open {
		buf.WriteString("</li></ul>")
	}
	buf.WriteString("</nav>")
	return buf.String()
}

// extractHeadings parses a body fragment and collects its headings in
// document order.
func extractHeadings(body string) []heading {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(body), context)
	if err != nil {
		return nil
	}

	var headings []heading
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				headings = append(headings, heading{
					Level: level,
					ID:    attrValue(n, "id"),
					Text:  strings.TrimSpace(textOf(n)),
				})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return headings
}

// headingLevel maps h1..h6 tag names to their level, 0 otherwise.
func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// attrValue returns the value of the named attribute, or empty.
func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// textOf collects the text content of a node subtree.
func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		buf.WriteString(textOf(c))
	}
	return buf.String()
}

// writeEscaped writes s with HTML special characters escaped.
func writeEscaped(buf *strings.Builder, s string) {
	buf.WriteString(html.EscapeString(s))
}
