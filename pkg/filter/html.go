// html.go holds the small HTML support surface shared by the scanner,
// sanitizer and teaser: entity encoding, the inline-tag classifier and
// fragment parse/render helpers over x/net/html.
package filter

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// entityReplacer maps the five characters that must never appear raw in
// attribute values or wrapped token sources.
var entityReplacer = strings.NewReplacer(
	"&", "&amp;",
	"\"", "&quot;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&#39;",
)

// EncodeEntities encodes " < > & ' as HTML entities.
func EncodeEntities(s string) string {
	return entityReplacer.Replace(s)
}

// inlineTags is the default inline-level element set used to pick span vs
// div when wrapping resolved tokens in edit mode.
var inlineTags = map[string]struct{}{
	"a": {}, "abbr": {}, "acronym": {}, "b": {}, "bdo": {}, "big": {},
	"br": {}, "button": {}, "cite": {}, "code": {}, "dfn": {}, "em": {},
	"i": {}, "img": {}, "input": {}, "kbd": {}, "label": {}, "map": {},
	"object": {}, "q": {}, "samp": {}, "select": {}, "small": {},
	"span": {}, "strong": {}, "sub": {}, "sup": {}, "textarea": {},
	"time": {}, "tt": {}, "u": {}, "var": {},
}

// IsInlineTag reports whether the lowercase tag name is an inline-level
// element. It is the default classifier; callers can override it with
// WithInlineClassifier.
func IsInlineTag(name string) bool {
	_, ok := inlineTags[strings.ToLower(name)]
	return ok
}

// firstTag returns the lowercase name of the first tag found in s, or ""
// when s contains no markup.
func firstTag(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != '<' {
			continue
		}
		j := i + 1
		if j < len(s) && s[j] == '/' {
			j++
		}
		start := j
		for j < len(s) && (isLetter(rune(s[j])) || isDigit(rune(s[j]))) {
			j++
		}
		if j > start {
			return strings.ToLower(s[start:j])
		}
	}
	return ""
}

// parseFragment parses s as body content and returns the top-level nodes.
func parseFragment(s string) ([]*html.Node, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	return html.ParseFragment(strings.NewReader(s), ctx)
}

// ParseBody parses HTML body content into a container element whose
// children are the parsed nodes. The container is what Document,
// Sanitize and Reduce operate on.
func ParseBody(content string) (*html.Node, error) {
	nodes, err := parseFragment(content)
	if err != nil {
		return nil, err
	}
	container := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// RenderContents serializes the children of n back to HTML.
func RenderContents(n *html.Node) (string, error) {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// TextContent concatenates every text node under n in document order.
func TextContent(n *html.Node) string {
	return textContent(n)
}

// textContent concatenates every text node under n in document order.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// stripTags drops all markup from s, keeping only text content. Content
// of fully-removed tags (script, style, ...) is dropped along with the
// tag, matching the sanitizer.
func stripTags(s string) string {
	nodes, err := parseFragment(s)
	if err != nil {
		return s
	}
	wrapper := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	for _, n := range nodes {
		wrapper.AppendChild(n)
	}
	Sanitize(wrapper, Policy{})
	return textContent(wrapper)
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}
