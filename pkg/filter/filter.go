// Package filter implements the token-replacement and text-filtering
// pipeline for HTML content: a scanner/expander for the [name(args)]
// mini-language, an XSS sanitizer, and a teaser reducer, all operating on
// golang.org/x/net/html trees.
package filter

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// stateFrame tracks which owner and page identity supplied the current
// DOM subtree. Frames are pushed when the walk enters an element carrying
// owner/path attributes, so tokens inside embedded content resolve
// against the page that produced it.
type stateFrame struct {
	node  *html.Node
	owner string
	page  string
}

// Filter drives token expansion over a document. A Filter holds the
// in-flight page set used for recursion detection, so create one Filter
// per render request; the zero value is not usable, use New.
type Filter struct {
	resolvers Chain
	edit      bool
	isInline  func(string) bool
	log       *zap.Logger

	expanding map[string]struct{}
	stack     []stateFrame
}

// Option configures a Filter.
type Option func(*Filter)

// WithEditMode wraps every resolved token in a span or div carrying
// class="filter-token" and the original token source, so an editor can
// map rendered text back to the token that produced it.
func WithEditMode() Option {
	return func(f *Filter) { f.edit = true }
}

// WithInlineClassifier overrides the inline-tag classifier used to choose
// span vs div for edit-mode wrapping.
func WithInlineClassifier(fn func(tag string) bool) Option {
	return func(f *Filter) { f.isInline = fn }
}

// WithLogger sets the logger. The default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(f *Filter) { f.log = log }
}

// New creates a Filter with the given resolver chain.
func New(resolvers Chain, opts ...Option) *Filter {
	f := &Filter{
		resolvers: resolvers,
		isInline:  IsInlineTag,
		log:       zap.NewNop(),
		expanding: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Document token-filters doc in place for the given page identity: every
// text node and every attribute value (outside xsl: elements) is scanned
// for tokens and rewritten with their expansion. Returns false when the
// page is already being expanded, in which case the document is left
// untouched; a self-referential token loop must not take the whole
// render down with it.
func (f *Filter) Document(page string, doc *html.Node) bool {
	if _, busy := f.expanding[page]; busy {
		f.log.Error("token expansion loop detected, skipping page",
			zap.String("page", page))
		return false
	}
	f.expanding[page] = struct{}{}
	defer delete(f.expanding, page)

	f.push(stateFrame{node: doc, page: page})
	defer f.pop()

	f.walk(doc, doc)
	return true
}

// Text expands tokens in a plain text buffer, outside any document. The
// same recursion guard applies.
func (f *Filter) Text(page, text string) string {
	if _, busy := f.expanding[page]; busy {
		f.log.Error("token expansion loop detected, skipping page",
			zap.String("page", page))
		return text
	}
	f.expanding[page] = struct{}{}
	defer delete(f.expanding, page)

	s := &scanner{f: f, page: page}
	return s.scan(text)
}

func (f *Filter) walk(doc, n *html.Node) {
	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			f.walk(doc, c)
			c = next
		}

	case html.ElementNode:
		pushed := false
		if owner := attrValue(n, "owner"); owner != "" || attrValue(n, "path") != "" {
			page := attrValue(n, "path")
			if page == "" {
				page = f.CurrentPage()
			}
			f.push(stateFrame{node: n, owner: owner, page: page})
			pushed = true
		}

		// XSLT directives reuse [ and ] with their own meaning; their
		// attributes must never be token-scanned.
		if !strings.HasPrefix(n.Data, "xsl:") {
			f.scanAttributes(doc, n)
		}

		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			f.walk(doc, c)
			c = next
		}

		if pushed {
			f.pop()
		}

	case html.TextNode:
		if !strings.ContainsRune(n.Data, '[') {
			return
		}
		s := &scanner{f: f, page: f.CurrentPage(), doc: doc}
		expanded := s.scan(n.Data)
		if expanded != n.Data {
			f.replaceText(n, expanded)
		}
	}
}

func (f *Filter) scanAttributes(doc, n *html.Node) {
	for i := range n.Attr {
		if !strings.ContainsRune(n.Attr[i].Val, '[') {
			continue
		}
		s := &scanner{f: f, page: f.CurrentPage(), doc: doc, attr: true}
		n.Attr[i].Val = s.scan(n.Attr[i].Val)
	}
}

// replaceText writes the expansion back into the tree. Plain text updates
// the node in place; markup-bearing expansions (edit-mode wrappers, token
// output containing tags) are parsed and spliced in where the text node
// was.
func (f *Filter) replaceText(n *html.Node, expanded string) {
	if !strings.ContainsRune(expanded, '<') || n.Parent == nil {
		n.Data = expanded
		return
	}
	nodes, err := parseFragment(expanded)
	if err != nil {
		n.Data = expanded
		return
	}
	parent := n.Parent
	for _, nn := range nodes {
		parent.InsertBefore(nn, n)
	}
	parent.RemoveChild(n)
}

// CurrentPage returns the page identity on top of the state stack. Tokens
// inside embedded sub-documents resolve against the page that supplied
// them, not the outer document.
func (f *Filter) CurrentPage() string {
	if len(f.stack) == 0 {
		panic("filter: state stack is empty")
	}
	return f.stack[len(f.stack)-1].page
}

// CurrentOwner returns the owner on top of the state stack.
func (f *Filter) CurrentOwner() string {
	if len(f.stack) == 0 {
		panic("filter: state stack is empty")
	}
	return f.stack[len(f.stack)-1].owner
}

func (f *Filter) push(frame stateFrame) {
	f.stack = append(f.stack, frame)
}

func (f *Filter) pop() {
	if len(f.stack) == 0 {
		panic("filter: state stack underflow")
	}
	f.stack = f.stack[:len(f.stack)-1]
}
