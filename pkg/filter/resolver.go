// resolver.go defines the pluggable token resolution boundary. Several
// resolvers can be registered; they are tried in order and the first one
// that reports Found wins.
package filter

import "golang.org/x/net/html"

// Resolution is the outcome of resolving one token. Found=false means the
// token is unknown and the scanner reproduces its source text verbatim.
type Resolution struct {
	Found       bool
	Replacement string
}

// Resolver resolves a token found while scanning the document for the
// given page identity. Resolvers may read external state but must not
// mutate the document under scan.
type Resolver interface {
	Resolve(page string, doc *html.Node, tok *Token) Resolution
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(page string, doc *html.Node, tok *Token) Resolution

func (f ResolverFunc) Resolve(page string, doc *html.Node, tok *Token) Resolution {
	return f(page, doc, tok)
}

// Chain tries each resolver in order, stopping at the first Found.
type Chain []Resolver

func (c Chain) Resolve(page string, doc *html.Node, tok *Token) Resolution {
	for _, r := range c {
		if res := r.Resolve(page, doc, tok); res.Found {
			return res
		}
	}
	return Resolution{}
}

// StaticResolver resolves token names from a fixed replacement map,
// ignoring arguments.
type StaticResolver map[string]string

func (m StaticResolver) Resolve(_ string, _ *html.Node, tok *Token) Resolution {
	rep, ok := m[tok.Name]
	if !ok {
		return Resolution{}
	}
	return Resolution{Found: true, Replacement: rep}
}
