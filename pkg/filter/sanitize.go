// sanitize.go implements the XSS filter: an in-place tree walk that
// removes disallowed tags and attributes from client-supplied content.
package filter

import (
	"strings"

	"golang.org/x/net/html"
)

// Policy describes what a sanitizer pass keeps.
type Policy struct {
	// Tags is the set of lowercase tag names kept in the output. Any
	// other element is removed; its children are hoisted in its place
	// unless the tag is one that must disappear whole (script, style,
	// textarea, xmp, plaintext).
	Tags map[string]struct{}

	// Attributes is the set of lowercase attribute names kept on
	// surviving elements, or stripped from them when AttributeDenylist
	// is true.
	Attributes map[string]struct{}

	// AttributeDenylist inverts the attribute test: names in the set are
	// stripped and all others kept.
	AttributeDenylist bool
}

// NewPolicy builds a Policy from tag and attribute name lists,
// normalizing to lowercase.
func NewPolicy(tags, attributes []string, attributeDenylist bool) Policy {
	p := Policy{
		Tags:              make(map[string]struct{}, len(tags)),
		Attributes:        make(map[string]struct{}, len(attributes)),
		AttributeDenylist: attributeDenylist,
	}
	for _, t := range tags {
		p.Tags[strings.ToLower(t)] = struct{}{}
	}
	for _, a := range attributes {
		p.Attributes[strings.ToLower(a)] = struct{}{}
	}
	return p
}

// deletedWhole are tags whose content is as unsafe as the tag itself;
// they are removed along with all descendants instead of being hoisted.
var deletedWhole = map[string]struct{}{
	"script":    {},
	"style":     {},
	"textarea":  {},
	"xmp":       {},
	"plaintext": {},
}

// Sanitize removes disallowed tags and attributes under n, in place.
// Text nodes pass through untouched; comments, doctypes and every other
// non-element node are removed outright. The walk captures the next
// sibling before mutating, and re-visits hoisted children, so the tree
// stays consistent through deletion and splicing.
func Sanitize(n *html.Node, p Policy) {
	c := n.FirstChild
	for c != nil {
		next := c.NextSibling
		switch c.Type {
		case html.TextNode:
			// kept as-is
		case html.ElementNode:
			name := strings.ToLower(c.Data)
			if _, allowed := p.Tags[name]; !allowed {
				if _, whole := deletedWhole[name]; whole {
					n.RemoveChild(c)
					break
				}
				// Hoist children up to take the element's place, then
				// continue the walk at the first hoisted node so they
				// are sanitized too.
				first := c.FirstChild
				for gc := c.FirstChild; gc != nil; gc = c.FirstChild {
					c.RemoveChild(gc)
					n.InsertBefore(gc, c)
				}
				n.RemoveChild(c)
				if first != nil {
					next = first
				}
				break
			}
			filterAttributes(c, p)
			Sanitize(c, p)
		default:
			// comment, doctype, raw and anything else out of place in
			// sanitized content
			n.RemoveChild(c)
		}
		c = next
	}
}

func filterAttributes(n *html.Node, p Policy) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		_, listed := p.Attributes[strings.ToLower(a.Key)]
		if listed != p.AttributeDenylist {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}
