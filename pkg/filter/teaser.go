// teaser.go implements teaser reduction: truncating a body subtree to a
// word and tag budget, in document order, with an optional end marker.
package filter

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TeaserBudget bounds one Reduce call. A zero budget means no limit on
// that axis.
type TeaserBudget struct {
	MaxWords int
	MaxTags  int

	// EndMarker text (e.g. "...") appended where the truncation
	// happened. With EndMarkerURI set it becomes a link instead.
	EndMarker         string
	EndMarkerURI      string
	EndMarkerURITitle string
}

type teaserState struct {
	budget       TeaserBudget
	words, tags  int
	done         bool // budget exhausted, now deleting
	inlineMarker bool // an end marker was already placed at the cut
	reduced      bool
}

// Reduce walks the subtree under body counting elements and
// whitespace-delimited words, truncates the text node that exhausts the
// word budget, and deletes everything after the stopping point. When an
// end marker is requested but never placed inline, a trailing paragraph
// (class "teaser-end-paragraph") is appended instead. On any reduction
// body gets a teaser="reduced" attribute, and Reduce returns true.
//
// A word interrupted by an inline tag counts once per text fragment, so
// "te<b>aser</b>" counts two words. Known quirk, kept as-is; changing it
// would move existing truncation points.
func Reduce(body *html.Node, budget TeaserBudget) bool {
	st := &teaserState{budget: budget}
	reduceNode(body, st)

	if st.reduced {
		if budget.EndMarker != "" && !st.inlineMarker {
			appendEndParagraph(body, budget)
		}
		setAttr(body, "teaser", "reduced")
	}
	return st.reduced
}

func reduceNode(n *html.Node, st *teaserState) {
	c := n.FirstChild
	for c != nil {
		next := c.NextSibling

		if st.done {
			n.RemoveChild(c)
			st.reduced = true
			c = next
			continue
		}

		switch c.Type {
		case html.ElementNode:
			st.tags++
			if st.budget.MaxTags > 0 && st.tags >= st.budget.MaxTags {
				st.done = true
				n.RemoveChild(c)
				st.reduced = true
				break
			}
			reduceNode(c, st)

		case html.TextNode:
			next = reduceText(n, c, next, st)
		}

		c = next
	}
}

// reduceText counts the words of one text node, truncating it when the
// word budget runs out inside it. Returns the node to continue the
// sibling walk from (an inserted marker anchor must not be deleted by the
// cleanup pass).
func reduceText(parent, c, next *html.Node, st *teaserState) *html.Node {
	words := strings.Fields(c.Data)
	if st.budget.MaxWords <= 0 || st.words+len(words) < st.budget.MaxWords {
		st.words += len(words)
		return next
	}

	keep := st.budget.MaxWords - st.words
	st.words = st.budget.MaxWords
	st.done = true
	if keep >= len(words) {
		// The budget landed exactly on the node boundary; nothing to
		// truncate here, the cleanup pass handles what follows.
		return next
	}
	st.reduced = true

	c.Data = cutWords(c.Data, keep)

	switch {
	case st.budget.EndMarker != "" && st.budget.EndMarkerURI == "":
		if !strings.HasSuffix(c.Data, " ") {
			c.Data += " "
		}
		c.Data += st.budget.EndMarker
		st.inlineMarker = true
	case st.budget.EndMarker != "" && st.budget.EndMarkerURI != "":
		anchor := endMarkerAnchor(st.budget)
		parent.InsertBefore(anchor, next)
		st.inlineMarker = true
	}
	return next
}

// cutWords returns the prefix of s holding the first keep words,
// including the whitespace that follows the last kept word.
func cutWords(s string, keep int) string {
	if keep <= 0 {
		return ""
	}
	inWord := false
	count := 0
	for i, r := range s {
		if isSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			inWord = true
			count++
			if count > keep {
				return s[:i]
			}
		}
	}
	return s
}

func endMarkerAnchor(budget TeaserBudget) *html.Node {
	anchor := &html.Node{
		Type:     html.ElementNode,
		Data:     "a",
		DataAtom: atom.A,
		Attr: []html.Attribute{
			{Key: "class", Val: "teaser-end-marker"},
			{Key: "href", Val: budget.EndMarkerURI},
		},
	}
	if budget.EndMarkerURITitle != "" {
		anchor.Attr = append(anchor.Attr,
			html.Attribute{Key: "title", Val: budget.EndMarkerURITitle})
	}
	anchor.AppendChild(&html.Node{Type: html.TextNode, Data: budget.EndMarker})
	return anchor
}

func appendEndParagraph(body *html.Node, budget TeaserBudget) {
	p := &html.Node{
		Type:     html.ElementNode,
		Data:     "p",
		DataAtom: atom.P,
		Attr:     []html.Attribute{{Key: "class", Val: "teaser-end-paragraph"}},
	}
	if budget.EndMarkerURI != "" {
		p.AppendChild(endMarkerAnchor(budget))
	} else {
		p.AppendChild(&html.Node{Type: html.TextNode, Data: budget.EndMarker})
	}
	body.AppendChild(p)
}
