package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_RemovesTagKeepsContent(t *testing.T) {
	doc := parseBody(t, "<p>a<b>bold</b>c</p>")
	Sanitize(doc, NewPolicy([]string{"p"}, nil, false))
	assert.Equal(t, "<p>aboldc</p>", renderChildren(t, doc))
}

func TestSanitize_DangerousTagsRemovedWhole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"script", "<p>a<script>evil()</script>c</p>", "<p>ac</p>"},
		{"style", "<p>a<style>p{}</style>c</p>", "<p>ac</p>"},
		{"textarea", "<p>a<textarea>text</textarea>c</p>", "<p>ac</p>"},
		{"xmp", "<p>a<xmp>raw</xmp>c</p>", "<p>ac</p>"},
		{"plaintext nested content", "<div><plaintext>x</plaintext></div>", "<div></div>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseBody(t, tt.input)
			Sanitize(doc, NewPolicy([]string{"p", "div"}, nil, false))
			assert.Equal(t, tt.want, renderChildren(t, doc))
		})
	}
}

func TestSanitize_HoistedChildrenAreSanitized(t *testing.T) {
	// the b inside the removed div must itself be removed
	doc := parseBody(t, "<p>x</p><div>a<b>bold</b>c</div>")
	Sanitize(doc, NewPolicy([]string{"p"}, nil, false))
	assert.Equal(t, "<p>x</p>aboldc", renderChildren(t, doc))
}

func TestSanitize_HoistedScriptRemoved(t *testing.T) {
	doc := parseBody(t, "<div>a<script>evil()</script>b</div>")
	Sanitize(doc, NewPolicy([]string{"p"}, nil, false))
	assert.Equal(t, "ab", renderChildren(t, doc))
}

func TestSanitize_AttributeAllowlist(t *testing.T) {
	doc := parseBody(t, `<p class="x" onclick="evil()" id="y">a</p>`)
	Sanitize(doc, NewPolicy([]string{"p"}, []string{"class", "id"}, false))
	assert.Equal(t, `<p class="x" id="y">a</p>`, renderChildren(t, doc))
}

func TestSanitize_AttributeDenylist(t *testing.T) {
	doc := parseBody(t, `<p class="x" onclick="evil()">a</p>`)
	Sanitize(doc, NewPolicy([]string{"p"}, []string{"onclick"}, true))
	assert.Equal(t, `<p class="x">a</p>`, renderChildren(t, doc))
}

func TestSanitize_TagNamesCaseInsensitive(t *testing.T) {
	doc := parseBody(t, "<P>a</P>")
	Sanitize(doc, NewPolicy([]string{"p"}, nil, false))
	assert.Equal(t, "<p>a</p>", renderChildren(t, doc))
}

func TestSanitize_CommentsRemoved(t *testing.T) {
	doc := parseBody(t, "<p>a<!-- secret -->b</p>")
	Sanitize(doc, NewPolicy([]string{"p"}, nil, false))
	assert.Equal(t, "<p>ab</p>", renderChildren(t, doc))
}

func TestSanitize_TextPassesThrough(t *testing.T) {
	doc := parseBody(t, "plain &amp; text")
	Sanitize(doc, NewPolicy([]string{"p"}, nil, false))
	assert.Equal(t, "plain &amp; text", renderChildren(t, doc))
}

func TestSanitize_DeeplyNestedMixed(t *testing.T) {
	doc := parseBody(t,
		`<div><p>keep <em>this</em></p><script>no</script><span onclick="x">hi</span></div>`)
	Sanitize(doc, NewPolicy([]string{"div", "p", "span"}, []string{"class"}, false))
	require.Equal(t,
		`<div><p>keep this</p><span>hi</span></div>`,
		renderChildren(t, doc))
}
