package md

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"paragraph", "hello world", "<p>hello world</p>\n"},
		{"emphasis", "*hi*", "<p><em>hi</em></p>\n"},
		{"heading", "# Title", "<h1>Title</h1>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToHTML_BracketTokensSurvive(t *testing.T) {
	// token syntax must pass through markdown conversion untouched so the
	// filter can expand it afterwards
	got, err := ToHTML([]byte("copyright [year]"))
	require.NoError(t, err)
	assert.Equal(t, "<p>copyright [year]</p>\n", got)
}

func TestFromHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"paragraph", "<p>hello</p>", "hello"},
		{"bold", "<p><strong>hi</strong></p>", "**hi**"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromHTML(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	html, err := ToHTML([]byte("# Title\n\nsome **bold** text"))
	require.NoError(t, err)

	back, err := FromHTML(html)
	require.NoError(t, err)
	assert.Contains(t, back, "# Title")
	assert.Contains(t, back, "**bold**")
}
