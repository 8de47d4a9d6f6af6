// Package md bridges markdown and the HTML the filter passes operate on:
// goldmark for markdown input, html-to-markdown for markdown output.
package md

import (
	"bytes"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// mdParser is a pre-configured goldmark instance with GFM table support.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// ToHTML converts markdown content to HTML.
func ToHTML(markdown []byte) (string, error) {
	if len(markdown) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := mdParser.Convert(markdown, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FromHTML converts HTML back to markdown.
func FromHTML(html string) (string, error) {
	if html == "" {
		return "", nil
	}
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}
