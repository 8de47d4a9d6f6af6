// Package content handles document input and output for pfl commands:
// reading from a file or stdin, optional markdown conversion on the way
// in, and html/markdown/text serialization on the way out.
package content

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html"

	"github.com/open-text-tools/pagefilter/pkg/filter"
	"github.com/open-text-tools/pagefilter/pkg/md"
)

// Read reads a document from path, or from in when path is empty or "-".
func Read(path string, in io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Decode parses input into an HTML tree, converting from markdown first
// when fromMarkdown is set.
func Decode(input []byte, fromMarkdown bool) (*html.Node, error) {
	body := string(input)
	if fromMarkdown {
		converted, err := md.ToHTML(input)
		if err != nil {
			return nil, fmt.Errorf("failed to convert markdown: %w", err)
		}
		body = converted
	}
	doc, err := filter.ParseBody(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}

// Encode serializes doc in the requested format: html, markdown or text.
func Encode(doc *html.Node, format string) (string, error) {
	rendered, err := filter.RenderContents(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}

	switch format {
	case "", "html":
		return rendered, nil
	case "markdown":
		converted, err := md.FromHTML(rendered)
		if err != nil {
			return "", fmt.Errorf("failed to convert to markdown: %w", err)
		}
		return converted, nil
	case "text":
		return filter.TextContent(doc), nil
	}
	return "", fmt.Errorf("unsupported format %q (expected html, markdown or text)", format)
}

// Write writes output to path, or to out when path is empty or "-".
func Write(path, output string, out io.Writer) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(out, output)
		return err
	}
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
