// Package view provides output formatting for pfl commands.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ValidateFormat checks that format names a supported output format.
func ValidateFormat(format string) error {
	switch Format(format) {
	case FormatTable, FormatJSON, FormatPlain:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (expected table, json or plain)", format)
}

// Renderer renders data in a specific format.
type Renderer struct {
	format Format
	writer io.Writer
}

// NewRenderer creates a new renderer with the specified format.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	return &Renderer{
		format: format,
		writer: os.Stdout,
	}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// RenderTable renders data as a table.
func (r *Renderer) RenderTable(headers []string, rows [][]string) {
	switch r.format {
	case FormatJSON:
		r.renderTableAsJSON(headers, rows)
		return
	case FormatPlain:
		r.renderTableAsPlain(rows)
		return
	}

	bold := color.New(color.Bold)
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(r.writer, "  ")
		}
		bold.Fprint(r.writer, h)
	}
	fmt.Fprintln(r.writer)

	for _, row := range rows {
		for i, val := range row {
			if i > 0 {
				fmt.Fprint(r.writer, "  ")
			}
			fmt.Fprint(r.writer, val)
		}
		fmt.Fprintln(r.writer)
	}
}

func (r *Renderer) renderTableAsJSON(headers []string, rows [][]string) {
	var result []map[string]string
	for _, row := range rows {
		item := make(map[string]string)
		for i, header := range headers {
			if i < len(row) {
				item[strings.ToLower(header)] = row[i]
			}
		}
		result = append(result, item)
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(r.writer, string(data))
}

func (r *Renderer) renderTableAsPlain(rows [][]string) {
	for _, row := range rows {
		for i, val := range row {
			if i > 0 {
				fmt.Fprint(r.writer, "\t")
			}
			fmt.Fprint(r.writer, val)
		}
		fmt.Fprintln(r.writer)
	}
}
