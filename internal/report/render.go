package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Format selects how a report is written.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatPretty   Format = "pretty"
	FormatJSON     Format = "json"
)

// ParseFormat accepts a format name; empty means markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", "md":
		return FormatMarkdown, nil
	case FormatMarkdown, FormatPretty, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want markdown, pretty or json)", s)
	}
}

// Renderer writes reports in one Format.
type Renderer struct {
	Format Format
	// Width wraps pretty output; zero means 100 columns.
	Width int
}

// Write renders md for people, or data as indented JSON when the format is json.
func (r Renderer) Write(w io.Writer, md string, data any) error {
	switch r.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatPretty:
		width := r.Width
		if width <= 0 {
			width = 100
		}
		tr, err := glamour.NewTermRenderer(
			glamour.WithStylePath("notty"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return fmt.Errorf("creating renderer: %w", err)
		}
		out, err := tr.Render(md)
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		_, err := io.WriteString(w, md)
		return err
	}
}
