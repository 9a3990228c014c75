// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/punkt/pkg/ui/view"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
	paths  view.PathFunc
}

// New creates a new text renderer. paths renders result paths; nil prints
// them unchanged.
func New(output io.Writer, paths view.PathFunc) (*Renderer, error) {
	return &Renderer{output: output, paths: paths}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	doc, ok := view.Build(result, r.paths)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
	_, err := io.WriteString(r.output, Format(doc))
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, writeErr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return writeErr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// Format renders doc as plain text
func Format(doc view.Document) string {
	var b strings.Builder
	if doc.DryRun {
		b.WriteString("[dry run] nothing was changed\n")
	}
	if len(doc.Sections) == 0 {
		if doc.Empty != "" {
			b.WriteString(doc.Empty + "\n")
		}
		return b.String()
	}

	for i, s := range doc.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		indent := ""
		if s.Heading != "" {
			fmt.Fprintf(&b, "%s:\n", s.Heading)
			indent = "  "
		}
		for _, item := range s.Items {
			if item.Label != "" {
				fmt.Fprintf(&b, "%s%-14s %s\n", indent, item.Label, item.Path)
				continue
			}
			fmt.Fprintf(&b, "%s%s\n", indent, item.Path)
		}
	}
	return b.String()
}
