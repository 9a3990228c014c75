// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/ui/styles"
	"github.com/arthur-debert/punkt/pkg/ui/view"
)

// Renderer provides rich terminal output using the style registry
type Renderer struct {
	output io.Writer
	paths  view.PathFunc
	styles *styles.Registry
}

// New creates a new terminal renderer
func New(w io.Writer, paths view.PathFunc) (*Renderer, error) {
	return &Renderer{output: w, paths: paths, styles: styles.Default()}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	doc, ok := view.Build(result, r.paths)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
	_, err := io.WriteString(r.output, r.format(doc))
	return err
}

// RenderError renders an error with the error style. Path errors show the
// offending path on its own line.
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	b.WriteString(r.styles.Render("Error", "Error: "+err.Error()))
	b.WriteString("\n")
	if path := errors.GetErrorPath(err); path != "" {
		b.WriteString(r.styles.Render("Item", r.styles.Render("Path", path)))
		b.WriteString("\n")
	}
	_, writeErr := io.WriteString(r.output, b.String())
	return writeErr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, r.styles.Render("Info", msg))
	return err
}

func (r *Renderer) format(doc view.Document) string {
	var b strings.Builder
	if doc.DryRun {
		b.WriteString(r.styles.Render("DryRunBanner", "dry run: nothing was changed"))
		b.WriteString("\n")
	}
	if len(doc.Sections) == 0 {
		if doc.Empty != "" {
			b.WriteString(r.styles.Render("Muted", doc.Empty))
			b.WriteString("\n")
		}
		return b.String()
	}

	for i, s := range doc.Sections {
		if s.Heading != "" {
			header := "Title"
			if i > 0 {
				header = "Header"
			}
			b.WriteString(r.styles.Render(header, s.Heading))
			b.WriteString("\n")
		}
		for _, item := range s.Items {
			line := r.styles.Render(string(s.Tone), item.Path)
			if item.Label != "" {
				line = r.styles.Render("Label", item.Label) + line
			}
			if s.Heading != "" {
				line = r.styles.Render("Item", line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
