// Package ui renders operation results. It supports terminal (rich), text
// (plain), JSON and YAML output, and prints paths in the selected path style.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/ui/json"
	"github.com/arthur-debert/punkt/pkg/ui/terminal"
	"github.com/arthur-debert/punkt/pkg/ui/text"
	"github.com/arthur-debert/punkt/pkg/ui/view"
	"github.com/arthur-debert/punkt/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders an operation result
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. paths renders result paths in
// the text formats; the machine formats always carry absolute paths.
func NewRenderer(format Format, output io.Writer, paths view.PathFunc) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output, paths)
		}
		return NewRenderer(FormatText, output, paths)
	case FormatTerminal:
		return terminal.New(output, paths)
	case FormatText:
		return text.New(output, paths)
	case FormatJSON:
		return json.New(output)
	case FormatYAML:
		return yaml.New(output)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
