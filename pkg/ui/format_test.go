package ui_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/ui"
	"github.com/arthur-debert/punkt/pkg/ui/json"
	"github.com/arthur-debert/punkt/pkg/ui/text"
	"github.com/arthur-debert/punkt/pkg/ui/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   ui.Format
		expected string
	}{
		{ui.FormatAuto, "auto"},
		{ui.FormatTerminal, "term"},
		{ui.FormatText, "text"},
		{ui.FormatJSON, "json"},
		{ui.FormatYAML, "yaml"},
		{ui.Format(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{"", ui.FormatAuto, false},
		{"auto", ui.FormatAuto, false},
		{"TERM", ui.FormatTerminal, false},
		{"terminal", ui.FormatTerminal, false},
		{"plain", ui.FormatText, false},
		{"json", ui.FormatJSON, false},
		{"yml", ui.FormatYAML, false},
		{"xml", ui.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatFlagValue(t *testing.T) {
	var f ui.Format
	require.NoError(t, f.Set("yaml"))
	assert.Equal(t, ui.FormatYAML, f)
	assert.Equal(t, "format", f.Type())
	assert.Error(t, f.Set("nope"))
	assert.Equal(t, ui.FormatYAML, f, "failed Set leaves the value alone")
}

func TestNewRenderer(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		format   ui.Format
		expected interface{}
	}{
		{ui.FormatAuto, &text.Renderer{}},
		{ui.FormatText, &text.Renderer{}},
		{ui.FormatJSON, &json.Renderer{}},
		{ui.FormatYAML, &yaml.Renderer{}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			r, err := ui.NewRenderer(tt.format, &buf, nil)
			require.NoError(t, err)
			assert.IsType(t, tt.expected, r)
		})
	}

	_, err := ui.NewRenderer(ui.Format(42), &buf, nil)
	assert.Error(t, err)
}
