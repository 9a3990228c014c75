package styles_test

import (
	"testing"

	"github.com/arthur-debert/punkt/pkg/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := styles.Default()

	for _, name := range []string{
		"Title", "Header", "Success", "Warning", "Error",
		"Info", "Muted", "Label", "Path", "Item", "DryRunBanner",
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, reg.Has(name), "style %s should exist", name)
		})
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name: "valid",
			data: "colors:\n  red: {light: '#f00', dark: '#f88'}\nstyles:\n  Error: {foreground: red, bold: true}\n",
		},
		{
			name:    "unknown color",
			data:    "styles:\n  Error: {foreground: red}\n",
			wantErr: "unknown color",
		},
		{
			name:    "bad yaml",
			data:    "styles: [",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := styles.Load([]byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, reg.Has("Error"))
		})
	}
}

func TestGetUnknownIsPlain(t *testing.T) {
	reg := styles.Default()
	assert.False(t, reg.Has("Nope"))
	assert.Equal(t, "text", reg.Render("Nope", "text"))
}
