package yaml_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/punkt/pkg/commands/unsync"
	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/ui/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yamlv3 "gopkg.in/yaml.v3"
)

func TestRenderResult(t *testing.T) {
	var buf bytes.Buffer
	r, err := yaml.New(&buf)
	require.NoError(t, err)

	result := &unsync.Result{Removed: []string{"/l/punkt_a"}, Untracked: 1}
	require.NoError(t, r.RenderResult(result))

	var decoded unsync.Result
	require.NoError(t, yamlv3.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *result, decoded)
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	r, err := yaml.New(&buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderError(errors.New(errors.ErrInvalidInput, "bad")))
	assert.Contains(t, buf.String(), "code: INVALID_INPUT")
}
