// TEST TYPE: CLI Integration
// DEPENDENCIES: OS filesystem in t.TempDir, memory tracker
// PURPOSE: Drive the cobra commands end to end

package punkt

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	home  string
	local string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	tmp := t.TempDir()
	env := &cliEnv{
		home:  filepath.Join(tmp, "home"),
		local: filepath.Join(tmp, "home", "dotfiles"),
	}
	require.NoError(t, os.MkdirAll(env.home, 0755))

	t.Setenv("PUNKT_HOME", env.home)
	t.Setenv("PUNKT_LOCAL", env.local)
	t.Setenv("PUNKT_TRACKER", filepath.Join(tmp, "tracker"))
	t.Setenv("PUNKT_TRACKER_BACKEND", "memory")
	t.Setenv("PUNKT_CONFIG", filepath.Join(tmp, "absent.toml"))
	t.Setenv("PUNKT_LOG_FILE", filepath.Join(tmp, "punkt.log"))
	t.Setenv("NO_COLOR", "1")
	return env
}

func (e *cliEnv) write(t *testing.T, rel, content string) string {
	t.Helper()
	p := filepath.Join(e.home, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(afero.NewOsFs())
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInitSyncList(t *testing.T) {
	env := newCLIEnv(t)
	bashrc := env.write(t, ".bashrc", "export A=1\n")
	env.write(t, ".config/nvim/init.lua", "-- nvim\n")

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, env.local)

	out, err = execute(t, "sync", bashrc, "~/.config")
	require.NoError(t, err)
	assert.Contains(t, out, "Copied:")
	assert.FileExists(t, filepath.Join(env.local, "punkt_bashrc"))
	assert.FileExists(t, filepath.Join(env.local, "punkt_config", "nvim", "init.lua"))

	out, err = execute(t, "list", "--path-style", "local-relative")
	require.NoError(t, err)
	assert.Equal(t, "punkt_bashrc\npunkt_config/\npunkt_config/nvim/\npunkt_config/nvim/init.lua\n", out)

	out, err = execute(t, "diff")
	require.NoError(t, err)
	assert.Equal(t, "No differences\n", out)
}

func TestOutputFormats(t *testing.T) {
	env := newCLIEnv(t)
	env.write(t, ".gitconfig", "[user]\n")
	_, err := execute(t, "init")
	require.NoError(t, err)
	_, err = execute(t, "sync", "~/.gitconfig")
	require.NoError(t, err)

	tests := []struct {
		format   string
		expected string
	}{
		{"json", `"path": "` + filepath.Join(env.local, "punkt_gitconfig") + `"`},
		{"yaml", "path: " + filepath.Join(env.local, "punkt_gitconfig")},
		{"text", filepath.Join(env.home, ".gitconfig")},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := execute(t, "list", "--format", tt.format)
			require.NoError(t, err)
			assert.Contains(t, out, tt.expected)
		})
	}
}

func TestUnsyncCommand(t *testing.T) {
	env := newCLIEnv(t)
	env.write(t, ".zshrc", "z")
	_, err := execute(t, "init")
	require.NoError(t, err)
	_, err = execute(t, "sync", "~/.zshrc")
	require.NoError(t, err)

	out, err := execute(t, "unsync", "~/.zshrc")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")
	assert.NoFileExists(t, filepath.Join(env.local, "punkt_zshrc"))
	assert.FileExists(t, filepath.Join(env.home, ".zshrc"))

	_, err = execute(t, "unsync")
	assert.Error(t, err, "unsync needs a path")
}

func TestDryRunChangesNothing(t *testing.T) {
	env := newCLIEnv(t)
	env.write(t, ".profile", "p")
	_, err := execute(t, "init")
	require.NoError(t, err)

	out, err := execute(t, "--dry-run", "sync", "~/.profile")
	require.NoError(t, err)
	assert.Contains(t, out, "[dry run]")
	assert.NoFileExists(t, filepath.Join(env.local, "punkt_profile"))
}

func TestFlagValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{"bad include before init check", []string{"sync", "--include", "("}, errors.ErrInvalidInput},
		{"bad exclude", []string{"list", "-e", "[z-a]"}, errors.ErrInvalidInput},
		{"bad backend", []string{"--tracker-backend", "redis", "list"}, errors.ErrInvalidInput},
		{"not initialized", []string{"list"}, errors.ErrNotInitialized},
		{"no command", nil, errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newCLIEnv(t)
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestParseTimeFlagErrors(t *testing.T) {
	newCLIEnv(t)
	for _, args := range [][]string{
		{"--path-style", "sideways", "list"},
		{"--format", "xml", "list"},
	} {
		_, err := execute(t, args...)
		assert.Error(t, err, "%v", args)
	}
}

func TestConfigCommand(t *testing.T) {
	env := newCLIEnv(t)

	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, `active_root = '`+env.home+`'`)
	assert.Contains(t, out, `backend = 'memory'`)

	out, err = execute(t, "config", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "# dot_prefix")
}

func TestVersionAndCompletion(t *testing.T) {
	newCLIEnv(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "punkt version")

	out, err = execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "punkt")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	ReportError(&buf, errors.PathError(errors.ErrPathNotFound, "/x", nil))
	assert.Equal(t, "Error: [PATH_NOT_FOUND] path not found: /x\n", buf.String())
}

func TestHelpTopics(t *testing.T) {
	newCLIEnv(t)

	out, err := execute(t, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "ignore-file")
	assert.Contains(t, out, "--path-style")

	out, err = execute(t, "help", "dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "leaves the")
}
