// TEST TYPE: Unit Tests
// DEPENDENCIES: afero MemMapFs
// PURPOSE: Verify queueing, deduplication and commit semantics

package transaction

import (
	"testing"

	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/paths"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	active = "/home/u"
	local  = "/home/u/.local/share/punkt"
)

func newLog(t *testing.T) (*Log, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	m, err := paths.NewMapper(active, local, paths.DefaultDotPrefix)
	require.NoError(t, err)
	return New(fs, m), fs
}

func TestEnqueueDeduplicates(t *testing.T) {
	l, _ := newLog(t)

	assert.True(t, l.Enqueue(Transaction{Kind: CopyToLocal, Path: "/home/u/.bashrc"}))
	assert.True(t, l.Enqueue(Transaction{Kind: MakeDirectories, Path: local + "/punkt_config"}))
	assert.False(t, l.Enqueue(Transaction{Kind: CopyToLocal, Path: "/home/u/.bashrc"}))
	assert.True(t, l.Enqueue(Transaction{Kind: CopyToActive, Path: "/home/u/.bashrc"}))

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []Transaction{
		{Kind: CopyToLocal, Path: "/home/u/.bashrc"},
		{Kind: MakeDirectories, Path: local + "/punkt_config"},
		{Kind: CopyToActive, Path: "/home/u/.bashrc"},
	}, l.Pending())
}

func TestCommitAppliesInOrder(t *testing.T) {
	l, fs := newLog(t)
	require.NoError(t, afero.WriteFile(fs, "/home/u/.bashrc", []byte("alias ll='ls -l'"), 0640))
	require.NoError(t, afero.WriteFile(fs, local+"/punkt_vimrc", []byte("set nu"), 0644))
	require.NoError(t, afero.WriteFile(fs, local+"/stale/x", []byte("x"), 0644))

	l.Enqueue(Transaction{Kind: MakeDirectories, Path: local + "/punkt_config/nvim"})
	l.Enqueue(Transaction{Kind: CopyToLocal, Path: "/home/u/.bashrc"})
	l.Enqueue(Transaction{Kind: CopyToActive, Path: local + "/punkt_vimrc"})
	l.Enqueue(Transaction{Kind: Delete, Path: local + "/stale"})

	report, err := l.Commit()
	require.NoError(t, err)
	assert.Len(t, report.Applied, 4)
	assert.Equal(t, 0, l.Len())

	data, err := afero.ReadFile(fs, local+"/punkt_bashrc")
	require.NoError(t, err)
	assert.Equal(t, "alias ll='ls -l'", string(data))
	info, err := fs.Stat(local + "/punkt_bashrc")
	require.NoError(t, err)
	assert.Equal(t, "-rw-r-----", info.Mode().Perm().String())

	data, err = afero.ReadFile(fs, "/home/u/.vimrc")
	require.NoError(t, err)
	assert.Equal(t, "set nu", string(data))

	isDir, err := afero.IsDir(fs, local+"/punkt_config/nvim")
	require.NoError(t, err)
	assert.True(t, isDir)

	exists, err := afero.Exists(fs, local+"/stale")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCommitIsIdempotentForDirsAndDeletes(t *testing.T) {
	l, fs := newLog(t)
	require.NoError(t, fs.MkdirAll(local+"/d", 0755))

	l.Enqueue(Transaction{Kind: MakeDirectories, Path: local + "/d"})
	l.Enqueue(Transaction{Kind: Delete, Path: local + "/never-existed"})

	_, err := l.Commit()
	assert.NoError(t, err)
}

func TestCommitStopsAtFirstFailure(t *testing.T) {
	l, fs := newLog(t)
	require.NoError(t, afero.WriteFile(fs, "/home/u/.a", []byte("a"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/home/u/.c", []byte("c"), 0644))

	l.Enqueue(Transaction{Kind: CopyToLocal, Path: "/home/u/.a"})
	l.Enqueue(Transaction{Kind: CopyToLocal, Path: "/home/u/.missing"})
	l.Enqueue(Transaction{Kind: CopyToLocal, Path: "/home/u/.c"})

	report, err := l.Commit()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathNotFound))
	assert.Equal(t, "/home/u/.missing", errors.GetErrorPath(err))
	assert.Equal(t, "copy-to-local /home/u/.missing", errors.GetErrorDetails(err)["transaction"])

	assert.Equal(t, []Transaction{{Kind: CopyToLocal, Path: "/home/u/.a"}}, report.Applied)
	assert.Equal(t, 0, l.Len(), "pending set is cleared after a failed commit")

	// No rollback of the applied prefix, nothing after the failure
	exists, _ := afero.Exists(fs, local+"/punkt_a")
	assert.True(t, exists)
	exists, _ = afero.Exists(fs, local+"/punkt_c")
	assert.False(t, exists)
}

func TestCommitRefusesDestinationsOutsideTheirTree(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
	}{
		{name: "mkdir outside both trees", tx: Transaction{Kind: MakeDirectories, Path: "/etc/punkt"}},
		{name: "delete in the active tree", tx: Transaction{Kind: Delete, Path: "/home/u/.bashrc"}},
		{name: "delete the local root", tx: Transaction{Kind: Delete, Path: local + "/"}},
		{name: "delete outside both trees", tx: Transaction{Kind: Delete, Path: "/tmp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, fs := newLog(t)
			require.NoError(t, afero.WriteFile(fs, "/home/u/.bashrc", []byte("b"), 0644))
			require.NoError(t, fs.MkdirAll(local, 0755))
			l.Enqueue(tt.tx)

			report, err := l.Commit()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
			assert.Equal(t, tt.tx.String(), errors.GetErrorDetails(err)["transaction"])
			assert.Empty(t, report.Applied)

			exists, _ := afero.Exists(fs, "/home/u/.bashrc")
			assert.True(t, exists)
			exists, _ = afero.Exists(fs, local)
			assert.True(t, exists)
		})
	}
}

func TestCommitMakesDirectoriesInEitherTree(t *testing.T) {
	l, fs := newLog(t)
	l.Enqueue(Transaction{Kind: MakeDirectories, Path: "/home/u/.config/nvim"})
	l.Enqueue(Transaction{Kind: MakeDirectories, Path: local + "/punkt_config/nvim"})

	_, err := l.Commit()
	require.NoError(t, err)

	for _, dir := range []string{"/home/u/.config/nvim", local + "/punkt_config/nvim"} {
		info, err := fs.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestCommitDryRun(t *testing.T) {
	l, fs := newLog(t)
	l.DryRun = true
	require.NoError(t, afero.WriteFile(fs, "/home/u/.a", []byte("a"), 0644))

	l.Enqueue(Transaction{Kind: CopyToLocal, Path: "/home/u/.a"})
	l.Enqueue(Transaction{Kind: MakeDirectories, Path: local + "/x"})

	report, err := l.Commit()
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Len(t, report.Applied, 2)

	exists, _ := afero.Exists(fs, local+"/punkt_a")
	assert.False(t, exists)
	exists, _ = afero.Exists(fs, local+"/x")
	assert.False(t, exists)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "copy-to-local", CopyToLocal.String())
	assert.Equal(t, "copy-to-active", CopyToActive.String())
	assert.Equal(t, "mkdir", MakeDirectories.String())
	assert.Equal(t, "delete", Delete.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
	assert.Equal(t, "delete /x", Transaction{Kind: Delete, Path: "/x"}.String())
}
