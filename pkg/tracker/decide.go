package tracker

import (
	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/internal/hashutil"
	"github.com/spf13/afero"
)

// Decision is the outcome of comparing an active file with its mirror
type Decision int

const (
	// Skip leaves the file and its tracker entry alone
	Skip Decision = iota
	// Refresh leaves the file alone but the tracker entry must be rewritten
	Refresh
	// Copy means the active file must be copied to the local tree
	Copy
)

func (d Decision) String() string {
	switch d {
	case Skip:
		return "skip"
	case Refresh:
		return "refresh"
	case Copy:
		return "copy"
	default:
		return "unknown"
	}
}

// Decide determines whether activePath must be copied to localPath. The
// returned entry describes the active file as it is now; persist it for
// Refresh and, once the copy is committed, for Copy.
//
// The tracker only vouches for the active side. The local copy is hashed
// every time, so a mirror edited behind punkt's back is overwritten.
//
// The rules, first match wins:
//
//  1. no local copy: Copy
//  2. tracked mtime equals the active mtime: the active hash is taken from
//     the tracker; Skip when the local hash matches it, Copy otherwise
//  3. active hash equals the local hash: Refresh (seeds or updates the tracker)
//  4. otherwise: Copy
func Decide(fs afero.Fs, t *Tracker, activePath, localPath string) (Decision, Entry, error) {
	info, err := fs.Stat(activePath)
	if err != nil {
		return Copy, Entry{}, errors.FromOS(activePath, err)
	}
	mtime := info.ModTime().UnixMilli()

	tracked, ok, err := t.Get(activePath)
	if err != nil {
		return Copy, Entry{}, err
	}

	localExists, err := afero.Exists(fs, localPath)
	if err != nil {
		return Copy, Entry{}, errors.FromOS(localPath, err)
	}

	if !localExists {
		activeHash, err := hashutil.HashFile(fs, activePath)
		if err != nil {
			return Copy, Entry{}, errors.FromOS(activePath, err)
		}
		return Copy, FileEntry(mtime, activeHash), nil
	}

	localHash, err := hashutil.HashFile(fs, localPath)
	if err != nil {
		return Copy, Entry{}, errors.FromOS(localPath, err)
	}

	if ok && !tracked.IsDir() && tracked.MtimeMillis == mtime {
		if localHash == tracked.Hash {
			return Skip, tracked, nil
		}
		return Copy, tracked, nil
	}

	activeHash, err := hashutil.HashFile(fs, activePath)
	if err != nil {
		return Copy, Entry{}, errors.FromOS(activePath, err)
	}
	current := FileEntry(mtime, activeHash)
	if localHash == activeHash {
		return Refresh, current, nil
	}
	return Copy, current, nil
}

// Describe returns the tracker entry for the file or directory at path.
func Describe(fs afero.Fs, path string) (Entry, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return Entry{}, errors.FromOS(path, err)
	}
	if info.IsDir() {
		return DirEntry(), nil
	}
	hash, err := hashutil.HashFile(fs, path)
	if err != nil {
		return Entry{}, errors.FromOS(path, err)
	}
	return FileEntry(info.ModTime().UnixMilli(), hash), nil
}
