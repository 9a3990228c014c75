package filesystem

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/internal/hashutil"
	"github.com/spf13/afero"
)

// DirPerm is used for every directory punkt creates
const DirPerm os.FileMode = 0755

// NewOS returns the OS filesystem
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// Exists reports whether path exists. Errors other than not-exist count as present.
func Exists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

// IsDir reports whether path exists and is a directory
func IsDir(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}

// CopyFile copies src to dst, creating dst's parents and replacing any
// existing file. The source mode is kept.
func CopyFile(fs afero.Fs, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return errors.FromOS(src, err)
	}
	if info.IsDir() {
		return errors.PathError(errors.ErrInvalidInput, src, nil).WithDetail("reason", "source is a directory")
	}

	if err := fs.MkdirAll(filepath.Dir(dst), DirPerm); err != nil {
		return errors.FromOS(filepath.Dir(dst), err)
	}

	in, err := fs.Open(src)
	if err != nil {
		return errors.FromOS(src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.FromOS(dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.PathError(errors.ErrIO, dst, err)
	}
	if err := out.Close(); err != nil {
		return errors.PathError(errors.ErrIO, dst, err)
	}

	// OpenFile only applies the mode on creation
	if err := fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.FromOS(dst, err)
	}
	return nil
}

// SameContent reports whether the files a and b hold identical bytes.
// Sizes are compared first so differing files are usually not hashed.
func SameContent(fs afero.Fs, a, b string) (bool, error) {
	infoA, err := fs.Stat(a)
	if err != nil {
		return false, errors.FromOS(a, err)
	}
	infoB, err := fs.Stat(b)
	if err != nil {
		return false, errors.FromOS(b, err)
	}
	if infoA.IsDir() || infoB.IsDir() {
		return infoA.IsDir() == infoB.IsDir(), nil
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	hashA, err := hashutil.HashFile(fs, a)
	if err != nil {
		return false, errors.FromOS(a, err)
	}
	hashB, err := hashutil.HashFile(fs, b)
	if err != nil {
		return false, errors.FromOS(b, err)
	}
	return hashA == hashB, nil
}
