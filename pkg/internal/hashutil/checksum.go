package hashutil

import (
	"encoding/hex"
	"io"

	"github.com/spf13/afero"
	"lukechampine.com/blake3"
)

// Size is the digest length in bytes
const Size = 32

// HashFile returns the hex-encoded BLAKE3 digest of the file at path.
func HashFile(fs afero.Fs, path string) (string, error) {
	file, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	return HashReader(file)
}

// HashReader returns the hex-encoded BLAKE3 digest of everything read from r.
func HashReader(r io.Reader) (string, error) {
	hash := blake3.New(Size, nil)
	if _, err := io.Copy(hash, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// HashBytes returns the hex-encoded BLAKE3 digest of data.
func HashBytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
