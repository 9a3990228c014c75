package tracker

import (
	"encoding/binary"

	"github.com/arthur-debert/punkt/pkg/errors"
)

// Kind tags an encoded entry
type Kind uint8

const (
	// KindFile marks a file entry
	KindFile Kind = 0x01
	// KindDir marks a directory entry
	KindDir Kind = 0x02
)

// Entry is a tracked file or directory
type Entry struct {
	Kind        Kind
	MtimeMillis int64
	Hash        string
}

// FileEntry returns a file entry
func FileEntry(mtimeMillis int64, hash string) Entry {
	return Entry{Kind: KindFile, MtimeMillis: mtimeMillis, Hash: hash}
}

// DirEntry returns a directory entry
func DirEntry() Entry {
	return Entry{Kind: KindDir}
}

// IsDir reports whether e is a directory entry
func (e Entry) IsDir() bool { return e.Kind == KindDir }

// Encode serializes e.
//
// A file entry is the tag byte 0x01, the mtime as a signed varint, the hash
// length as an unsigned varint and the hash bytes. A directory entry is the
// tag byte 0x02 alone.
func Encode(e Entry) []byte {
	if e.Kind == KindDir {
		return []byte{byte(KindDir)}
	}
	buf := make([]byte, 1, 1+2*binary.MaxVarintLen64+len(e.Hash))
	buf[0] = byte(KindFile)
	buf = binary.AppendVarint(buf, e.MtimeMillis)
	buf = binary.AppendUvarint(buf, uint64(len(e.Hash)))
	return append(buf, e.Hash...)
}

// Decode parses a value written by Encode.
func Decode(data []byte) (Entry, error) {
	if len(data) == 0 {
		return Entry{}, corrupt("empty value")
	}

	switch Kind(data[0]) {
	case KindDir:
		if len(data) != 1 {
			return Entry{}, corrupt("trailing bytes after directory marker")
		}
		return DirEntry(), nil

	case KindFile:
		rest := data[1:]
		mtime, n := binary.Varint(rest)
		if n <= 0 {
			return Entry{}, corrupt("bad mtime")
		}
		rest = rest[n:]
		size, n := binary.Uvarint(rest)
		if n <= 0 {
			return Entry{}, corrupt("bad hash length")
		}
		rest = rest[n:]
		if uint64(len(rest)) != size {
			return Entry{}, corrupt("hash length mismatch")
		}
		return FileEntry(mtime, string(rest)), nil

	default:
		return Entry{}, corrupt("unknown tag").WithDetail("tag", data[0])
	}
}

func corrupt(reason string) *errors.PunktError {
	return errors.Newf(errors.ErrStoreCorrupt, "corrupt tracker entry: %s", reason)
}
