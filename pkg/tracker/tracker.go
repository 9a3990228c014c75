package tracker

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/logging"
	"github.com/rs/zerolog"
)

// Backend selects a Store implementation
type Backend string

const (
	BackendBadger Backend = "badger"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// sqliteSuffix is appended to the tracker path for the sqlite backend
const sqliteSuffix = ".db"

// ParseBackend validates a backend name. Empty selects badger.
func ParseBackend(name string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(name))) {
	case "", BackendBadger:
		return BackendBadger, nil
	case BackendSQLite:
		return BackendSQLite, nil
	case BackendMemory:
		return BackendMemory, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown tracker backend %q", name).
			WithDetail("valid", []string{string(BackendBadger), string(BackendSQLite), string(BackendMemory)})
	}
}

// Record pairs a tracked path with its entry
type Record struct {
	Path  string
	Entry Entry
}

// Tracker maps active paths to their last mirrored state
type Tracker struct {
	store  Store
	logger zerolog.Logger
	closed bool
}

// Open connects to the tracker store of the given backend at path.
func Open(backend Backend, path string) (*Tracker, error) {
	var (
		store Store
		err   error
	)
	switch backend {
	case BackendBadger, "":
		store, err = OpenBadger(path)
	case BackendSQLite:
		store, err = OpenSQLite(path + sqliteSuffix)
	case BackendMemory:
		store = NewMemoryStore()
	default:
		_, err = ParseBackend(string(backend))
	}
	if err != nil {
		return nil, err
	}

	t := New(store)
	t.logger.Debug().Str("backend", string(backend)).Str("path", path).Msg("Tracker opened")
	return t, nil
}

// New wraps an open store
func New(store Store) *Tracker {
	return &Tracker{store: store, logger: logging.GetLogger(logging.ComponentTracker)}
}

// Close disconnects from the store. Calls after the first are no-ops.
func (t *Tracker) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.logger.Debug().Msg("Tracker closed")
	return t.store.Close()
}

// Get returns the entry for activePath and whether one exists
func (t *Tracker) Get(activePath string) (Entry, bool, error) {
	if err := t.check(); err != nil {
		return Entry{}, false, err
	}
	key := Key(activePath)
	data, ok, err := t.store.Get(key)
	if err != nil || !ok {
		return Entry{}, false, err
	}
	entry, err := Decode(data)
	if err != nil {
		return Entry{}, false, errors.Wrap(err, errors.ErrStoreCorrupt, "failed to decode tracker entry").
			WithDetail("key", key)
	}
	return entry, true, nil
}

// Put records entry for activePath, replacing any previous entry
func (t *Tracker) Put(activePath string, entry Entry) error {
	if err := t.check(); err != nil {
		return err
	}
	key := Key(activePath)
	t.logger.Trace().Str("key", key).Bool("dir", entry.IsDir()).Msg("Tracking")
	return t.store.Put(key, Encode(entry))
}

// Remove deletes the entry for activePath and every entry below it.
// It returns the number of entries removed.
func (t *Tracker) Remove(activePath string) (int, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	key := Key(activePath)

	removed := 0
	if _, ok, err := t.store.Get(key); err != nil {
		return 0, err
	} else if ok {
		if err := t.store.Delete(key); err != nil {
			return 0, err
		}
		removed++
	}

	prefix := key + string(filepath.Separator)
	if strings.HasSuffix(key, string(filepath.Separator)) {
		prefix = key
	}
	children, err := t.store.Keys(prefix)
	if err != nil {
		return removed, err
	}
	for _, child := range children {
		if err := t.store.Delete(child); err != nil {
			return removed, err
		}
		removed++
	}

	t.logger.Debug().Str("key", key).Int("removed", removed).Msg("Untracked")
	return removed, nil
}

// List returns every record sorted by path
func (t *Tracker) List() ([]Record, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	keys, err := t.store.Keys("")
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(keys))
	for _, key := range keys {
		entry, ok, err := t.Get(key)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, Record{Path: key, Entry: entry})
		}
	}
	return records, nil
}

func (t *Tracker) check() error {
	if t.closed {
		return errors.New(errors.ErrStoreOpen, "tracker is closed")
	}
	return nil
}

// Key returns the canonical store key for path: clean and absolute.
func Key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
