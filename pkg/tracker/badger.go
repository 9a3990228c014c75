package tracker

import (
	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/logging"
	"github.com/dgraph-io/badger/v4"
)

// BadgerStore keeps entries in a badger database directory. badger holds a
// lock on the directory, so a second process opening it fails.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens or creates the database at dir
func OpenBadger(dir string) (*BadgerStore, error) {
	logger := logging.GetLogger(logging.ComponentStore).With().Str("backend", string(BackendBadger)).Logger()
	opts := badger.DefaultOptions(dir).
		WithLogger(logging.PrintfAdapter{Logger: logger}).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStoreOpen, "failed to open tracker at %s", dir).
			WithDetail("backend", string(BackendBadger))
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrIO, "failed to read tracker key %s", key)
	}
	return value, true, nil
}

func (s *BadgerStore) Put(key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to write tracker key %s", key)
	}
	return nil
}

func (s *BadgerStore) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to delete tracker key %s", key)
	}
	return nil
}

func (s *BadgerStore) Keys(prefix string) ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIO, "failed to list tracker keys")
	}
	// badger iterates in byte order already
	return keys, nil
}

func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(err, errors.ErrIO, "failed to close tracker")
	}
	return nil
}
