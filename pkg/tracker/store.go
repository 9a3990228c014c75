package tracker

import (
	"sort"
	"strings"
)

// Store is the key-value persistence behind a Tracker
type Store interface {
	// Get returns the value for key and whether it was present
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	// Delete removes key; deleting a missing key is not an error
	Delete(key string) error
	// Keys returns the keys starting with prefix, sorted
	Keys(prefix string) ([]string, error)
	Close() error
}

// MemoryStore keeps entries in a map
type MemoryStore struct {
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryStore) Put(key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Keys(prefix string) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStore) Close() error { return nil }
