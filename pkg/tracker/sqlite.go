package tracker

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/punkt/pkg/errors"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS entries (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

// SQLiteStore keeps entries in a single sqlite database file
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens or creates the database file at path
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStoreOpen, "failed to create tracker directory for %s", path)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStoreOpen, "failed to open tracker at %s", path)
	}

	for _, stmt := range []string{"PRAGMA busy_timeout=500", "PRAGMA journal_mode=WAL", sqliteSchema} {
		if _, err := conn.Exec(stmt); err != nil {
			_ = conn.Close()
			return nil, errors.Wrapf(err, errors.ErrStoreOpen, "failed to prepare tracker at %s", path).
				WithDetail("backend", string(BackendSQLite))
		}
	}

	return &SQLiteStore{conn: conn}, nil
}

func (s *SQLiteStore) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.conn.QueryRow(`SELECT value FROM entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrIO, "failed to read tracker key %s", key)
	}
	return value, true, nil
}

func (s *SQLiteStore) Put(key string, value []byte) error {
	_, err := s.conn.Exec(
		`INSERT INTO entries (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to write tracker key %s", key)
	}
	return nil
}

func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.conn.Exec(`DELETE FROM entries WHERE key = ?`, key); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to delete tracker key %s", key)
	}
	return nil
}

func (s *SQLiteStore) Keys(prefix string) ([]string, error) {
	rows, err := s.conn.Query(`SELECT key FROM entries WHERE key >= ? ORDER BY key`, prefix)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIO, "failed to list tracker keys")
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, errors.Wrap(err, errors.ErrIO, "failed to list tracker keys")
		}
		if !strings.HasPrefix(key, prefix) {
			break
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrIO, "failed to list tracker keys")
	}
	return keys, nil
}

func (s *SQLiteStore) Close() error {
	if err := s.conn.Close(); err != nil {
		return errors.Wrap(err, errors.ErrIO, "failed to close tracker")
	}
	return nil
}
