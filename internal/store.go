package internal

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// DefaultQuotaBytes caps the total size of stored values. The cap mirrors
// the quota browsers impose on page storage, so the trim policy has
// something real to react to.
const DefaultQuotaBytes = 5 << 20

// Store is the durable key/value boundary. Every persistence side effect
// goes through it, so session and history logic can be tested against an
// in-memory implementation.
type Store interface {
	// Get returns the value for key; the bool reports whether it exists.
	Get(key string) (string, bool, error)
	// Set writes key=value, returning ErrQuotaExceeded when the write
	// would exceed the store's byte quota.
	Set(key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Keys returns all keys starting with prefix, sorted.
	Keys(prefix string) ([]string, error)
	Close() error
}

// SQLiteStore persists key/value pairs in a single chat_kv table.
type SQLiteStore struct {
	db    *sql.DB
	quota int64
}

// OpenStore opens the SQLite store at path, creating the chat_kv table if
// needed. A quota of zero or less selects DefaultQuotaBytes.
func OpenStore(path string, quota int64) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store ping failed: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS chat_kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create chat_kv table: %w", err)
	}

	if quota <= 0 {
		quota = DefaultQuotaBytes
	}

	return &SQLiteStore{db: db, quota: quota}, nil
}

// Get returns the stored value for key.
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM chat_kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Key: key, Op: "get", Err: err}
	}
	return value, true, nil
}

// Set writes key=value, enforcing the byte quota across all values.
func (s *SQLiteStore) Set(key, value string) error {
	used, err := s.usedBytes(key)
	if err != nil {
		return &StorageError{Key: key, Op: "set", Err: err}
	}
	if used+int64(len(value)) > s.quota {
		return ErrQuotaExceeded
	}

	upsertSQL := `
	INSERT INTO chat_kv (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := s.db.Exec(upsertSQL, key, value); err != nil {
		return &StorageError{Key: key, Op: "set", Err: err}
	}
	return nil
}

// usedBytes sums stored value sizes, excluding the key about to be replaced.
func (s *SQLiteStore) usedBytes(excludeKey string) (int64, error) {
	var used sql.NullInt64
	err := s.db.QueryRow(
		"SELECT SUM(LENGTH(CAST(value AS BLOB))) FROM chat_kv WHERE key != ?",
		excludeKey,
	).Scan(&used)
	if err != nil {
		return 0, err
	}
	return used.Int64, nil
}

// Delete removes key from the store.
func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM chat_kv WHERE key = ?", key); err != nil {
		return &StorageError{Key: key, Op: "delete", Err: err}
	}
	return nil
}

// Keys returns all keys starting with prefix, sorted.
func (s *SQLiteStore) Keys(prefix string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT key FROM chat_kv WHERE key LIKE ? ESCAPE '\\' ORDER BY key",
		likePattern(prefix),
	)
	if err != nil {
		return nil, &StorageError{Key: prefix, Op: "keys", Err: err}
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, &StorageError{Key: prefix, Op: "keys", Err: err}
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, &StorageError{Key: prefix, Op: "keys", Err: err}
	}

	return keys, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// likePattern turns a literal prefix into a LIKE pattern. The prefix may
// contain LIKE wildcards ('_' in particular), so they are escaped.
func likePattern(prefix string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(prefix) + "%"
}
