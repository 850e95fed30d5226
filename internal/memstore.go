package internal

import (
	"sort"
	"strings"
)

// MemStore is an in-memory Store with the same quota semantics as
// SQLiteStore. It backs tests that need deterministic storage behavior,
// including injected write failures.
type MemStore struct {
	data  map[string]string
	quota int64

	// FailSetWith, when non-nil, is returned by the next Set call and
	// then cleared.
	FailSetWith error
}

// NewMemStore creates an empty in-memory store. A quota of zero or less
// selects DefaultQuotaBytes.
func NewMemStore(quota int64) *MemStore {
	if quota <= 0 {
		quota = DefaultQuotaBytes
	}
	return &MemStore{data: make(map[string]string), quota: quota}
}

// Get returns the stored value for key.
func (s *MemStore) Get(key string) (string, bool, error) {
	value, ok := s.data[key]
	return value, ok, nil
}

// Set writes key=value, enforcing the byte quota across all values.
func (s *MemStore) Set(key, value string) error {
	if s.FailSetWith != nil {
		err := s.FailSetWith
		s.FailSetWith = nil
		return err
	}

	var used int64
	for k, v := range s.data {
		if k == key {
			continue
		}
		used += int64(len(v))
	}
	if used+int64(len(value)) > s.quota {
		return ErrQuotaExceeded
	}

	s.data[key] = value
	return nil
}

// Delete removes key from the store.
func (s *MemStore) Delete(key string) error {
	delete(s.data, key)
	return nil
}

// Keys returns all keys starting with prefix, sorted.
func (s *MemStore) Keys(prefix string) ([]string, error) {
	var keys []string
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error {
	return nil
}
