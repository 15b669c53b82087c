package storage

import (
	"sort"
	"strings"
)

// MemStore is a map-backed Store for tests and tooling.
type MemStore struct {
	kv map[string][]byte
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{kv: make(map[string][]byte)}
}

func (m *MemStore) Get(key string) ([]byte, bool, error) {
	v, ok := m.kv[key]
	return v, ok, nil
}

func (m *MemStore) Set(key string, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)
	m.kv[key] = buf
	return nil
}

func (m *MemStore) Delete(key string) error {
	delete(m.kv, key)
	return nil
}

func (m *MemStore) Iterate(prefix string, fn func(key string, value []byte) (bool, error)) error {
	keys := make([]string, 0, len(m.kv))
	for k := range m.kv {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		stop, err := fn(k, m.kv[k])
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
	return nil
}
