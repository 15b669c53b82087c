// Package storage is the write-log substrate the ledger core mutates state
// through. The durable engine behind it (crash consistency, Merkle
// commitment) is an external collaborator; this package defines the narrow
// surface the core needs plus reference implementations used in tests and
// tooling.
package storage

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Store is a read/write key-value surface. Implementations are not required
// to be safe for concurrent use; ledger state transitions run one at a time.
type Store interface {
	// Get returns the value at key. The boolean reports presence.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	// Iterate visits every key with the given prefix in lexicographic
	// order until fn reports stop or an error.
	Iterate(prefix string, fn func(key string, value []byte) (stop bool, err error)) error
}

// Read decodes the value at key into v. The boolean reports presence.
func Read(s Store, key string, v any) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return false, errors.Wrapf(err, "reading %s", key)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, errors.Wrapf(err, "decoding %s", key)
	}
	return true, nil
}

// Write encodes v and stores it at key.
func Write(s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}
	return errors.Wrapf(s.Set(key, raw), "writing %s", key)
}

// HasKey reports whether key is present.
func HasKey(s Store, key string) (bool, error) {
	_, ok, err := s.Get(key)
	return ok, errors.Wrapf(err, "checking %s", key)
}
