package storage

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldbutil "github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDBStore is a goleveldb-backed Store, used by nodes that keep the
// ledger subspace on local disk.
type LevelDBStore struct {
	db *leveldb.DB
}

var _ Store = (*LevelDBStore)(nil)

// OpenLevelDB opens (or creates) a store at the given path.
func OpenLevelDB(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "opening leveldb store at %s", path)
	}
	return &LevelDBStore{db: db}, nil
}

func (l *LevelDBStore) Get(key string) ([]byte, bool, error) {
	v, err := l.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (l *LevelDBStore) Set(key string, value []byte) error {
	return l.db.Put([]byte(key), value, nil)
}

func (l *LevelDBStore) Delete(key string) error {
	return l.db.Delete([]byte(key), nil)
}

func (l *LevelDBStore) Iterate(prefix string, fn func(key string, value []byte) (bool, error)) error {
	iter := l.db.NewIterator(ldbutil.BytesPrefix([]byte(prefix)), nil)
	defer iter.Release()
	for iter.Next() {
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		stop, err := fn(string(iter.Key()), value)
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}
	return iter.Error()
}

func (l *LevelDBStore) Close() error {
	return l.db.Close()
}
