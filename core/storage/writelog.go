package storage

import (
	kwiltypes "github.com/kwilteam/kwil-db/core/types"
	"github.com/pkg/errors"
)

// Event is a protocol event buffered in the write log until commit.
type Event struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

// WriteLog is a mutation overlay over a Store. Writes, deletes and emitted
// events are buffered until Commit. A nested batch (see WithBatch) overlays
// its parent the same way, which is what gives each funding payout its
// all-or-nothing semantics.
type WriteLog struct {
	store   Store
	parent  *WriteLog
	writes  map[string][]byte
	deletes map[string]struct{}
	events  []Event
	txHash  kwiltypes.Hash
}

var _ Store = (*WriteLog)(nil)

// NewWriteLog wraps a store in a fresh overlay.
func NewWriteLog(store Store) *WriteLog {
	return &WriteLog{
		store:   store,
		writes:  make(map[string][]byte),
		deletes: make(map[string]struct{}),
	}
}

func (w *WriteLog) Get(key string) ([]byte, bool, error) {
	if _, deleted := w.deletes[key]; deleted {
		return nil, false, nil
	}
	if v, ok := w.writes[key]; ok {
		return v, true, nil
	}
	if w.parent != nil {
		return w.parent.Get(key)
	}
	return w.store.Get(key)
}

func (w *WriteLog) Set(key string, value []byte) error {
	delete(w.deletes, key)
	buf := make([]byte, len(value))
	copy(buf, value)
	w.writes[key] = buf
	return nil
}

func (w *WriteLog) Delete(key string) error {
	delete(w.writes, key)
	w.deletes[key] = struct{}{}
	return nil
}

func (w *WriteLog) Iterate(prefix string, fn func(key string, value []byte) (bool, error)) error {
	merged := make(map[string][]byte)
	err := w.store.Iterate(prefix, func(key string, value []byte) (bool, error) {
		merged[key] = value
		return false, nil
	})
	if err != nil {
		return err
	}
	for _, overlay := range w.chain() {
		for k := range overlay.deletes {
			delete(merged, k)
		}
		for k, v := range overlay.writes {
			if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
				merged[k] = v
			}
		}
	}
	snapshot := NewMemStore()
	for k, v := range merged {
		if err := snapshot.Set(k, v); err != nil {
			return err
		}
	}
	return snapshot.Iterate(prefix, fn)
}

// chain returns the overlays from the outermost ancestor down to w.
func (w *WriteLog) chain() []*WriteLog {
	var rev []*WriteLog
	for cur := w; cur != nil; cur = cur.parent {
		rev = append(rev, cur)
	}
	out := make([]*WriteLog, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		out = append(out, rev[i])
	}
	return out
}

// EmitEvent appends a protocol event to the log's buffer. It never fails.
func (w *WriteLog) EmitEvent(ev Event) {
	w.events = append(w.events, ev)
}

// EventsByType returns the buffered events of a given type, including those
// emitted by enclosing overlays.
func (w *WriteLog) EventsByType(eventType string) []Event {
	var out []Event
	for _, overlay := range w.chain() {
		for _, ev := range overlay.events {
			if ev.Type == eventType {
				out = append(out, ev)
			}
		}
	}
	return out
}

// SetTxHash records the hash of the protocol action currently executing.
func (w *WriteLog) SetTxHash(h kwiltypes.Hash) {
	w.txHash = h
}

func (w *WriteLog) TxHash() kwiltypes.Hash {
	return w.txHash
}

// WithBatch runs fn against a child overlay. On a nil return every buffered
// mutation and event is folded into w; on error all of it is discarded, so a
// failed attempt cannot leak state into the next one.
func (w *WriteLog) WithBatch(fn func(batch *WriteLog) error) error {
	batch := NewWriteLog(w.store)
	batch.parent = w
	batch.txHash = w.txHash
	if err := fn(batch); err != nil {
		return err
	}
	for k := range batch.deletes {
		delete(w.writes, k)
		w.deletes[k] = struct{}{}
	}
	for k, v := range batch.writes {
		delete(w.deletes, k)
		w.writes[k] = v
	}
	w.events = append(w.events, batch.events...)
	return nil
}

// Commit applies the buffered mutations to the underlying store and resets
// the overlay. Only the root overlay may commit.
func (w *WriteLog) Commit() error {
	if w.parent != nil {
		return errors.New("only the root write log can commit")
	}
	for k := range w.deletes {
		if err := w.store.Delete(k); err != nil {
			return errors.Wrapf(err, "deleting %s", k)
		}
	}
	for k, v := range w.writes {
		if err := w.store.Set(k, v); err != nil {
			return errors.Wrapf(err, "flushing %s", k)
		}
	}
	w.writes = make(map[string][]byte)
	w.deletes = make(map[string]struct{})
	w.events = nil
	w.txHash = kwiltypes.Hash{}
	return nil
}
