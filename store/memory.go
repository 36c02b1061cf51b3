package store

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/syncmap"

	"whichx/classifier"
)

// MemoryStore keeps JSON encoded snapshots in process.
type MemoryStore struct {
	data syncmap.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: syncmap.Map{}}
}

// set value to store
func (q *MemoryStore) set(key *string, value *[]byte) {
	q.data.Store(*key, *value)
}

// get value back from store
func (q *MemoryStore) get(key *string, value *[]byte) error {
	if v, ok := q.data.Load(*key); ok {
		*value = v.([]byte)
		return nil
	}
	return ErrNotFound
}

func (q *MemoryStore) Save(ctx context.Context, name string, s *classifier.Snapshot) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	q.set(&name, &b)
	return nil
}

func (q *MemoryStore) Load(ctx context.Context, name string) (*classifier.Snapshot, error) {
	b := new([]byte)
	if err := q.get(&name, b); err != nil {
		return nil, err
	}
	s := classifier.NewSnapshot()
	if err := json.Unmarshal(*b, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (q *MemoryStore) Delete(ctx context.Context, name string) error {
	q.data.Delete(name)
	return nil
}

func (q *MemoryStore) Close() error {
	return nil
}
