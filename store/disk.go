package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"

	"whichx/classifier"
)

// DiskStore writes one msgpack file per model under dir.
type DiskStore struct {
	mu  sync.RWMutex
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

func (d *DiskStore) pathFor(name string) string {
	return filepath.Join(d.dir, filepath.Base(name)+".msgpack")
}

func (d *DiskStore) Save(ctx context.Context, name string, s *classifier.Snapshot) error {
	b, err := encodeSnapshot(s)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(d.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.WithField("file", f.Name()).Warnf("Failed to remove temp file: %s", err)
		}
	}()

	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), d.pathFor(name))
}

func (d *DiskStore) Load(ctx context.Context, name string) (*classifier.Snapshot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	b, err := os.ReadFile(d.pathFor(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeSnapshot(b)
}

func (d *DiskStore) Delete(ctx context.Context, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.Remove(d.pathFor(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (d *DiskStore) Close() error {
	return nil
}
