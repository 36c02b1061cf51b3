// Package model binds a classifier to a snapshot store and serializes
// access to it.
package model

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"whichx/classifier"
	"whichx/store"
	"whichx/utils"
)

const LOG_DESCRIPTION_MAX uint16 = 48

type Model struct {
	Name string

	mu        sync.RWMutex
	c         *classifier.Classifier
	store     store.Store
	stopWords []string

	// held across snapshot, store write and marking it saved
	syncMu sync.Mutex

	// bumped on every mutation; saved is the version last written to store
	version uint64
	saved   uint64
}

// New creates an empty model. stopWords follows classifier.WithStopWords.
func New(name string, s store.Store, stopWords []string) *Model {
	return &Model{
		Name:      name,
		c:         classifier.New(classifier.WithStopWords(stopWords)),
		store:     s,
		stopWords: stopWords,
	}
}

func (m *Model) logger() *log.Entry {
	return log.WithField("model", m.Name)
}

func (m *Model) AddLabels(labels ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.c.AddLabels(labels...)
	// earlier labels may have been registered even on error
	m.version++
	return err
}

func (m *Model) AddData(label, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.c.AddData(label, description); err != nil {
		return err
	}
	m.version++

	d, limit := description, LOG_DESCRIPTION_MAX
	utils.TruncateString(&d, &limit)
	m.logger().WithField("label", label).Debugf("Trained on %q", d) // debug
	return nil
}

func (m *Model) Classify(description string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.Classify(description)
}

func (m *Model) Scores(description string) ([]classifier.Score, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.Scores(description)
}

func (m *Model) Labels() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.Labels()
}

func (m *Model) Export() *classifier.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.Export()
}

func (m *Model) Import(s *classifier.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.c.Import(s); err != nil {
		return err
	}
	m.version++
	return nil
}

// Sync saves the current snapshot when something changed since the last save.
// Concurrent Sync, Load and Reset calls reach the store one at a time.
func (m *Model) Sync(ctx context.Context) error {
	m.syncMu.Lock()
	defer m.syncMu.Unlock()

	m.mu.RLock()
	version, saved := m.version, m.saved
	snap := m.c.Export()
	m.mu.RUnlock()
	if version == saved {
		return nil
	}

	if err := m.store.Save(ctx, m.Name, snap); err != nil {
		return err
	}
	m.mu.Lock()
	// writes made during Save keep the model dirty
	if version > m.saved {
		m.saved = version
	}
	m.mu.Unlock()
	m.logger().WithField("version", version).Info("Synced model to store")
	return nil
}

// Load replaces the in-memory state with the stored snapshot. A model that
// was never saved stays empty and Load returns nil.
func (m *Model) Load(ctx context.Context) error {
	m.syncMu.Lock()
	defer m.syncMu.Unlock()

	snap, err := m.store.Load(ctx, m.Name)
	if errors.Is(err, store.ErrNotFound) {
		m.logger().Info("No stored snapshot, starting empty")
		return nil
	}
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.c.Import(snap); err != nil {
		return err
	}
	m.version++
	m.saved = m.version
	m.logger().WithField("labels", len(snap.Names())-1).Info("Loaded model from store")
	return nil
}

// Reset forgets everything learned and deletes the stored snapshot. When
// the delete fails the empty model stays dirty so the next Sync overwrites
// the stored one.
func (m *Model) Reset(ctx context.Context) error {
	m.syncMu.Lock()
	defer m.syncMu.Unlock()

	m.mu.Lock()
	m.c = classifier.New(classifier.WithStopWords(m.stopWords))
	m.version++
	version := m.version
	m.mu.Unlock()

	if err := m.store.Delete(ctx, m.Name); err != nil {
		return err
	}
	m.mu.Lock()
	if version > m.saved {
		m.saved = version
	}
	m.mu.Unlock()
	m.logger().Info("Reset model")
	return nil
}

// Dirty reports whether the model changed since it was last synced or loaded.
func (m *Model) Dirty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version != m.saved
}
