// Package store persists classifier snapshots under a model name.
package store

import (
	"context"
	"errors"
	"fmt"

	"whichx/classifier"
	"whichx/config"
	"whichx/db"

	gr "github.com/ac5tin/goredis"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("snapshot not found")

type Store interface {
	Save(ctx context.Context, name string, s *classifier.Snapshot) error
	// Load returns ErrNotFound when nothing was saved under name.
	Load(ctx context.Context, name string) (*classifier.Snapshot, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// Open builds the store selected by cfg.Backend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	l := log.WithField("backend", cfg.Backend)
	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "disk":
		l.WithField("dir", cfg.DiskDir).Info("Using disk snapshots")
		return NewDiskStore(cfg.DiskDir), nil
	case "redis":
		addr := fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort)
		l.WithField("addr", addr).Info("... initialising redis connection")
		return NewRedisStore(gr.NewRedisClient(addr, 0, "")), nil
	case "postgres":
		l.Info("... initialising database connection")
		pg, err := db.Db(cfg.DBString, cfg.DBSchema)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(ctx, pg)
	case "sqlite":
		l.WithField("path", cfg.SQLitePath).Info("... opening sqlite database")
		sqlDB, err := db.Sqlite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(ctx, sqlDB)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
