package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4/pgxpool"

	"whichx/classifier"
)

// body is TEXT rather than JSONB, jsonb would reorder the labels
const pgSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	name       TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at BIGINT NOT NULL
)`

type snapshotRow struct {
	Name      string `db:"name"`
	Body      string `db:"body"`
	UpdatedAt int64  `db:"updated_at"`
}

type PostgresStore struct {
	pg *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, pg *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pg.Exec(ctx, pgSchema); err != nil {
		return nil, err
	}
	return &PostgresStore{pg}, nil
}

func (s *PostgresStore) Save(ctx context.Context, name string, snap *classifier.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	conn, err := s.pg.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if _, err = tx.Exec(ctx, `
        INSERT INTO snapshots
            (name,body,updated_at)
            VALUES ($1,$2,$3)
        ON CONFLICT (name) DO UPDATE
            SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at
    `, name, string(b), time.Now().Unix()); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) Load(ctx context.Context, name string) (*classifier.Snapshot, error) {
	conn, err := s.pg.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()
	rows := new([]snapshotRow)
	if err := pgxscan.Select(ctx, conn, rows, `
        SELECT name,body,updated_at
        FROM snapshots
        WHERE name = $1
    `, name); err != nil {
		return nil, err
	}
	if len(*rows) == 0 {
		return nil, ErrNotFound
	}
	snap := classifier.NewSnapshot()
	if err := json.Unmarshal([]byte((*rows)[0].Body), snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *PostgresStore) Delete(ctx context.Context, name string) error {
	_, err := s.pg.Exec(ctx, `DELETE FROM snapshots WHERE name = $1`, name)
	return err
}

func (s *PostgresStore) Close() error {
	s.pg.Close()
	return nil
}
